package assessment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRecommendations_PartialAnswerTriggersRule(t *testing.T) {
	questions := []Question{{ID: "q1", KPA: "RR", SP: "SP1", Weight: 1}}
	rules := []Rule{{KPA: "RR", SP: "SP1", WhenAnswerIn: []string{"no", "parcial"}, Actions: []string{"Do X"}}}

	out := GenerateRecommendations(AnswerSet{"q1": "parcial"}, questions, rules)

	require.Contains(t, out, "RR")
	assert.Equal(t, []string{"Do X"}, out["RR"])
}

func TestGenerateRecommendations_NoTriggerLeavesKPAAbsent(t *testing.T) {
	questions := []Question{
		{ID: "q1", KPA: "RR", SP: "SP1", Weight: 1},
		{ID: "q2", KPA: "PP", SP: "SP1", Weight: 1},
	}
	rules := []Rule{
		{KPA: "RR", SP: "SP1", WhenAnswerIn: []string{"no"}, Actions: []string{"Do X"}},
		{KPA: "PP", SP: "SP1", WhenAnswerIn: []string{"no"}, Actions: []string{"Do Y"}},
	}

	out := GenerateRecommendations(AnswerSet{"q1": "no", "q2": "si"}, questions, rules)

	assert.Contains(t, out, "RR")
	// Absent, not an empty slice
	_, present := out["PP"]
	assert.False(t, present)
}

func TestGenerateRecommendations_DeduplicatesOverlappingActions(t *testing.T) {
	questions := []Question{
		{ID: "q1", KPA: "RR", SP: "SP1", Weight: 1},
		{ID: "q2", KPA: "RR", SP: "SP2", Weight: 1},
	}
	rules := []Rule{
		{KPA: "RR", SP: "SP1", WhenAnswerIn: []string{"no"}, Actions: []string{"Shared action", "First only"}},
		{KPA: "RR", SP: "SP2", WhenAnswerIn: []string{"no"}, Actions: []string{"Shared action", "Second only"}},
	}

	out := GenerateRecommendations(AnswerSet{"q1": "no", "q2": "no"}, questions, rules)

	assert.Equal(t, []string{"Shared action", "First only", "Second only"}, out["RR"])
}

func TestGenerateRecommendations_Deterministic(t *testing.T) {
	questions := []Question{
		{ID: "q1", KPA: "RR", SP: "SP1", Weight: 1},
		{ID: "q2", KPA: "RR", SP: "SP2", Weight: 1},
		{ID: "q3", KPA: "PP", SP: "SP1", Weight: 1},
	}
	rules := []Rule{
		{KPA: "RR", SP: "SP1", WhenAnswerIn: []string{"no", "parcial"}, Actions: []string{"A1", "A2"}},
		{KPA: "RR", SP: "SP2", WhenAnswerIn: []string{"no"}, Actions: []string{"A3"}},
		{KPA: "PP", SP: "SP1", WhenAnswerIn: []string{"parcial"}, Actions: []string{"B1"}},
	}
	answers := AnswerSet{"q1": "no", "q2": "no", "q3": "parcial"}

	first := GenerateRecommendations(answers, questions, rules)
	second := GenerateRecommendations(answers, questions, rules)

	require.Equal(t, first, second)
	assert.Equal(t, []string{"A1", "A2", "A3"}, first["RR"])
	assert.Equal(t, []string{"B1"}, first["PP"])
}

func TestGenerateRecommendations_CaseInsensitiveMatching(t *testing.T) {
	questions := []Question{{ID: "q1", KPA: "RR", SP: "SP1", Weight: 1}}
	rules := []Rule{{KPA: "RR", SP: "SP1", WhenAnswerIn: []string{"NO", "Parcial"}, Actions: []string{"Do X"}}}

	out := GenerateRecommendations(AnswerSet{"q1": " No "}, questions, rules)

	assert.Equal(t, []string{"Do X"}, out["RR"])
}

func TestGenerateRecommendations_DefaultSPBucketsMatch(t *testing.T) {
	// A question and a rule that both omit their SP land in the same bucket
	questions := []Question{{ID: "q1", KPA: "RR", Weight: 1}}
	rules := []Rule{{KPA: "RR", WhenAnswerIn: []string{"no"}, Actions: []string{"Do X"}}}

	out := GenerateRecommendations(AnswerSet{"q1": "no"}, questions, rules)

	assert.Equal(t, []string{"Do X"}, out["RR"])
}

func TestGenerateRecommendations_SPMismatchDoesNotFire(t *testing.T) {
	questions := []Question{{ID: "q1", KPA: "RR", SP: "SP1", Weight: 1}}
	rules := []Rule{{KPA: "RR", SP: "SP2", WhenAnswerIn: []string{"no"}, Actions: []string{"Do X"}}}

	out := GenerateRecommendations(AnswerSet{"q1": "no"}, questions, rules)

	assert.Empty(t, out)
}

func TestGenerateRecommendations_UnansweredQuestionCanStillFire(t *testing.T) {
	// Missing answers normalize to "" and match nothing unless a rule lists
	// the empty token, which real catalogs never do.
	questions := []Question{{ID: "q1", KPA: "RR", SP: "SP1", Weight: 1}}
	rules := []Rule{{KPA: "RR", SP: "SP1", WhenAnswerIn: []string{"no", "parcial"}, Actions: []string{"Do X"}}}

	out := GenerateRecommendations(AnswerSet{}, questions, rules)

	assert.Empty(t, out)
}
