package assessment

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"gocmmi/internal/errors"
)

// answerScores maps normalized answer tokens to completion scores. Unknown
// or missing answers score 0, the same as an explicit "no".
var answerScores = map[string]float64{
	AnswerYes:     1.0,
	AnswerPartial: 0.5,
	AnswerNo:      0.0,
}

// NormalizeAnswer trims and lowercases a raw answer token
func NormalizeAnswer(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// IsValidAnswer reports whether a raw token normalizes to one of the three
// accepted answers.
func IsValidAnswer(raw string) bool {
	_, ok := answerScores[NormalizeAnswer(raw)]
	return ok
}

// orDefaults fills unset thresholds with the aggregator defaults.
// Note the asymmetry with BuildConclusion's 80/70 integer defaults: same
// values, different units, both kept as the caller-facing contract.
func (t Thresholds) orDefaults() Thresholds {
	if t.KPA == 0 {
		t.KPA = 0.8
	}
	if t.Global == 0 {
		t.Global = 0.7
	}
	return t
}

// accumulator collects weighted scores for one aggregation bucket
type accumulator struct {
	scores  []float64
	weights []float64
}

func (a *accumulator) add(score, weight float64) {
	a.scores = append(a.scores, score)
	a.weights = append(a.weights, weight)
}

// ratio is the weighted completion ratio, 0 when the bucket has no weight
func (a *accumulator) ratio() float64 {
	if floats.Sum(a.weights) <= 0 {
		return 0
	}
	return stat.Mean(a.scores, a.weights)
}

func roundPercent(ratio float64) int {
	return int(math.Round(ratio * 100))
}

type kpaAccumulator struct {
	all     accumulator
	bySP    map[string]*accumulator
	spOrder []string
}

// ComputeScores folds raw answers into per-SP, per-KPA and global weighted
// completion percentages and applies the Level 2 verification thresholds.
//
// Catalog entries with an empty id or kpa are skipped. Negative weights are
// clamped to 0. The KPA percent is computed from the KPA-level weighted sum
// directly, never by averaging its SP percents, so rounding is applied
// exactly once per figure.
func ComputeScores(answers AnswerSet, questions []Question, thresholds Thresholds) (*ScoreResult, error) {
	if questions == nil {
		return nil, errors.InvalidInput("questions catalog must be a valid list")
	}
	thresholds = thresholds.orDefaults()

	byKPA := make(map[string]*kpaAccumulator)
	var kpaOrder []string
	var global accumulator

	for _, q := range questions {
		if q.ID == "" || q.KPA == "" {
			continue
		}
		score := answerScores[NormalizeAnswer(answers[q.ID])]
		weight := math.Max(0, q.Weight)
		sp := spOrDefault(q.SP)

		acc, ok := byKPA[q.KPA]
		if !ok {
			acc = &kpaAccumulator{bySP: make(map[string]*accumulator)}
			byKPA[q.KPA] = acc
			kpaOrder = append(kpaOrder, q.KPA)
		}
		spAcc, ok := acc.bySP[sp]
		if !ok {
			spAcc = &accumulator{}
			acc.bySP[sp] = spAcc
			acc.spOrder = append(acc.spOrder, sp)
		}

		acc.all.add(score, weight)
		spAcc.add(score, weight)
		global.add(score, weight)
	}

	kpaScores := make(map[string]KPAScore, len(byKPA))
	allKPAsPassed := true
	for _, kpa := range kpaOrder {
		acc := byKPA[kpa]
		ratio := acc.all.ratio()
		passed := ratio >= thresholds.KPA
		if !passed {
			allKPAsPassed = false
		}

		detail := make(map[string]SPDetail, len(acc.bySP))
		for _, sp := range acc.spOrder {
			detail[sp] = SPDetail{Percent: roundPercent(acc.bySP[sp].ratio())}
		}

		kpaScores[kpa] = KPAScore{
			Percent: roundPercent(ratio),
			Detail:  detail,
			Passed:  passed,
		}
	}

	globalRatio := global.ratio()

	return &ScoreResult{
		KPAScores:      kpaScores,
		KPAOrder:       kpaOrder,
		OverallPercent: roundPercent(globalRatio),
		Level2Verified: allKPAsPassed && globalRatio >= thresholds.Global,
		Thresholds: PercentThresholds{
			KPA:    roundPercent(thresholds.KPA),
			Global: roundPercent(thresholds.Global),
		},
	}, nil
}
