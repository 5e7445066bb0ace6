package assessment

// Answer tokens accepted on the wire. Anything else scores 0.
const (
	AnswerYes     = "si"
	AnswerPartial = "parcial"
	AnswerNo      = "no"
)

// DefaultSP is the specific-practice bucket used when a catalog entry
// declares none.
const DefaultSP = "SP"

// AnswerSet maps question IDs to raw answer tokens as submitted
type AnswerSet map[string]string

// Question is a single catalog entry. Loaded once from questions.json and
// never mutated.
type Question struct {
	ID     string  `json:"id"`
	KPA    string  `json:"kpa"`
	SP     string  `json:"sp"`
	Text   string  `json:"text"`
	Weight float64 `json:"weight"`
}

// Rule is a remediation trigger. Several rules may share a (KPA, SP) key;
// all of them are evaluated.
type Rule struct {
	KPA          string   `json:"kpa"`
	SP           string   `json:"sp"`
	WhenAnswerIn []string `json:"whenAnswerIn"`
	Actions      []string `json:"actions"`
}

// KPAInfo describes a key process area as listed in kpas.json
type KPAInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Thresholds holds the Level 2 verification cutoffs as fractions in [0,1].
// Zero values are treated as unset and fall back to the 0.8/0.7 defaults.
type Thresholds struct {
	KPA    float64 `json:"kpa"`
	Global float64 `json:"global"`
}

// PercentThresholds is the integer-percent rendering of Thresholds used in
// score results and conclusions.
type PercentThresholds struct {
	KPA    int `json:"kpa"`
	Global int `json:"global"`
}

// SPDetail is the completion percentage of one specific practice
type SPDetail struct {
	Percent int `json:"percent"`
}

// KPAScore is the aggregated result for one key process area
type KPAScore struct {
	Percent int                 `json:"percent"`
	Detail  map[string]SPDetail `json:"detail"`
	Passed  bool                `json:"passed"`
}

// ScoreResult is the full output of ComputeScores. KPAOrder preserves the
// first-seen catalog order of the KPAs so downstream output is deterministic.
type ScoreResult struct {
	KPAScores      map[string]KPAScore `json:"kpaScores"`
	KPAOrder       []string            `json:"kpaOrder"`
	OverallPercent int                 `json:"overallPercent"`
	Level2Verified bool                `json:"level2Verified"`
	Thresholds     PercentThresholds   `json:"thresholds"`
}

// Recommendations maps KPA names to deduplicated, insertion-ordered action
// lists. KPAs with no triggered rules are absent.
type Recommendations map[string][]string

func spOrDefault(sp string) string {
	if sp == "" {
		return DefaultSP
	}
	return sp
}
