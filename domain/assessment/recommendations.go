package assessment

// ruleKey indexes rules by their (KPA, SP) pair
type ruleKey struct {
	kpa string
	sp  string
}

// actionSet is an insertion-order-preserving string set
type actionSet struct {
	seen  map[string]struct{}
	items []string
}

func newActionSet() *actionSet {
	return &actionSet{seen: make(map[string]struct{})}
}

func (s *actionSet) add(action string) {
	if _, ok := s.seen[action]; ok {
		return
	}
	s.seen[action] = struct{}{}
	s.items = append(s.items, action)
}

// GenerateRecommendations matches every answered catalog question against the
// rule set and unions the actions of the rules that fire into a per-KPA list.
//
// A rule fires when the question's normalized answer appears in the rule's
// WhenAnswerIn set (case-insensitive) for the same (KPA, SP) pair. Output
// lists are deduplicated and keep first-seen order; KPAs with no triggered
// rules are absent from the map.
func GenerateRecommendations(answers AnswerSet, questions []Question, rules []Rule) Recommendations {
	index := make(map[ruleKey][]Rule)
	for _, r := range rules {
		key := ruleKey{kpa: r.KPA, sp: spOrDefault(r.SP)}
		index[key] = append(index[key], r)
	}

	byKPA := make(map[string]*actionSet)
	var kpaOrder []string

	for _, q := range questions {
		answer := NormalizeAnswer(answers[q.ID])
		candidates := index[ruleKey{kpa: q.KPA, sp: spOrDefault(q.SP)}]
		for _, rule := range candidates {
			if !ruleTriggers(rule, answer) {
				continue
			}
			set, ok := byKPA[q.KPA]
			if !ok {
				set = newActionSet()
				byKPA[q.KPA] = set
				kpaOrder = append(kpaOrder, q.KPA)
			}
			for _, action := range rule.Actions {
				set.add(action)
			}
		}
	}

	out := make(Recommendations, len(byKPA))
	for _, kpa := range kpaOrder {
		out[kpa] = byKPA[kpa].items
	}
	return out
}

func ruleTriggers(rule Rule, normalizedAnswer string) bool {
	for _, trigger := range rule.WhenAnswerIn {
		if NormalizeAnswer(trigger) == normalizedAnswer {
			return true
		}
	}
	return false
}
