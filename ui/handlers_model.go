package ui

import (
	"net/http"

	"gocmmi/domain/assessment"
)

func (a *App) handleModelKPAs(w http.ResponseWriter, r *http.Request) {
	kpas, err := a.catalog.KPAs(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, kpas)
}

func (a *App) handleModelQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := a.catalog.Questions(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if kpa := r.URL.Query().Get("kpa"); kpa != "" {
		filtered := make([]assessment.Question, 0, len(questions))
		for _, q := range questions {
			if q.KPA == kpa {
				filtered = append(filtered, q)
			}
		}
		questions = filtered
	}
	respondJSON(w, http.StatusOK, questions)
}

func (a *App) handleModelRules(w http.ResponseWriter, r *http.Request) {
	rules, err := a.catalog.Rules(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rules)
}
