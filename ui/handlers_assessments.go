package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gocmmi/internal/errors"
	"gocmmi/models"
)

type createAssessmentRequest struct {
	ProjectName string `json:"projectName"`
}

type saveAnswersRequest struct {
	Answers map[string]string `json:"answers"`
}

func (a *App) handleAssessmentList(w http.ResponseWriter, r *http.Request) {
	list, err := a.assessments.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if list == nil {
		list = []*models.Assessment{}
	}
	respondJSON(w, http.StatusOK, list)
}

func (a *App) handleAssessmentCreate(w http.ResponseWriter, r *http.Request) {
	var req createAssessmentRequest
	if r.ContentLength > 0 {
		if err := decodeBody(r, &req); err != nil {
			respondError(w, err)
			return
		}
	}
	created, err := a.assessments.Create(r.Context(), nil, req.ProjectName)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (a *App) handleAssessmentGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	assessment, err := a.assessments.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, assessment)
}

func (a *App) handleAssessmentAnswers(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	var req saveAnswersRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if req.Answers == nil {
		respondError(w, errors.InvalidInput(`request must carry {"answers": {"<questionId>": "si|parcial|no"}}`))
		return
	}

	merged, err := a.assessments.SaveAnswers(r.Context(), id, req.Answers)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "answers saved",
		"answersCount": len(merged),
		"answers":      merged,
	})
}

func (a *App) handleAssessmentDiagnose(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	diagnosis, err := a.assessments.Diagnose(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, diagnosis)
}

func (a *App) handleAssessmentReport(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	diagnosis, err := a.assessments.Report(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, diagnosis)
}
