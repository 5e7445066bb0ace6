package ui

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"gocmmi/internal/errors"
	"gocmmi/models"
)

type projectRequest struct {
	Name string `json:"name"`
}

func (a *App) handleProjectCreate(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(w, errors.InvalidInput("project name is required"))
		return
	}

	existing, err := a.projects.GetByName(r.Context(), name)
	if err != nil {
		respondError(w, err)
		return
	}
	if existing != nil {
		respondError(w, errors.Conflict("a project with that name already exists"))
		return
	}

	project := models.NewProject(name)
	if err := a.projects.Create(r.Context(), project); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, project)
}

func (a *App) handleProjectList(w http.ResponseWriter, r *http.Request) {
	projects, err := a.projects.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if projects == nil {
		projects = []*models.Project{}
	}
	respondJSON(w, http.StatusOK, projects)
}

func (a *App) handleProjectGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	project, err := a.projects.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

func (a *App) handleProjectRename(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	var req projectRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(w, errors.InvalidInput("project name is required"))
		return
	}

	duplicate, err := a.projects.GetByName(r.Context(), name)
	if err != nil {
		respondError(w, err)
		return
	}
	if duplicate != nil && duplicate.ID != id {
		respondError(w, errors.Conflict("another project already uses that name"))
		return
	}

	if err := a.projects.Rename(r.Context(), id, name); err != nil {
		respondError(w, err)
		return
	}
	project, err := a.projects.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

func (a *App) handleProjectDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if _, err := a.projects.Get(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	// Assessments survive the project; they just lose the reference
	if err := a.assessments.DetachProject(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	if err := a.projects.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "project deleted, its assessments were detached",
	})
}

func (a *App) handleProjectAssessments(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	project, err := a.projects.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	list, err := a.assessments.ListByProject(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if list == nil {
		list = []*models.Assessment{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"project":     project,
		"assessments": list,
	})
}

func (a *App) handleProjectAssessmentCreate(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	project, err := a.projects.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	created, err := a.assessments.Create(r.Context(), &project.ID, project.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (a *App) handleProjectStats(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	stats, err := a.portfolio.ProjectStats(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
