package testkit

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"gocmmi/domain/assessment"
	"gocmmi/internal/errors"
	"gocmmi/models"
)

// SampleQuestions returns a small two-KPA catalog used across tests
func SampleQuestions() []assessment.Question {
	return []assessment.Question{
		{ID: "rr-1", KPA: "RR", SP: "SP1", Text: "¿Se gestionan los requisitos?", Weight: 1},
		{ID: "rr-2", KPA: "RR", SP: "SP1", Text: "¿Se mantiene la trazabilidad?", Weight: 1},
		{ID: "rr-3", KPA: "RR", SP: "SP2", Text: "¿Se controlan los cambios?", Weight: 2},
		{ID: "pp-1", KPA: "PP", SP: "SP1", Text: "¿Existe un plan de proyecto?", Weight: 1},
		{ID: "pp-2", KPA: "PP", SP: "SP2", Text: "¿Se gestionan los riesgos?", Weight: 1},
	}
}

// SampleRules returns rules matching the sample questions
func SampleRules() []assessment.Rule {
	return []assessment.Rule{
		{KPA: "RR", SP: "SP1", WhenAnswerIn: []string{"no", "parcial"}, Actions: []string{"Revisar los requisitos con los interesados."}},
		{KPA: "RR", SP: "SP2", WhenAnswerIn: []string{"no"}, Actions: []string{"Implantar control de cambios."}},
		{KPA: "PP", SP: "SP2", WhenAnswerIn: []string{"no", "parcial"}, Actions: []string{"Crear un registro de riesgos."}},
	}
}

// SampleKPAs returns descriptors for the sample catalog
func SampleKPAs() []assessment.KPAInfo {
	return []assessment.KPAInfo{
		{ID: "RR", Name: "Gestión de Requisitos"},
		{ID: "PP", Name: "Planificación de Proyecto"},
	}
}

// Catalog is an in-memory ports.CatalogRepository
type Catalog struct {
	QuestionList []assessment.Question
	RuleList     []assessment.Rule
	KPAList      []assessment.KPAInfo
}

// NewCatalog creates an in-memory catalog seeded with the sample data
func NewCatalog() *Catalog {
	return &Catalog{
		QuestionList: SampleQuestions(),
		RuleList:     SampleRules(),
		KPAList:      SampleKPAs(),
	}
}

func (c *Catalog) Questions(ctx context.Context) ([]assessment.Question, error) {
	return c.QuestionList, nil
}

func (c *Catalog) Rules(ctx context.Context) ([]assessment.Rule, error) {
	return c.RuleList, nil
}

func (c *Catalog) KPAs(ctx context.Context) ([]assessment.KPAInfo, error) {
	return c.KPAList, nil
}

// AssessmentRepo is an in-memory ports.AssessmentRepository
type AssessmentRepo struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*models.Assessment
}

// NewAssessmentRepo creates an empty in-memory assessment repository
func NewAssessmentRepo() *AssessmentRepo {
	return &AssessmentRepo{byID: make(map[uuid.UUID]*models.Assessment)}
}

func (r *AssessmentRepo) Create(ctx context.Context, a *models.Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *a
	r.byID[a.ID] = &clone
	return nil
}

func (r *AssessmentRepo) Get(ctx context.Context, id uuid.UUID) (*models.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, errors.NotFound("assessment")
	}
	clone := *a
	return &clone, nil
}

func (r *AssessmentRepo) List(ctx context.Context) ([]*models.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Assessment, 0, len(r.byID))
	for _, a := range r.byID {
		clone := *a
		out = append(out, &clone)
	}
	return out, nil
}

func (r *AssessmentRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Assessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*models.Assessment
	for _, a := range r.byID {
		if a.ProjectID != nil && *a.ProjectID == projectID {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *AssessmentRepo) UpdateAnswers(ctx context.Context, id uuid.UUID, answers models.JSONMap, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return errors.NotFound("assessment")
	}
	a.Answers = answers
	a.Status = status
	return nil
}

func (r *AssessmentRepo) UpdateDiagnosis(ctx context.Context, id uuid.UUID, kpaScores, recommendations, overall models.JSONMap, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return errors.NotFound("assessment")
	}
	a.KPAScores = kpaScores
	a.Recommendations = recommendations
	a.Overall = overall
	a.Status = status
	return nil
}

func (r *AssessmentRepo) DetachProject(ctx context.Context, projectID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.ProjectID != nil && *a.ProjectID == projectID {
			a.ProjectID = nil
		}
	}
	return nil
}

// ProjectRepo is an in-memory ports.ProjectRepository
type ProjectRepo struct {
	mu          sync.RWMutex
	byID        map[uuid.UUID]*models.Project
	assessments *AssessmentRepo
}

// NewProjectRepo creates an empty in-memory project repository. The
// assessment repo is used to derive assessment counts; it may be nil.
func NewProjectRepo(assessments *AssessmentRepo) *ProjectRepo {
	return &ProjectRepo{
		byID:        make(map[uuid.UUID]*models.Project),
		assessments: assessments,
	}
}

func (r *ProjectRepo) Create(ctx context.Context, p *models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *p
	r.byID[p.ID] = &clone
	return nil
}

func (r *ProjectRepo) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, errors.NotFound("project")
	}
	clone := *p
	clone.AssessmentsCount = r.countAssessments(id)
	return &clone, nil
}

func (r *ProjectRepo) GetByName(ctx context.Context, name string) (*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.byID {
		if p.Name == name {
			clone := *p
			clone.AssessmentsCount = r.countAssessments(p.ID)
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *ProjectRepo) List(ctx context.Context) ([]*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Project, 0, len(r.byID))
	for _, p := range r.byID {
		clone := *p
		clone.AssessmentsCount = r.countAssessments(p.ID)
		out = append(out, &clone)
	}
	return out, nil
}

func (r *ProjectRepo) Rename(ctx context.Context, id uuid.UUID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return errors.NotFound("project")
	}
	p.Name = name
	return nil
}

func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return errors.NotFound("project")
	}
	delete(r.byID, id)
	return nil
}

func (r *ProjectRepo) countAssessments(id uuid.UUID) int {
	if r.assessments == nil {
		return 0
	}
	list, _ := r.assessments.ListByProject(context.Background(), id)
	return len(list)
}
