package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"gocmmi/domain/assessment"
	"gocmmi/internal/errors"
	"gocmmi/models"
	"gocmmi/ports"
)

// DefaultProjectName labels assessments created without a project
const DefaultProjectName = "Proyecto sin nombre"

// fallbackHint is suggested for a weak KPA that triggered no rules
const fallbackHint = "Completar prácticas clave y evidencias faltantes."

// Overall is the compact verdict stored alongside an assessment
type Overall struct {
	OverallPercent int    `json:"overallPercent"`
	Level2Verified bool   `json:"level2Verified"`
	Conclusion     string `json:"conclusion"`
}

// KPAReportEntry pairs a KPA's percentage with its recommendations
type KPAReportEntry struct {
	KPA             string   `json:"kpa"`
	Percent         int      `json:"percent"`
	Recommendations []string `json:"recommendations"`
}

// Level2Hint lists the actions that would lift a weak KPA over the threshold
type Level2Hint struct {
	KPA     string   `json:"kpa"`
	Actions []string `json:"actions"`
}

// Report is the structured final report for an assessment
type Report struct {
	PerKPA             []KPAReportEntry               `json:"perKpa"`
	SummaryAllKPAs     map[string]assessment.KPAScore `json:"summaryAllKpas"`
	GeneralDiagnosis   int                            `json:"generalDiagnosis"`
	Level2Verification bool                           `json:"level2Verification"`
	ReachLevel2Hints   []Level2Hint                   `json:"reachLevel2Hints"`
	Conclusion         string                         `json:"conclusion"`
}

// Diagnosis bundles everything computed for one assessment
type Diagnosis struct {
	ID              uuid.UUID                      `json:"id"`
	Status          string                         `json:"status"`
	ProjectName     string                         `json:"project_name"`
	KPAScores       map[string]assessment.KPAScore `json:"kpaScores"`
	Recommendations assessment.Recommendations     `json:"recommendations"`
	Overall         Overall                        `json:"overall"`
	Report          Report                         `json:"report"`
}

// AssessmentService orchestrates the assessment lifecycle: create, merge
// answers, diagnose via the scoring core, and assemble reports.
type AssessmentService struct {
	catalog     ports.CatalogRepository
	assessments ports.AssessmentRepository
	thresholds  assessment.Thresholds
}

// NewAssessmentService creates an assessment service
func NewAssessmentService(catalog ports.CatalogRepository, assessments ports.AssessmentRepository, thresholds assessment.Thresholds) *AssessmentService {
	return &AssessmentService{
		catalog:     catalog,
		assessments: assessments,
		thresholds:  thresholds,
	}
}

// Create starts a draft assessment, optionally attached to a project
func (s *AssessmentService) Create(ctx context.Context, projectID *uuid.UUID, projectName string) (*models.Assessment, error) {
	if strings.TrimSpace(projectName) == "" {
		projectName = DefaultProjectName
	}
	a := models.NewAssessment(projectID, projectName)
	if err := s.assessments.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Get retrieves a single assessment
func (s *AssessmentService) Get(ctx context.Context, id uuid.UUID) (*models.Assessment, error) {
	return s.assessments.Get(ctx, id)
}

// List returns all assessments, newest first
func (s *AssessmentService) List(ctx context.Context) ([]*models.Assessment, error) {
	return s.assessments.List(ctx)
}

// ListByProject returns the assessments attached to a project, newest first
func (s *AssessmentService) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Assessment, error) {
	return s.assessments.ListByProject(ctx, projectID)
}

// DetachProject clears the project reference on a project's assessments
func (s *AssessmentService) DetachProject(ctx context.Context, projectID uuid.UUID) error {
	return s.assessments.DetachProject(ctx, projectID)
}

// SaveAnswers validates the submitted tokens and merges them incrementally
// into the stored answer set, returning the merged set.
func (s *AssessmentService) SaveAnswers(ctx context.Context, id uuid.UUID, answers map[string]string) (assessment.AnswerSet, error) {
	var invalid []string
	for questionID, value := range answers {
		if !assessment.IsValidAnswer(value) {
			invalid = append(invalid, questionID)
		}
	}
	if len(invalid) > 0 {
		sort.Strings(invalid)
		return nil, errors.InvalidInput(fmt.Sprintf(
			"invalid answer values for questions %s: allowed tokens are si, parcial, no",
			strings.Join(invalid, ", ")))
	}

	a, err := s.assessments.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := answerSetFromJSONMap(a.Answers)
	for questionID, value := range answers {
		merged[questionID] = value
	}

	if err := s.assessments.UpdateAnswers(ctx, id, answerSetToJSONMap(merged), models.StatusDraft); err != nil {
		return nil, err
	}
	return merged, nil
}

// Diagnose runs the scoring core over the stored answers, persists the
// results and returns the full diagnosis.
func (s *AssessmentService) Diagnose(ctx context.Context, id uuid.UUID) (*Diagnosis, error) {
	a, err := s.assessments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.diagnose(ctx, a)
}

// Report returns the structured report, diagnosing first when the
// assessment has not been diagnosed yet.
func (s *AssessmentService) Report(ctx context.Context, id uuid.UUID) (*Diagnosis, error) {
	a, err := s.assessments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.Status != models.StatusDiagnosed {
		if len(a.Answers) == 0 {
			return nil, errors.InvalidInput("no answers recorded: complete the assessment before requesting a report")
		}
		return s.diagnose(ctx, a)
	}
	return s.reportFromStored(a)
}

func (s *AssessmentService) diagnose(ctx context.Context, a *models.Assessment) (*Diagnosis, error) {
	questions, err := s.catalog.Questions(ctx)
	if err != nil {
		return nil, err
	}
	rules, err := s.catalog.Rules(ctx)
	if err != nil {
		return nil, err
	}

	answers := answerSetFromJSONMap(a.Answers)

	result, err := assessment.ComputeScores(answers, questions, s.thresholds)
	if err != nil {
		return nil, err
	}
	recommendations := assessment.GenerateRecommendations(answers, questions, rules)
	conclusion := assessment.BuildConclusion(result)

	overall := Overall{
		OverallPercent: result.OverallPercent,
		Level2Verified: result.Level2Verified,
		Conclusion:     conclusion,
	}

	kpaScoresMap, err := toJSONMap(result.KPAScores)
	if err != nil {
		return nil, err
	}
	recommendationsMap, err := toJSONMap(recommendations)
	if err != nil {
		return nil, err
	}
	overallMap, err := toJSONMap(overall)
	if err != nil {
		return nil, err
	}
	if err := s.assessments.UpdateDiagnosis(ctx, a.ID, kpaScoresMap, recommendationsMap, overallMap, models.StatusDiagnosed); err != nil {
		return nil, err
	}

	return &Diagnosis{
		ID:              a.ID,
		Status:          models.StatusDiagnosed,
		ProjectName:     a.ProjectName,
		KPAScores:       result.KPAScores,
		Recommendations: recommendations,
		Overall:         overall,
		Report:          buildReport(result.KPAScores, result.KPAOrder, recommendations, overall),
	}, nil
}

// reportFromStored rebuilds a diagnosis from the persisted JSON blobs
// without recomputing scores.
func (s *AssessmentService) reportFromStored(a *models.Assessment) (*Diagnosis, error) {
	var kpaScores map[string]assessment.KPAScore
	if err := fromJSONMap(a.KPAScores, &kpaScores); err != nil {
		return nil, errors.Wrap(err, "stored KPA scores are malformed")
	}
	var recommendations assessment.Recommendations
	if err := fromJSONMap(a.Recommendations, &recommendations); err != nil {
		return nil, errors.Wrap(err, "stored recommendations are malformed")
	}
	var overall Overall
	if err := fromJSONMap(a.Overall, &overall); err != nil {
		return nil, errors.Wrap(err, "stored overall result is malformed")
	}

	// Catalog order is not persisted, so stored reports list KPAs by name
	order := make([]string, 0, len(kpaScores))
	for kpa := range kpaScores {
		order = append(order, kpa)
	}
	sort.Strings(order)

	return &Diagnosis{
		ID:              a.ID,
		Status:          a.Status,
		ProjectName:     a.ProjectName,
		KPAScores:       kpaScores,
		Recommendations: recommendations,
		Overall:         overall,
		Report:          buildReport(kpaScores, order, recommendations, overall),
	}, nil
}

func buildReport(kpaScores map[string]assessment.KPAScore, order []string, recommendations assessment.Recommendations, overall Overall) Report {
	perKPA := make([]KPAReportEntry, 0, len(order))
	var hints []Level2Hint
	for _, kpa := range order {
		score := kpaScores[kpa]
		perKPA = append(perKPA, KPAReportEntry{
			KPA:             kpa,
			Percent:         score.Percent,
			Recommendations: recommendationsOrEmpty(recommendations, kpa),
		})
		if !score.Passed {
			actions := recommendations[kpa]
			if len(actions) == 0 {
				actions = []string{fallbackHint}
			}
			hints = append(hints, Level2Hint{KPA: kpa, Actions: actions})
		}
	}

	return Report{
		PerKPA:             perKPA,
		SummaryAllKPAs:     kpaScores,
		GeneralDiagnosis:   overall.OverallPercent,
		Level2Verification: overall.Level2Verified,
		ReachLevel2Hints:   hints,
		Conclusion:         overall.Conclusion,
	}
}

func recommendationsOrEmpty(recommendations assessment.Recommendations, kpa string) []string {
	if actions, ok := recommendations[kpa]; ok {
		return actions
	}
	return []string{}
}

// answerSetFromJSONMap converts a stored answers blob back to an AnswerSet
func answerSetFromJSONMap(m models.JSONMap) assessment.AnswerSet {
	out := make(assessment.AnswerSet, len(m))
	for questionID, value := range m {
		if str, ok := value.(string); ok {
			out[questionID] = str
		} else {
			out[questionID] = fmt.Sprint(value)
		}
	}
	return out
}

func answerSetToJSONMap(answers assessment.AnswerSet) models.JSONMap {
	out := make(models.JSONMap, len(answers))
	for questionID, value := range answers {
		out[questionID] = value
	}
	return out
}

// toJSONMap round-trips a typed value into the generic JSON column shape
func toJSONMap(v interface{}) (models.JSONMap, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := make(models.JSONMap)
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func fromJSONMap(m models.JSONMap, out interface{}) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
