package app

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocmmi/domain/assessment"
	"gocmmi/internal/errors"
	"gocmmi/internal/testkit"
	"gocmmi/models"
)

func newTestService() (*AssessmentService, *testkit.AssessmentRepo) {
	repo := testkit.NewAssessmentRepo()
	service := NewAssessmentService(testkit.NewCatalog(), repo, assessment.Thresholds{KPA: 0.8, Global: 0.8})
	return service, repo
}

func TestAssessmentService_CreateDefaultsProjectName(t *testing.T) {
	service, _ := newTestService()

	created, err := service.Create(context.Background(), nil, "   ")
	require.NoError(t, err)

	assert.Equal(t, DefaultProjectName, created.ProjectName)
	assert.Equal(t, models.StatusDraft, created.Status)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestAssessmentService_SaveAnswersRejectsInvalidTokens(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, nil, "Demo")
	require.NoError(t, err)

	_, err = service.SaveAnswers(ctx, created.ID, map[string]string{"rr-1": "si", "rr-2": "tal vez"})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	assert.Contains(t, err.Error(), "rr-2")
}

func TestAssessmentService_SaveAnswersMergesIncrementally(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, nil, "Demo")
	require.NoError(t, err)

	merged, err := service.SaveAnswers(ctx, created.ID, map[string]string{"rr-1": "si"})
	require.NoError(t, err)
	assert.Len(t, merged, 1)

	// Second batch overrides rr-1 and adds rr-2
	merged, err = service.SaveAnswers(ctx, created.ID, map[string]string{"rr-1": "parcial", "rr-2": "no"})
	require.NoError(t, err)
	assert.Len(t, merged, 2)
	assert.Equal(t, "parcial", merged["rr-1"])

	stored, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, stored.Status)
	assert.Len(t, stored.Answers, 2)
}

func TestAssessmentService_Diagnose(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, nil, "Demo")
	require.NoError(t, err)
	_, err = service.SaveAnswers(ctx, created.ID, map[string]string{
		"rr-1": "si",
		"rr-2": "parcial",
		"rr-3": "no",
		"pp-1": "si",
		"pp-2": "si",
	})
	require.NoError(t, err)

	diagnosis, err := service.Diagnose(ctx, created.ID)
	require.NoError(t, err)

	// RR: (1 + 0.5 + 0) / 4 = 37.5% -> 38; PP: 100%; global: 3.5/6 -> 58
	assert.Equal(t, 38, diagnosis.KPAScores["RR"].Percent)
	assert.Equal(t, 100, diagnosis.KPAScores["PP"].Percent)
	assert.Equal(t, 58, diagnosis.Overall.OverallPercent)
	assert.False(t, diagnosis.Overall.Level2Verified)
	assert.Contains(t, diagnosis.Overall.Conclusion, "❌")

	// The partial and negative answers trigger both RR rules
	require.Contains(t, diagnosis.Recommendations, "RR")
	assert.Len(t, diagnosis.Recommendations["RR"], 2)
	assert.NotContains(t, diagnosis.Recommendations, "PP")

	// Only the weak KPA shows up in the hints
	require.Len(t, diagnosis.Report.ReachLevel2Hints, 1)
	assert.Equal(t, "RR", diagnosis.Report.ReachLevel2Hints[0].KPA)

	stored, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDiagnosed, stored.Status)
	assert.NotEmpty(t, stored.KPAScores)
	assert.NotEmpty(t, stored.Overall)
}

func TestAssessmentService_ReportWithoutAnswers(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, nil, "Demo")
	require.NoError(t, err)

	_, err = service.Report(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestAssessmentService_ReportAutoDiagnoses(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, nil, "Demo")
	require.NoError(t, err)
	_, err = service.SaveAnswers(ctx, created.ID, map[string]string{"rr-1": "si"})
	require.NoError(t, err)

	diagnosis, err := service.Report(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDiagnosed, diagnosis.Status)

	stored, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDiagnosed, stored.Status)
}

func TestAssessmentService_ReportUsesStoredDiagnosis(t *testing.T) {
	service, repo := newTestService()
	ctx := context.Background()

	created, err := service.Create(ctx, nil, "Demo")
	require.NoError(t, err)
	_, err = service.SaveAnswers(ctx, created.ID, map[string]string{"rr-1": "si", "pp-1": "si"})
	require.NoError(t, err)

	first, err := service.Diagnose(ctx, created.ID)
	require.NoError(t, err)

	// Change the stored answers without re-diagnosing: the report must keep
	// serving the persisted diagnosis.
	err = repo.UpdateAnswers(ctx, created.ID, models.JSONMap{"rr-1": "no"}, models.StatusDiagnosed)
	require.NoError(t, err)

	report, err := service.Report(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Overall, report.Overall)
	assert.Equal(t, first.KPAScores, report.KPAScores)
}
