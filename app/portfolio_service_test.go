package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocmmi/internal/errors"
	"gocmmi/internal/testkit"
	"gocmmi/models"
)

func TestPortfolioService_ProjectStats(t *testing.T) {
	ctx := context.Background()
	assessments := testkit.NewAssessmentRepo()
	projects := testkit.NewProjectRepo(assessments)
	service := NewPortfolioService(projects, assessments)

	project := models.NewProject("Demo")
	require.NoError(t, projects.Create(ctx, project))

	// Two diagnosed assessments at 50% and 100%, one draft
	for _, tc := range []struct {
		percent  float64
		verified bool
		diagnose bool
	}{
		{50, false, true},
		{100, true, true},
		{0, false, false},
	} {
		a := models.NewAssessment(&project.ID, project.Name)
		require.NoError(t, assessments.Create(ctx, a))
		if tc.diagnose {
			overall := models.JSONMap{"overallPercent": tc.percent, "level2Verified": tc.verified}
			require.NoError(t, assessments.UpdateDiagnosis(ctx, a.ID, models.JSONMap{}, models.JSONMap{}, overall, models.StatusDiagnosed))
		}
	}

	stats, err := service.ProjectStats(ctx, project.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.AssessmentCount)
	assert.Equal(t, 2, stats.DiagnosedCount)
	assert.Equal(t, 1, stats.VerifiedCount)
	assert.InDelta(t, 75, stats.MeanPercent, 1e-9)
	assert.InDelta(t, 75, stats.MedianPercent, 1e-9)
	assert.InDelta(t, 50, stats.MinPercent, 1e-9)
	assert.InDelta(t, 100, stats.MaxPercent, 1e-9)
}

func TestPortfolioService_EmptyProject(t *testing.T) {
	ctx := context.Background()
	assessments := testkit.NewAssessmentRepo()
	projects := testkit.NewProjectRepo(assessments)
	service := NewPortfolioService(projects, assessments)

	project := models.NewProject("Vacío")
	require.NoError(t, projects.Create(ctx, project))

	stats, err := service.ProjectStats(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.AssessmentCount)
	assert.Zero(t, stats.MeanPercent)
}

func TestPortfolioService_UnknownProject(t *testing.T) {
	ctx := context.Background()
	assessments := testkit.NewAssessmentRepo()
	projects := testkit.NewProjectRepo(assessments)
	service := NewPortfolioService(projects, assessments)

	_, err := service.ProjectStats(ctx, models.NewProject("x").ID)
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}
