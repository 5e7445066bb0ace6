package app

import (
	"context"

	"github.com/google/uuid"
	"github.com/montanaflynn/stats"

	"gocmmi/models"
	"gocmmi/ports"
)

// ProjectStats summarizes the diagnosed assessments of one project
type ProjectStats struct {
	ProjectID       uuid.UUID `json:"project_id"`
	AssessmentCount int       `json:"assessment_count"`
	DiagnosedCount  int       `json:"diagnosed_count"`
	VerifiedCount   int       `json:"verified_count"`
	MeanPercent     float64   `json:"mean_percent"`
	MedianPercent   float64   `json:"median_percent"`
	StdDevPercent   float64   `json:"stddev_percent"`
	MinPercent      float64   `json:"min_percent"`
	MaxPercent      float64   `json:"max_percent"`
}

// PortfolioService computes descriptive statistics over a project's
// assessment history.
type PortfolioService struct {
	projects    ports.ProjectRepository
	assessments ports.AssessmentRepository
}

// NewPortfolioService creates a portfolio service
func NewPortfolioService(projects ports.ProjectRepository, assessments ports.AssessmentRepository) *PortfolioService {
	return &PortfolioService{projects: projects, assessments: assessments}
}

// ProjectStats aggregates the overall percentages of a project's diagnosed
// assessments. Stats fields stay zero when nothing has been diagnosed yet.
func (s *PortfolioService) ProjectStats(ctx context.Context, projectID uuid.UUID) (*ProjectStats, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, err
	}
	assessments, err := s.assessments.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	out := &ProjectStats{
		ProjectID:       projectID,
		AssessmentCount: len(assessments),
	}

	var percents []float64
	for _, a := range assessments {
		if a.Status != models.StatusDiagnosed {
			continue
		}
		out.DiagnosedCount++
		percent, verified := overallFromBlob(a.Overall)
		percents = append(percents, percent)
		if verified {
			out.VerifiedCount++
		}
	}
	if len(percents) == 0 {
		return out, nil
	}

	// stats.* only fail on empty input, which is excluded above
	out.MeanPercent, _ = stats.Mean(percents)
	out.MedianPercent, _ = stats.Median(percents)
	out.StdDevPercent, _ = stats.StandardDeviation(percents)
	out.MinPercent, _ = stats.Min(percents)
	out.MaxPercent, _ = stats.Max(percents)

	return out, nil
}

// overallFromBlob reads the overall percent and verification flag out of a
// stored overall_json blob.
func overallFromBlob(overall models.JSONMap) (float64, bool) {
	var percent float64
	if v, ok := overall["overallPercent"].(float64); ok {
		percent = v
	}
	verified, _ := overall["level2Verified"].(bool)
	return percent, verified
}
