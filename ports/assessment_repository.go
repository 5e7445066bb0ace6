package ports

import (
	"context"

	"gocmmi/models"

	"github.com/google/uuid"
)

// AssessmentRepository defines the interface for assessment persistence
type AssessmentRepository interface {
	// Create persists a new assessment row
	Create(ctx context.Context, a *models.Assessment) error

	// Get retrieves an assessment by ID
	Get(ctx context.Context, id uuid.UUID) (*models.Assessment, error)

	// List returns all assessments, newest first
	List(ctx context.Context) ([]*models.Assessment, error)

	// ListByProject returns the assessments attached to a project, newest first
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Assessment, error)

	// UpdateAnswers replaces the stored answer set and status
	UpdateAnswers(ctx context.Context, id uuid.UUID, answers models.JSONMap, status string) error

	// UpdateDiagnosis stores the computed score, recommendation and overall blobs
	UpdateDiagnosis(ctx context.Context, id uuid.UUID, kpaScores, recommendations, overall models.JSONMap, status string) error

	// DetachProject clears the project reference on every assessment of a project
	DetachProject(ctx context.Context, projectID uuid.UUID) error
}
