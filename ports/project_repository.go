package ports

import (
	"context"

	"gocmmi/models"

	"github.com/google/uuid"
)

// ProjectRepository defines the interface for project persistence
type ProjectRepository interface {
	// Create persists a new project row
	Create(ctx context.Context, p *models.Project) error

	// Get retrieves a project by ID, with its assessment count populated
	Get(ctx context.Context, id uuid.UUID) (*models.Project, error)

	// GetByName retrieves a project by exact name, nil when absent
	GetByName(ctx context.Context, name string) (*models.Project, error)

	// List returns all projects with assessment counts, newest first
	List(ctx context.Context) ([]*models.Project, error)

	// Rename updates the project name
	Rename(ctx context.Context, id uuid.UUID, name string) error

	// Delete removes the project row
	Delete(ctx context.Context, id uuid.UUID) error
}
