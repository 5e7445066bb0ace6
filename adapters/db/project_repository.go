package db

import (
	"context"
	"database/sql"
	stderrors "errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gocmmi/internal/errors"
	"gocmmi/models"
	"gocmmi/ports"
)

// ProjectRepositoryImpl implements ProjectRepository over sqlx
type ProjectRepositoryImpl struct {
	db *sqlx.DB
}

// NewProjectRepository creates a SQL-backed project repository
func NewProjectRepository(db *sqlx.DB) ports.ProjectRepository {
	return &ProjectRepositoryImpl{db: db}
}

// Create persists a new project row
func (r *ProjectRepositoryImpl) Create(ctx context.Context, p *models.Project) error {
	query := r.db.Rebind(`INSERT INTO projects (id, name, created_at) VALUES (?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.CreatedAt); err != nil {
		return errors.DatabaseError("failed to insert project", err)
	}
	return nil
}

// Get retrieves a project by ID, with its assessment count populated
func (r *ProjectRepositoryImpl) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var p models.Project
	query := r.db.Rebind(`
		SELECT p.id, p.name, p.created_at,
		       (SELECT COUNT(*) FROM assessments a WHERE a.project_id = p.id) AS assessments_count
		FROM projects p
		WHERE p.id = ?
	`)
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("project")
		}
		return nil, errors.DatabaseError("failed to load project", err)
	}
	return &p, nil
}

// GetByName retrieves a project by exact name, nil when absent
func (r *ProjectRepositoryImpl) GetByName(ctx context.Context, name string) (*models.Project, error) {
	var p models.Project
	query := r.db.Rebind(`
		SELECT p.id, p.name, p.created_at,
		       (SELECT COUNT(*) FROM assessments a WHERE a.project_id = p.id) AS assessments_count
		FROM projects p
		WHERE p.name = ?
	`)
	if err := r.db.GetContext(ctx, &p, query, name); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.DatabaseError("failed to load project by name", err)
	}
	return &p, nil
}

// List returns all projects with assessment counts, newest first
func (r *ProjectRepositoryImpl) List(ctx context.Context) ([]*models.Project, error) {
	var out []*models.Project
	query := `
		SELECT p.id, p.name, p.created_at,
		       (SELECT COUNT(*) FROM assessments a WHERE a.project_id = p.id) AS assessments_count
		FROM projects p
		ORDER BY p.created_at DESC
	`
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, errors.DatabaseError("failed to list projects", err)
	}
	return out, nil
}

// Rename updates the project name
func (r *ProjectRepositoryImpl) Rename(ctx context.Context, id uuid.UUID, name string) error {
	query := r.db.Rebind(`UPDATE projects SET name = ? WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, name, id)
	if err != nil {
		return errors.DatabaseError("failed to rename project", err)
	}
	return requireRow(res, "project")
}

// Delete removes the project row
func (r *ProjectRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	query := r.db.Rebind(`DELETE FROM projects WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return errors.DatabaseError("failed to delete project", err)
	}
	return requireRow(res, "project")
}
