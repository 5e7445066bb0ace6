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

const assessmentColumns = `id, project_id, project_name, status, answers_json,
	kpa_scores_json, recommendations_json, overall_json, created_at`

// AssessmentRepositoryImpl implements AssessmentRepository over sqlx.
// Queries use ? placeholders rebound per driver, so the same repository
// serves sqlite and postgres.
type AssessmentRepositoryImpl struct {
	db *sqlx.DB
}

// NewAssessmentRepository creates a SQL-backed assessment repository
func NewAssessmentRepository(db *sqlx.DB) ports.AssessmentRepository {
	return &AssessmentRepositoryImpl{db: db}
}

// Create persists a new assessment row
func (r *AssessmentRepositoryImpl) Create(ctx context.Context, a *models.Assessment) error {
	query := r.db.Rebind(`
		INSERT INTO assessments (id, project_id, project_name, status, answers_json,
			kpa_scores_json, recommendations_json, overall_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.ProjectID, a.ProjectName, a.Status,
		a.Answers, a.KPAScores, a.Recommendations, a.Overall, a.CreatedAt)
	if err != nil {
		return errors.DatabaseError("failed to insert assessment", err)
	}
	return nil
}

// Get retrieves an assessment by ID
func (r *AssessmentRepositoryImpl) Get(ctx context.Context, id uuid.UUID) (*models.Assessment, error) {
	var a models.Assessment
	query := r.db.Rebind(`SELECT ` + assessmentColumns + ` FROM assessments WHERE id = ?`)
	if err := r.db.GetContext(ctx, &a, query, id); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("assessment")
		}
		return nil, errors.DatabaseError("failed to load assessment", err)
	}
	return &a, nil
}

// List returns all assessments, newest first
func (r *AssessmentRepositoryImpl) List(ctx context.Context) ([]*models.Assessment, error) {
	var out []*models.Assessment
	query := `SELECT ` + assessmentColumns + ` FROM assessments ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, errors.DatabaseError("failed to list assessments", err)
	}
	return out, nil
}

// ListByProject returns the assessments attached to a project, newest first
func (r *AssessmentRepositoryImpl) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Assessment, error) {
	var out []*models.Assessment
	query := r.db.Rebind(`
		SELECT ` + assessmentColumns + `
		FROM assessments
		WHERE project_id = ?
		ORDER BY created_at DESC
	`)
	if err := r.db.SelectContext(ctx, &out, query, projectID); err != nil {
		return nil, errors.DatabaseError("failed to list project assessments", err)
	}
	return out, nil
}

// UpdateAnswers replaces the stored answer set and status
func (r *AssessmentRepositoryImpl) UpdateAnswers(ctx context.Context, id uuid.UUID, answers models.JSONMap, status string) error {
	query := r.db.Rebind(`UPDATE assessments SET answers_json = ?, status = ? WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, answers, status, id)
	if err != nil {
		return errors.DatabaseError("failed to update answers", err)
	}
	return requireRow(res, "assessment")
}

// UpdateDiagnosis stores the computed score, recommendation and overall blobs
func (r *AssessmentRepositoryImpl) UpdateDiagnosis(ctx context.Context, id uuid.UUID, kpaScores, recommendations, overall models.JSONMap, status string) error {
	query := r.db.Rebind(`
		UPDATE assessments
		SET kpa_scores_json = ?, recommendations_json = ?, overall_json = ?, status = ?
		WHERE id = ?
	`)
	res, err := r.db.ExecContext(ctx, query, kpaScores, recommendations, overall, status, id)
	if err != nil {
		return errors.DatabaseError("failed to store diagnosis", err)
	}
	return requireRow(res, "assessment")
}

// DetachProject clears the project reference on every assessment of a project
func (r *AssessmentRepositoryImpl) DetachProject(ctx context.Context, projectID uuid.UUID) error {
	query := r.db.Rebind(`UPDATE assessments SET project_id = NULL WHERE project_id = ?`)
	if _, err := r.db.ExecContext(ctx, query, projectID); err != nil {
		return errors.DatabaseError("failed to detach assessments", err)
	}
	return nil
}

// requireRow maps a zero-row update to a NOT_FOUND error
func requireRow(res sql.Result, resource string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return errors.DatabaseError("failed to read affected rows", err)
	}
	if affected == 0 {
		return errors.NotFound(resource)
	}
	return nil
}
