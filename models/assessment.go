package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// JSONMap is a custom type for JSON-encoded text columns that maps to
// map[string]interface{}. Works for both SQLite TEXT and PostgreSQL JSONB.
type JSONMap map[string]interface{}

// Value implements driver.Valuer interface
func (j JSONMap) Value() (driver.Value, error) {
	if j == nil {
		return "{}", nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSONMap)
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*j = make(JSONMap)
		return nil
	}

	if len(bytes) == 0 {
		*j = make(JSONMap)
		return nil
	}

	result := make(JSONMap)
	if err := json.Unmarshal(bytes, &result); err != nil {
		return err
	}
	*j = result
	return nil
}

// Assessment lifecycle states
const (
	StatusDraft     = "draft"
	StatusDiagnosed = "diagnosed"
)

// Project groups assessments under a named initiative
type Project struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	AssessmentsCount int       `json:"assessments_count" db:"assessments_count"`
}

// Assessment is one maturity evaluation: raw answers plus the computed
// score, recommendation and overall blobs, stored as JSON columns.
type Assessment struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	ProjectID       *uuid.UUID `json:"project_id,omitempty" db:"project_id"`
	ProjectName     string     `json:"project_name" db:"project_name"`
	Status          string     `json:"status" db:"status"`
	Answers         JSONMap    `json:"answers" db:"answers_json"`
	KPAScores       JSONMap    `json:"kpa_scores" db:"kpa_scores_json"`
	Recommendations JSONMap    `json:"recommendations" db:"recommendations_json"`
	Overall         JSONMap    `json:"overall" db:"overall_json"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
}

// NewAssessment creates a draft assessment, optionally attached to a project
func NewAssessment(projectID *uuid.UUID, projectName string) *Assessment {
	return &Assessment{
		ID:              uuid.New(),
		ProjectID:       projectID,
		ProjectName:     projectName,
		Status:          StatusDraft,
		Answers:         make(JSONMap),
		KPAScores:       make(JSONMap),
		Recommendations: make(JSONMap),
		Overall:         make(JSONMap),
		CreatedAt:       time.Now().UTC(),
	}
}

// NewProject creates a project with a fresh identifier
func NewProject(name string) *Project {
	return &Project{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}
