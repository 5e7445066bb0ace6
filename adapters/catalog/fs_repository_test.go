package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocmmi/domain/assessment"
	"gocmmi/internal/errors"
)

func TestFSRepository_LoadAppliesDefaults(t *testing.T) {
	repo := NewFSRepository("testdata")
	ctx := context.Background()

	questions, err := repo.Questions(ctx)
	require.NoError(t, err)
	require.Len(t, questions, 3)

	// Explicit weight survives
	assert.Equal(t, 2.0, questions[0].Weight)
	// Absent weight defaults to 1, absent sp defaults to the shared bucket
	assert.Equal(t, 1.0, questions[1].Weight)
	assert.Equal(t, "SP1", questions[1].SP)
	// An explicit 0 is not the same as absent
	assert.Equal(t, 0.0, questions[2].Weight)
	assert.Equal(t, assessment.DefaultSP, questions[2].SP)
}

func TestFSRepository_LoadRules(t *testing.T) {
	repo := NewFSRepository("testdata")

	rules, err := repo.Rules(context.Background())
	require.NoError(t, err)
	require.Len(t, rules, 2)

	assert.Equal(t, []string{"no", "parcial"}, rules[0].WhenAnswerIn)
	assert.Equal(t, assessment.DefaultSP, rules[1].SP)
}

func TestFSRepository_LoadKPAs(t *testing.T) {
	repo := NewFSRepository("testdata")

	kpas, err := repo.KPAs(context.Background())
	require.NoError(t, err)
	require.Len(t, kpas, 1)
	assert.Equal(t, "RR", kpas[0].ID)
	assert.Equal(t, "Gestión de Requisitos", kpas[0].Name)
}

func TestFSRepository_MissingDirectory(t *testing.T) {
	repo := NewFSRepository(t.TempDir())

	err := repo.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeCatalogError, errors.GetCode(err))
}

func TestFSRepository_LoadIsIdempotent(t *testing.T) {
	repo := NewFSRepository("testdata")
	ctx := context.Background()

	require.NoError(t, repo.Load(ctx))
	require.NoError(t, repo.Load(ctx))

	first, err := repo.Questions(ctx)
	require.NoError(t, err)
	second, err := repo.Questions(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
