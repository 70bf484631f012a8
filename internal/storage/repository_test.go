package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyleking/quick-model/internal/errors"
	"github.com/kyleking/quick-model/internal/model"
)

func TestRepositoryInsertAndSelect(t *testing.T) {
	m := personMap(t)
	repo := NewRepository(NewTestDB(t, m), m)
	ctx := context.Background()

	first, err := repo.Insert(ctx, "Person", map[string]any{"name": "Hugi Þórðarson"})
	require.NoError(t, err)

	second, err := repo.Insert(ctx, "Person", map[string]any{"name": "Ósk Gunnlaugsdóttir"})
	require.NoError(t, err)
	assert.Greater(t, second, first)

	records, err := repo.SelectAll(ctx, "Person")
	require.NoError(t, err)

	require.Len(t, records, 2)
	assert.Equal(t, first, records[0].ID)
	assert.Equal(t, "Hugi Þórðarson", records[0].Values["name"])
	assert.Equal(t, second, records[1].ID)
	assert.Equal(t, "Ósk Gunnlaugsdóttir", records[1].Values["name"])

	divisions, err := repo.SelectAll(ctx, "Division")
	require.NoError(t, err)
	assert.Empty(t, divisions)
}

func TestRepositoryInsertDefaults(t *testing.T) {
	m := personMap(t)
	repo := NewRepository(NewTestDB(t, m), m)
	ctx := context.Background()

	id, err := repo.Insert(ctx, "Division", nil)
	require.NoError(t, err)

	records, err := repo.SelectAll(ctx, "Division")
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].ID)
	assert.Nil(t, records[0].Values["name"])
}

func TestRepositoryUnknownNames(t *testing.T) {
	m := personMap(t)
	repo := NewRepository(NewTestDB(t, m), m)
	ctx := context.Background()

	_, err := repo.Insert(ctx, "Company", map[string]any{"name": "x"})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeNotFound))

	_, err = repo.Insert(ctx, "Person", map[string]any{"age": 3})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeNotFound))
	assert.Contains(t, err.Error(), `unknown attribute "age" on entity "Person"`)

	_, err = repo.SelectAll(ctx, "Company")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeNotFound))
}

func TestRepositoryMissingTable(t *testing.T) {
	m := personMap(t)
	m.ObjectEntities[0].TableName = "Nowhere"

	_, err := NewRepository(NewTestDB(t, nil), m).SelectAll(context.Background(), "Person")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeNotFound))
}

func TestRepositoryWithoutSchema(t *testing.T) {
	m := personMap(t, model.NewEntity("Person", model.NewAttribute("name", model.TypeString)))

	_, err := NewRepository(NewTestDB(t, nil), m).Insert(context.Background(), "Person", map[string]any{"name": "x"})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeDatabase))
}
