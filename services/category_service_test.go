package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/e-learning-backend/models"
	"github.com/vnkhanh/e-learning-backend/store"
)

func TestCategoryService_List(t *testing.T) {
	f := newFixture(t)
	svc := NewCategoryService(f.deps)

	got, err := svc.List(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.CategorySummary{
		{IDCategory: "cat1", Name: "Desarrollo"},
		{IDCategory: "cat2", Name: "Diseño"},
	}, got)
}

func TestCategoryService_Get(t *testing.T) {
	f := newFixture(t)
	svc := NewCategoryService(f.deps)

	got, err := svc.Get(f.ctx, "cat1")
	require.NoError(t, err)
	assert.Equal(t, "Desarrollo", got.Name)
	assert.Equal(t, []models.RouteSummary{
		{IDRoute: "r1", Name: "Backend con Go", CoursesNumber: 2},
		{IDRoute: "r2", Name: "Frontend"},
	}, got.Routes)

	_, err = svc.Get(f.ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryService_Create(t *testing.T) {
	tests := []struct {
		name    string
		input   models.Category
		wantErr error
	}{
		{"ok", models.Category{IDCategory: "cat3", Name: "Datos", Routes: []string{"r1"}}, nil},
		{"duplicate id", models.Category{IDCategory: "cat1", Name: "Otro"}, ErrConflict},
		{"duplicate name", models.Category{IDCategory: "cat3", Name: "desarrollo"}, ErrConflict},
		{"missing route", models.Category{IDCategory: "cat3", Name: "Datos", Routes: []string{"r1", "r9"}}, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			svc := NewCategoryService(f.deps)
			before := f.snapshot(t, store.Categories)

			got, err := svc.Create(f.ctx, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, f.snapshot(t, store.Categories))
				assert.Empty(t, f.events.events)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, got)
			cats := stored[models.Category](t, f, store.Categories)
			require.Len(t, cats, 3)
			assert.Equal(t, tt.input, cats[2])
			assert.True(t, f.events.has(EventCreated, store.Categories))
		})
	}
}

func TestCategoryService_UpdateInPlace(t *testing.T) {
	f := newFixture(t)
	svc := NewCategoryService(f.deps)

	_, err := svc.Update(f.ctx, "cat1", models.Category{IDCategory: "cat1b", Name: "Desarrollo web", Routes: []string{"r2"}})
	require.NoError(t, err)

	cats := stored[models.Category](t, f, store.Categories)
	require.Len(t, cats, 2)
	assert.Equal(t, "cat1b", cats[0].IDCategory)
	assert.Equal(t, []string{"r2"}, cats[0].Routes)

	// keeping its own name is not a conflict
	_, err = svc.Update(f.ctx, "cat1b", models.Category{IDCategory: "cat1b", Name: "Desarrollo web"})
	assert.NoError(t, err)

	_, err = svc.Update(f.ctx, "cat1b", models.Category{IDCategory: "cat2", Name: "x"})
	assert.ErrorIs(t, err, ErrConflict)

	_, err = svc.Update(f.ctx, "ghost", models.Category{IDCategory: "ghost", Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryService_Delete(t *testing.T) {
	f := newFixture(t)
	svc := NewCategoryService(f.deps)

	deleted, err := svc.Delete(f.ctx, "cat2")
	require.NoError(t, err)
	assert.Equal(t, "Diseño", deleted.Name)
	assert.Len(t, stored[models.Category](t, f, store.Categories), 1)

	_, err = svc.Delete(f.ctx, "cat2")
	assert.ErrorIs(t, err, ErrNotFound)
}
