package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/e-learning-backend/models"
	"github.com/vnkhanh/e-learning-backend/store"
)

func TestRouteService_Get(t *testing.T) {
	f := newFixture(t)
	svc := NewRouteService(f.deps)

	got, err := svc.Get(f.ctx, "r1")
	require.NoError(t, err)

	// glossary and teachers follow collection order, not the id lists
	require.Len(t, got.Glossary, 2)
	assert.Equal(t, glossGo, got.Glossary[0].IDGlossary)
	assert.Equal(t, glossHTTP, got.Glossary[1].IDGlossary)
	require.Len(t, got.Teachers, 2)
	assert.Equal(t, "t1", got.Teachers[0].IDTeacher)
	assert.Equal(t, "Backend", got.Teachers[0].WorkPosition)

	require.Len(t, got.Sections, 1)
	assert.Equal(t, models.LevelBasic, got.Sections[0].Level)
	assert.Equal(t, []models.CourseSummary{
		{IDCourse: "c1", Name: "Go Básico"},
		{IDCourse: "c2", Name: "Go Avanzado"},
	}, got.Sections[0].Courses)

	// embedded records are the stored ones
	glossary := stored[models.GlossaryEntry](t, f, store.Glossary)
	assert.Equal(t, glossary, got.Glossary)
}

func TestRouteService_GetIsIdempotent(t *testing.T) {
	f := newFixture(t)
	svc := NewRouteService(f.deps)

	first, err := svc.Get(f.ctx, "r1")
	require.NoError(t, err)
	second, err := svc.Get(f.ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRouteService_CreateValidates(t *testing.T) {
	valid := func() models.Route {
		return models.Route{
			IDRoute:  "r3",
			Name:     "Data",
			Glossary: []uuid.UUID{glossGo},
			Teachers: []string{"t1"},
			Sections: []models.Section{
				{Title: "A", Level: models.LevelBasic, Courses: []string{"c1"}},
				{Title: "B", Level: models.LevelAdvanced, Courses: []string{"c2"}},
			},
		}
	}
	tests := []struct {
		name    string
		mutate  func(r *models.Route)
		wantErr error
	}{
		{"ok", func(r *models.Route) {}, nil},
		{"duplicate id", func(r *models.Route) { r.IDRoute = "r1" }, ErrConflict},
		{"duplicate name", func(r *models.Route) { r.Name = "FRONTEND" }, ErrConflict},
		{"missing glossary", func(r *models.Route) { r.Glossary = append(r.Glossary, uuid.New()) }, ErrNotFound},
		{"missing teacher", func(r *models.Route) { r.Teachers = []string{"t9"} }, ErrNotFound},
		{"missing course in later section", func(r *models.Route) { r.Sections[1].Courses = []string{"c2", "c9"} }, ErrNotFound},
		{"bad level", func(r *models.Route) { r.Sections[0].Level = "expert" }, ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			svc := NewRouteService(f.deps)
			before := f.snapshot(t, store.Routes)

			r := valid()
			tt.mutate(&r)
			_, err := svc.Create(f.ctx, r)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, before, f.snapshot(t, store.Routes))
				return
			}
			require.NoError(t, err)
			assert.Len(t, stored[models.Route](t, f, store.Routes), 3)
		})
	}
}

func TestRouteService_DeleteCascadesCategories(t *testing.T) {
	f := newFixture(t)
	svc := NewRouteService(f.deps)

	deleted, err := svc.Delete(f.ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", deleted.IDRoute)

	cats := stored[models.Category](t, f, store.Categories)
	assert.Equal(t, []string{"r2"}, cats[0].Routes)
	assert.Equal(t, []string{"r2"}, cats[1].Routes)

	routes := stored[models.Route](t, f, store.Routes)
	require.Len(t, routes, 1)
	assert.Equal(t, "r2", routes[0].IDRoute)

	assert.True(t, f.events.has(EventCascaded, store.Categories))
	assert.True(t, f.events.has(EventDeleted, store.Routes))
}

func TestRouteService_DeleteMissingTouchesNothing(t *testing.T) {
	f := newFixture(t)
	svc := NewRouteService(f.deps)
	before := f.snapshot(t, store.Categories)

	_, err := svc.Delete(f.ctx, "r9")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, before, f.snapshot(t, store.Categories))
}
