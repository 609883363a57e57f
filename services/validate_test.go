package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/e-learning-backend/models"
)

func TestUnique(t *testing.T) {
	cats := []models.Category{{IDCategory: "cat1"}, {IDCategory: "cat2"}}

	assert.NoError(t, Unique("cat3", cats, categoryID, "category"))

	err := Unique("cat2", cats, categoryID, "category")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, "category cat2 already exists", err.Error())
}

func TestUniqueName(t *testing.T) {
	courses := []models.Course{{IDCourse: "c1", Name: "Go Básico"}}

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"different", "Go Avanzado", false},
		{"identical", "Go Básico", true},
		{"case and accents", "go basico", true},
		{"punctuation", "Go: básico!", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := UniqueName(tt.input, courses, courseName, "course")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrConflict)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExists(t *testing.T) {
	routes := []models.Route{{IDRoute: "r1"}}

	assert.NoError(t, Exists("r1", routes, routeID, "route"))

	err := Exists("r9", routes, routeID, "route")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "route r9 not found", err.Error())
}

func TestExistAll_ReportsFirstMissing(t *testing.T) {
	routes := []models.Route{{IDRoute: "r1"}, {IDRoute: "r2"}}

	assert.NoError(t, ExistAll(nil, routes, routeID, "route"))
	assert.NoError(t, ExistAll([]string{"r2", "r1"}, routes, routeID, "route"))

	err := ExistAll([]string{"r1", "r7", "r8"}, routes, routeID, "route")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, ErrNotFound, verr.Kind)
	assert.Contains(t, verr.Message, "r7")
	assert.NotContains(t, verr.Message, "r8")
}

func TestExcept(t *testing.T) {
	cats := []models.Category{{IDCategory: "a"}, {IDCategory: "b"}, {IDCategory: "c"}}

	got := Except(cats, categoryID, "b")
	assert.Equal(t, []models.Category{{IDCategory: "a"}, {IDCategory: "c"}}, got)
	assert.Len(t, cats, 3)
}
