package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/e-learning-backend/models"
)

func TestJoinOne(t *testing.T) {
	teachers := []models.Teacher{{IDTeacher: "t1", Name: "first"}, {IDTeacher: "t1", Name: "dup"}}

	got, err := JoinOne("t1", teachers, teacherID, "teacher")
	require.NoError(t, err)
	assert.Equal(t, "first", got.Name)

	_, err = JoinOne("t9", teachers, teacherID, "teacher")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJoinMany_KeepsCollectionOrder(t *testing.T) {
	g1, g2 := uuid.New(), uuid.New()
	glossary := []models.GlossaryEntry{{IDGlossary: g1, Title: "one"}, {IDGlossary: g2, Title: "two"}}

	got := JoinMany([]uuid.UUID{g2, g1}, glossary, glossaryID)
	require.Len(t, got, 2)
	assert.Equal(t, glossary, got)
}

func TestJoinMany_SkipsDanglingIDs(t *testing.T) {
	routes := []models.Route{{IDRoute: "r1"}}

	got := JoinMany([]string{"gone", "r1"}, routes, routeID)
	assert.Equal(t, []models.Route{{IDRoute: "r1"}}, got)

	empty := JoinMany[models.Route, string](nil, routes, routeID)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestJoinEach_PerParentSubsets(t *testing.T) {
	classes := []models.Class{{IDClass: "a", Name: "A"}, {IDClass: "b", Name: "B"}, {IDClass: "c", Name: "C"}}
	modules := []models.Module{
		{IDModule: "m2", IDClasses: []string{"c", "a"}},
		{IDModule: "m1", IDClasses: []string{"b"}},
	}

	got := moduleClasses(modules, classes)
	require.Len(t, got, 2)
	assert.Equal(t, "m2", got[0].IDModule)
	assert.Equal(t, []models.ClassSummary{{IDClass: "a", Name: "A"}, {IDClass: "c", Name: "C"}}, got[0].Classes)
	assert.Equal(t, []models.ClassSummary{{IDClass: "b", Name: "B"}}, got[1].Classes)
}

func TestProjectErr_StopsAtFirstError(t *testing.T) {
	th := threads{users: []models.User{{IDUser: userAna}}}
	comments := []models.Comment{
		{Contribution: models.Contribution{IDUser: userAna}},
		{Contribution: models.Contribution{IDUser: uuid.New()}},
	}

	_, err := ProjectErr(comments, th.commentView)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWithout(t *testing.T) {
	got, found := without([]string{"a", "b", "a"}, "a")
	assert.True(t, found)
	assert.Equal(t, []string{"b"}, got)

	got, found = without([]string{"b"}, "a")
	assert.False(t, found)
	assert.Equal(t, []string{"b"}, got)
}
