package models

import "github.com/google/uuid"

// Level is the difficulty of a route section.
type Level string

const (
	LevelBasic         Level = "basic"
	LevelIntermediate  Level = "intermediate"
	LevelAdvanced      Level = "advanced"
	LevelComplementary Level = "complementary"
)

func (l Level) Valid() bool {
	switch l {
	case LevelBasic, LevelIntermediate, LevelAdvanced, LevelComplementary:
		return true
	}
	return false
}

// Section is an ordered block of courses inside a route.
type Section struct {
	Title   string   `json:"title" binding:"required"`
	Level   Level    `json:"level" binding:"required"`
	Courses []string `json:"courses"`
}

type Route struct {
	IDRoute          string      `json:"id_route" binding:"required"`
	Name             string      `json:"name" binding:"required"`
	ImageURL         string      `json:"image_url"`
	CoursesNumber    int         `json:"courses_number" binding:"gte=0"`
	ShortDescription string      `json:"short_description"`
	LongDescription  string      `json:"long_description"`
	Glossary         []uuid.UUID `json:"glossary"`
	Teachers         []string    `json:"teachers"`
	Sections         []Section   `json:"sections" binding:"dive"`
}

// RouteSummary is what categories and courses embed for a route.
type RouteSummary struct {
	IDRoute       string `json:"id_route"`
	Name          string `json:"name"`
	ImageURL      string `json:"image_url"`
	CoursesNumber int    `json:"courses_number"`
}

// SectionCourses is a section with its course ids resolved.
type SectionCourses struct {
	Title   string          `json:"title"`
	Level   Level           `json:"level"`
	Courses []CourseSummary `json:"courses"`
}

// RouteDetail is the fully composed route.
type RouteDetail struct {
	RouteSummary
	ShortDescription string           `json:"short_description"`
	LongDescription  string           `json:"long_description"`
	Glossary         []GlossaryEntry  `json:"glossary"`
	Teachers         []TeacherBasic   `json:"teachers"`
	Sections         []SectionCourses `json:"sections"`
}

func (r Route) Summary() RouteSummary {
	return RouteSummary{
		IDRoute:       r.IDRoute,
		Name:          r.Name,
		ImageURL:      r.ImageURL,
		CoursesNumber: r.CoursesNumber,
	}
}

// CourseIDs flattens the course ids of every section, in section order.
func (r Route) CourseIDs() []string {
	var ids []string
	for _, s := range r.Sections {
		ids = append(ids, s.Courses...)
	}
	return ids
}
