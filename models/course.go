package models

import "github.com/google/uuid"

// Module is an ordered group of classes inside a course.
type Module struct {
	IDModule  string   `json:"id_module" binding:"required"`
	Name      string   `json:"name" binding:"required"`
	IDClasses []string `json:"id_classes"`
}

type Course struct {
	IDCourse          string      `json:"id_course" binding:"required"`
	Name              string      `json:"name" binding:"required"`
	ImageURL          string      `json:"image_url"`
	IDTeacher         string      `json:"id_teacher" binding:"required"`
	IDRoutes          []string    `json:"id_routes"`
	Modules           []Module    `json:"modules" binding:"dive"`
	IDProject         string      `json:"id_project" binding:"required"`
	IDTutorials       []uuid.UUID `json:"id_tutorials"`
	IDComments        []uuid.UUID `json:"id_comments"`
	Description       string      `json:"description"`
	TimeContent       int         `json:"time_content" binding:"gte=0"`
	TimePractice      int         `json:"time_practice" binding:"gte=0"`
	PreviousKnowledge []string    `json:"previous_knowledge"`
	Software          []string    `json:"software"`
}

// CourseSummary is the BaseCourse projection.
type CourseSummary struct {
	IDCourse string `json:"id_course"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

// ModuleClasses is a module with its visible classes inlined.
type ModuleClasses struct {
	Module
	Classes []ClassSummary `json:"classes"`
}

// CourseInfo is the composition shared by the course page and the class
// player: everything except the long descriptive fields.
type CourseInfo struct {
	CourseSummary
	Routes    []RouteSummary  `json:"routes"`
	Modules   []ModuleClasses `json:"modules"`
	Project   Project         `json:"project"`
	Tutorials []PostView      `json:"tutorials"`
	Comments  []CommentView   `json:"comments"`
}

// CourseClassView is served by GET /cursos/clases/:id.
type CourseClassView struct {
	CourseInfo
	Teacher TeacherSummary `json:"teacher"`
}

// CourseDetail is the complete course page.
type CourseDetail struct {
	CourseInfo
	Teacher           TeacherBasic `json:"teacher"`
	Description       string       `json:"description"`
	TimeContent       int          `json:"time_content"`
	TimePractice      int          `json:"time_practice"`
	PreviousKnowledge []string     `json:"previous_knowledge"`
	Software          []string     `json:"software"`
}

func (c Course) Summary() CourseSummary {
	return CourseSummary{IDCourse: c.IDCourse, Name: c.Name, ImageURL: c.ImageURL}
}

// ClassIDs flattens the class ids of every module, in module order.
func (c Course) ClassIDs() []string {
	var ids []string
	for _, m := range c.Modules {
		ids = append(ids, m.IDClasses...)
	}
	return ids
}

// HasClass reports whether any module of the course lists id.
func (c Course) HasClass(id string) bool {
	for _, m := range c.Modules {
		for _, cid := range m.IDClasses {
			if cid == id {
				return true
			}
		}
	}
	return false
}
