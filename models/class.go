package models

import "github.com/google/uuid"

type Resource struct {
	Description string `json:"description"`
	URL         string `json:"url"`
}

type Class struct {
	IDClass     string      `json:"id_class" binding:"required"`
	Name        string      `json:"name" binding:"required"`
	VideoURL    string      `json:"video_url"`
	Description string      `json:"description"`
	Resourses   []Resource  `json:"resourses"`
	IDComments  []uuid.UUID `json:"id_comments"`
}

// ClassSummary is the BaseClass projection.
type ClassSummary struct {
	IDClass string `json:"id_class"`
	Name    string `json:"name"`
}

// ClassDetail is the class player view, scoped to one course.
type ClassDetail struct {
	ClassSummary
	VideoURL    string          `json:"video_url"`
	Description string          `json:"description"`
	Resourses   []Resource      `json:"resourses"`
	Course      CourseSummary   `json:"course"`
	Modules     []ModuleClasses `json:"modules"`
	Comments    []Thread        `json:"comments"`
}

func (c Class) Summary() ClassSummary {
	return ClassSummary{IDClass: c.IDClass, Name: c.Name}
}
