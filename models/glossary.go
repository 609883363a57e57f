package models

import "github.com/google/uuid"

type GlossaryEntry struct {
	IDGlossary  uuid.UUID `json:"id_glossary"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
}

type Project struct {
	IDProject   string `json:"id_project"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}
