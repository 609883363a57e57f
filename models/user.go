package models

import "github.com/google/uuid"

type UserKind string

const (
	UserTeam    UserKind = "team"
	UserTeacher UserKind = "teacher"
	UserStudent UserKind = "student"
)

type UserStatus string

const (
	StatusPublic  UserStatus = "public"
	StatusPrivate UserStatus = "private"
)

// User is the author of contributions.
type User struct {
	IDUser   uuid.UUID       `json:"id_user"`
	Name     string          `json:"name"`
	ImageURL string          `json:"image_url"`
	Kind     UserKind        `json:"kind"`
	Status   UserStatus      `json:"status"`
	Teacher  *TeacherSummary `json:"teacher,omitempty"`
}
