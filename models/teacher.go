package models

// Social is the kind of a teacher's social network link.
type Social string

const (
	SocialFacebook  Social = "facebook"
	SocialTwitter   Social = "twitter"
	SocialInstagram Social = "instagram"
)

func (s Social) Valid() bool {
	return s == SocialFacebook || s == SocialTwitter || s == SocialInstagram
}

type SocialNetwork struct {
	Kind Social `json:"kind"`
	URL  string `json:"url"`
}

type Teacher struct {
	IDTeacher        string          `json:"id_teacher"`
	Name             string          `json:"name"`
	ImageURL         string          `json:"image_url"`
	WorkPosition     string          `json:"work_position"`
	ShortDescription string          `json:"short_description"`
	LongDescription  string          `json:"long_description"`
	SocialNetwork    []SocialNetwork `json:"social_network"`
	Courses          []string        `json:"courses"`
}

// TeacherSummary is the BaseTeacher projection, also embedded in users.
type TeacherSummary struct {
	IDTeacher string `json:"id_teacher"`
	Name      string `json:"name"`
	ImageURL  string `json:"image_url"`
}

// TeacherBasic adds the card fields shown on routes and courses.
type TeacherBasic struct {
	TeacherSummary
	WorkPosition     string `json:"work_position"`
	ShortDescription string `json:"short_description"`
}

// TeacherDetail is the teacher profile with its courses resolved.
type TeacherDetail struct {
	TeacherBasic
	LongDescription string          `json:"long_description"`
	SocialNetwork   []SocialNetwork `json:"social_network"`
	Courses         []CourseSummary `json:"courses"`
}

func (t Teacher) Summary() TeacherSummary {
	return TeacherSummary{IDTeacher: t.IDTeacher, Name: t.Name, ImageURL: t.ImageURL}
}

func (t Teacher) Basic() TeacherBasic {
	return TeacherBasic{
		TeacherSummary:   t.Summary(),
		WorkPosition:     t.WorkPosition,
		ShortDescription: t.ShortDescription,
	}
}
