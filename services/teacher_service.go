package services

import (
	"context"

	"github.com/vnkhanh/e-learning-backend/models"
)

// TeacherService is read only; teachers are managed outside the API.
type TeacherService struct {
	base
}

func NewTeacherService(d Deps) *TeacherService {
	return &TeacherService{base: newBase(d)}
}

func (s *TeacherService) List(ctx context.Context) ([]models.TeacherBasic, error) {
	all, err := s.teachers.All(ctx)
	if err != nil {
		return nil, err
	}
	return Project(all, models.Teacher.Basic), nil
}

// Get returns the teacher profile with course summaries.
func (s *TeacherService) Get(ctx context.Context, id string) (models.TeacherDetail, error) {
	var (
		teachers []models.Teacher
		courses  []models.Course
	)
	if err := loadAll(ctx, into(s.teachers, &teachers), into(s.courses, &courses)); err != nil {
		return models.TeacherDetail{}, err
	}
	t, err := JoinOne(id, teachers, teacherID, "teacher")
	if err != nil {
		return models.TeacherDetail{}, err
	}
	return models.TeacherDetail{
		TeacherBasic:    t.Basic(),
		LongDescription: t.LongDescription,
		SocialNetwork:   t.SocialNetwork,
		Courses:         Project(JoinMany(t.Courses, courses, courseID), models.Course.Summary),
	}, nil
}
