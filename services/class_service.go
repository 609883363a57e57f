package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/vnkhanh/e-learning-backend/models"
	"github.com/vnkhanh/e-learning-backend/store"
)

type ClassService struct {
	base
}

func NewClassService(d Deps) *ClassService {
	return &ClassService{base: newBase(d)}
}

// List returns every class as a BaseClass.
func (s *ClassService) List(ctx context.Context) ([]models.ClassSummary, error) {
	all, err := s.classes.All(ctx)
	if err != nil {
		return nil, err
	}
	return Project(all, models.Class.Summary), nil
}

// GetBasic returns the stored record.
func (s *ClassService) GetBasic(ctx context.Context, id string) (models.Class, error) {
	all, err := s.classes.All(ctx)
	if err != nil {
		return models.Class{}, err
	}
	return JoinOne(id, all, classID, "class")
}

// Get returns the class player view. The class must belong to one of the
// course's modules.
func (s *ClassService) Get(ctx context.Context, courseKey, id string) (models.ClassDetail, error) {
	var (
		courses  []models.Course
		classes  []models.Class
		comments []models.Comment
		users    []models.User
	)
	err := loadAll(ctx,
		into(s.courses, &courses),
		into(s.classes, &classes),
		into(s.comments, &comments),
		into(s.users, &users),
	)
	if err != nil {
		return models.ClassDetail{}, err
	}

	course, err := JoinOne(courseKey, courses, courseID, "course")
	if err != nil {
		return models.ClassDetail{}, err
	}
	if !course.HasClass(id) {
		return models.ClassDetail{}, notFound("class %s not found in course %s", id, courseKey)
	}
	class, err := JoinOne(id, classes, classID, "class")
	if err != nil {
		return models.ClassDetail{}, err
	}
	th := threads{comments: comments, users: users}
	comm, err := th.threadsFor(class.IDComments)
	if err != nil {
		return models.ClassDetail{}, err
	}
	return models.ClassDetail{
		ClassSummary: class.Summary(),
		VideoURL:     class.VideoURL,
		Description:  class.Description,
		Resourses:    class.Resourses,
		Course:       course.Summary(),
		Modules:      moduleClasses(course.Modules, classes),
		Comments:     comm,
	}, nil
}

func (s *ClassService) Create(ctx context.Context, c models.Class) (models.Class, error) {
	if len(c.IDComments) > 0 {
		return models.Class{}, invalid("a new class cannot have comments")
	}
	err := s.classes.Mutate(ctx, func(all []models.Class) ([]models.Class, error) {
		if err := s.check(c, all); err != nil {
			return nil, err
		}
		return append(all, c), nil
	})
	if err != nil {
		return models.Class{}, err
	}
	s.publish(EventCreated, store.Classes, c.IDClass)
	return c, nil
}

// Update replaces the class id in place and checks its comment ids.
func (s *ClassService) Update(ctx context.Context, id string, c models.Class) (models.Class, error) {
	comments, err := s.comments.All(ctx)
	if err != nil {
		return models.Class{}, err
	}
	err = s.classes.Mutate(ctx, func(all []models.Class) ([]models.Class, error) {
		i := indexOf(all, classID, id)
		if i < 0 {
			return nil, notFound("class %s not found", id)
		}
		if err := s.check(c, Except(all, classID, id)); err != nil {
			return nil, err
		}
		if err := ExistAll(c.IDComments, comments, contributionID[models.Comment], "comment"); err != nil {
			return nil, err
		}
		all[i] = c
		return all, nil
	})
	if err != nil {
		return models.Class{}, err
	}
	s.publish(EventUpdated, store.Classes, c.IDClass)
	return c, nil
}

// Delete strips the class from every course module, saves the courses and
// then removes the class.
func (s *ClassService) Delete(ctx context.Context, id string) (models.Class, error) {
	if _, err := s.GetBasic(ctx, id); err != nil {
		return models.Class{}, err
	}

	var touched int
	err := s.courses.Mutate(ctx, func(all []models.Course) ([]models.Course, error) {
		for i := range all {
			for j := range all[i].Modules {
				var found bool
				if all[i].Modules[j].IDClasses, found = without(all[i].Modules[j].IDClasses, id); found {
					touched++
				}
			}
		}
		return all, nil
	})
	if err != nil {
		return models.Class{}, err
	}
	if touched > 0 {
		s.publish(EventCascaded, store.Courses, id)
	}

	var deleted models.Class
	err = s.classes.Mutate(ctx, func(all []models.Class) ([]models.Class, error) {
		i := indexOf(all, classID, id)
		if i < 0 {
			return nil, notFound("class %s not found", id)
		}
		deleted = all[i]
		return append(all[:i], all[i+1:]...), nil
	})
	if err != nil {
		return models.Class{}, err
	}
	s.log.WithFields(logrus.Fields{"class": id, "modules": touched}).Info("class deleted")
	s.publish(EventDeleted, store.Classes, id)
	return deleted, nil
}

func (s *ClassService) check(c models.Class, others []models.Class) error {
	if err := Unique(c.IDClass, others, classID, "class"); err != nil {
		return err
	}
	return UniqueName(c.Name, others, className, "class")
}
