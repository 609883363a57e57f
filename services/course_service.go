package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vnkhanh/e-learning-backend/models"
	"github.com/vnkhanh/e-learning-backend/store"
)

type CourseService struct {
	base
	tutorials store.Collection[models.Post]
}

func NewCourseService(d Deps) *CourseService {
	b := newBase(d)
	return &CourseService{base: b, tutorials: b.posts(models.KindTutorial)}
}

// List returns every course as a BaseCourse.
func (s *CourseService) List(ctx context.Context) ([]models.CourseSummary, error) {
	all, err := s.courses.All(ctx)
	if err != nil {
		return nil, err
	}
	return Project(all, models.Course.Summary), nil
}

// courseGraph is every collection a course page joins against.
type courseGraph struct {
	courses   []models.Course
	teachers  []models.Teacher
	routes    []models.Route
	classes   []models.Class
	projects  []models.Project
	tutorials []models.Post
	comments  []models.Comment
	users     []models.User
}

func (s *CourseService) loadGraph(ctx context.Context) (courseGraph, error) {
	var g courseGraph
	err := loadAll(ctx,
		into(s.courses, &g.courses),
		into(s.teachers, &g.teachers),
		into(s.routes, &g.routes),
		into(s.classes, &g.classes),
		into(s.projects, &g.projects),
		into(s.tutorials, &g.tutorials),
		into(s.comments, &g.comments),
		into(s.users, &g.users),
	)
	return g, err
}

// info builds the joins shared by the course page and the class view.
func (g courseGraph) info(c models.Course) (models.CourseInfo, error) {
	project, err := JoinOne(c.IDProject, g.projects, projectID, "project")
	if err != nil {
		return models.CourseInfo{}, err
	}
	th := threads{comments: g.comments, users: g.users}
	tutorials, err := ProjectErr(JoinMany(c.IDTutorials, g.tutorials, contributionID[models.Post]), th.postView)
	if err != nil {
		return models.CourseInfo{}, err
	}
	comments, err := th.viewsFor(c.IDComments)
	if err != nil {
		return models.CourseInfo{}, err
	}
	return models.CourseInfo{
		CourseSummary: c.Summary(),
		Routes:        Project(JoinMany(c.IDRoutes, g.routes, routeID), models.Route.Summary),
		Modules:       moduleClasses(c.Modules, g.classes),
		Project:       project,
		Tutorials:     tutorials,
		Comments:      comments,
	}, nil
}

// moduleClasses resolves each module's class ids against classes, keeping
// module order.
func moduleClasses(modules []models.Module, classes []models.Class) []models.ModuleClasses {
	return JoinEach(modules,
		func(m models.Module) []string { return m.IDClasses },
		classes, classID,
		func(m models.Module, matched []models.Class) models.ModuleClasses {
			return models.ModuleClasses{Module: m, Classes: Project(matched, models.Class.Summary)}
		})
}

// Get returns the complete course page.
func (s *CourseService) Get(ctx context.Context, id string) (models.CourseDetail, error) {
	g, err := s.loadGraph(ctx)
	if err != nil {
		return models.CourseDetail{}, err
	}
	c, err := JoinOne(id, g.courses, courseID, "course")
	if err != nil {
		return models.CourseDetail{}, err
	}
	teacher, err := JoinOne(c.IDTeacher, g.teachers, teacherID, "teacher")
	if err != nil {
		return models.CourseDetail{}, err
	}
	info, err := g.info(c)
	if err != nil {
		return models.CourseDetail{}, err
	}
	return models.CourseDetail{
		CourseInfo:        info,
		Teacher:           teacher.Basic(),
		Description:       c.Description,
		TimeContent:       c.TimeContent,
		TimePractice:      c.TimePractice,
		PreviousKnowledge: c.PreviousKnowledge,
		Software:          c.Software,
	}, nil
}

// GetClassView returns the course as shown next to the class player.
func (s *CourseService) GetClassView(ctx context.Context, id string) (models.CourseClassView, error) {
	g, err := s.loadGraph(ctx)
	if err != nil {
		return models.CourseClassView{}, err
	}
	c, err := JoinOne(id, g.courses, courseID, "course")
	if err != nil {
		return models.CourseClassView{}, err
	}
	teacher, err := JoinOne(c.IDTeacher, g.teachers, teacherID, "teacher")
	if err != nil {
		return models.CourseClassView{}, err
	}
	info, err := g.info(c)
	if err != nil {
		return models.CourseClassView{}, err
	}
	return models.CourseClassView{CourseInfo: info, Teacher: teacher.Summary()}, nil
}

// GetBasic returns the stored record.
func (s *CourseService) GetBasic(ctx context.Context, id string) (models.Course, error) {
	all, err := s.courses.All(ctx)
	if err != nil {
		return models.Course{}, err
	}
	return JoinOne(id, all, courseID, "course")
}

func (s *CourseService) Create(ctx context.Context, c models.Course) (models.Course, error) {
	g, err := s.loadGraph(ctx)
	if err != nil {
		return models.Course{}, err
	}
	err = s.courses.Mutate(ctx, func(all []models.Course) ([]models.Course, error) {
		if err := s.check(c, all, g); err != nil {
			return nil, err
		}
		return append(all, c), nil
	})
	if err != nil {
		return models.Course{}, err
	}
	s.publish(EventCreated, store.Courses, c.IDCourse)
	return c, nil
}

// Update replaces the course id in place.
func (s *CourseService) Update(ctx context.Context, id string, c models.Course) (models.Course, error) {
	g, err := s.loadGraph(ctx)
	if err != nil {
		return models.Course{}, err
	}
	err = s.courses.Mutate(ctx, func(all []models.Course) ([]models.Course, error) {
		i := indexOf(all, courseID, id)
		if i < 0 {
			return nil, notFound("course %s not found", id)
		}
		if err := s.check(c, Except(all, courseID, id), g); err != nil {
			return nil, err
		}
		all[i] = c
		return all, nil
	})
	if err != nil {
		return models.Course{}, err
	}
	s.publish(EventUpdated, store.Courses, c.IDCourse)
	return c, nil
}

// Delete strips the course from every route section and teacher, then
// removes it. Each collection is saved on its own.
func (s *CourseService) Delete(ctx context.Context, id string) (models.Course, error) {
	if _, err := s.GetBasic(ctx, id); err != nil {
		return models.Course{}, err
	}

	var routesTouched int
	err := s.routes.Mutate(ctx, func(all []models.Route) ([]models.Route, error) {
		for i := range all {
			for j := range all[i].Sections {
				var found bool
				if all[i].Sections[j].Courses, found = without(all[i].Sections[j].Courses, id); found {
					routesTouched++
				}
			}
		}
		return all, nil
	})
	if err != nil {
		return models.Course{}, err
	}
	if routesTouched > 0 {
		s.publish(EventCascaded, store.Routes, id)
	}

	var teachersTouched int
	err = s.teachers.Mutate(ctx, func(all []models.Teacher) ([]models.Teacher, error) {
		for i := range all {
			var found bool
			if all[i].Courses, found = without(all[i].Courses, id); found {
				teachersTouched++
			}
		}
		return all, nil
	})
	if err != nil {
		return models.Course{}, err
	}
	if teachersTouched > 0 {
		s.publish(EventCascaded, store.Teachers, id)
	}

	var deleted models.Course
	err = s.courses.Mutate(ctx, func(all []models.Course) ([]models.Course, error) {
		i := indexOf(all, courseID, id)
		if i < 0 {
			return nil, notFound("course %s not found", id)
		}
		deleted = all[i]
		return append(all[:i], all[i+1:]...), nil
	})
	if err != nil {
		return models.Course{}, err
	}
	s.log.WithFields(logrus.Fields{
		"course":   id,
		"sections": routesTouched,
		"teachers": teachersTouched,
	}).Info("course deleted")
	s.publish(EventDeleted, store.Courses, id)
	return deleted, nil
}

func (s *CourseService) check(c models.Course, others []models.Course, g courseGraph) error {
	if err := Unique(c.IDCourse, others, courseID, "course"); err != nil {
		return err
	}
	if err := UniqueName(c.Name, others, courseName, "course"); err != nil {
		return err
	}
	if err := Exists(c.IDTeacher, g.teachers, teacherID, "teacher"); err != nil {
		return err
	}
	if err := Exists(c.IDProject, g.projects, projectID, "project"); err != nil {
		return err
	}
	if err := ExistAll(c.IDRoutes, g.routes, routeID, "route"); err != nil {
		return err
	}
	if err := ExistAll(c.IDTutorials, g.tutorials, contributionID[models.Post], "tutorial"); err != nil {
		return err
	}
	if err := ExistAll(c.IDComments, g.comments, contributionID[models.Comment], "comment"); err != nil {
		return err
	}
	return ExistAll(c.ClassIDs(), g.classes, classID, "class")
}

// stripTutorial removes a deleted tutorial from every course.
func (b base) stripTutorial(ctx context.Context, id uuid.UUID) (int, error) {
	var touched int
	err := b.courses.Mutate(ctx, func(all []models.Course) ([]models.Course, error) {
		for i := range all {
			var found bool
			if all[i].IDTutorials, found = without(all[i].IDTutorials, id); found {
				touched++
			}
		}
		return all, nil
	})
	return touched, err
}
