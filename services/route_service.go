package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/vnkhanh/e-learning-backend/models"
	"github.com/vnkhanh/e-learning-backend/store"
)

type RouteService struct {
	base
}

func NewRouteService(d Deps) *RouteService {
	return &RouteService{base: newBase(d)}
}

// List returns every route as a summary.
func (s *RouteService) List(ctx context.Context) ([]models.RouteSummary, error) {
	all, err := s.routes.All(ctx)
	if err != nil {
		return nil, err
	}
	return Project(all, models.Route.Summary), nil
}

// Get composes a route with its glossary, teachers and section courses.
func (s *RouteService) Get(ctx context.Context, id string) (models.RouteDetail, error) {
	var (
		routes   []models.Route
		glossary []models.GlossaryEntry
		teachers []models.Teacher
		courses  []models.Course
	)
	err := loadAll(ctx,
		into(s.routes, &routes),
		into(s.glossary, &glossary),
		into(s.teachers, &teachers),
		into(s.courses, &courses),
	)
	if err != nil {
		return models.RouteDetail{}, err
	}

	r, err := JoinOne(id, routes, routeID, "route")
	if err != nil {
		return models.RouteDetail{}, err
	}
	sections := JoinEach(r.Sections,
		func(sec models.Section) []string { return sec.Courses },
		courses, courseID,
		func(sec models.Section, matched []models.Course) models.SectionCourses {
			return models.SectionCourses{
				Title:   sec.Title,
				Level:   sec.Level,
				Courses: Project(matched, models.Course.Summary),
			}
		})

	return models.RouteDetail{
		RouteSummary:     r.Summary(),
		ShortDescription: r.ShortDescription,
		LongDescription:  r.LongDescription,
		Glossary:         JoinMany(r.Glossary, glossary, glossaryID),
		Teachers:         Project(JoinMany(r.Teachers, teachers, teacherID), models.Teacher.Basic),
		Sections:         sections,
	}, nil
}

// GetBasic returns the stored record.
func (s *RouteService) GetBasic(ctx context.Context, id string) (models.Route, error) {
	all, err := s.routes.All(ctx)
	if err != nil {
		return models.Route{}, err
	}
	return JoinOne(id, all, routeID, "route")
}

func (s *RouteService) Create(ctx context.Context, r models.Route) (models.Route, error) {
	refs, err := s.loadRefs(ctx)
	if err != nil {
		return models.Route{}, err
	}
	err = s.routes.Mutate(ctx, func(all []models.Route) ([]models.Route, error) {
		if err := s.check(r, all, refs); err != nil {
			return nil, err
		}
		return append(all, r), nil
	})
	if err != nil {
		return models.Route{}, err
	}
	s.publish(EventCreated, store.Routes, r.IDRoute)
	return r, nil
}

// Update replaces the route id in place.
func (s *RouteService) Update(ctx context.Context, id string, r models.Route) (models.Route, error) {
	refs, err := s.loadRefs(ctx)
	if err != nil {
		return models.Route{}, err
	}
	err = s.routes.Mutate(ctx, func(all []models.Route) ([]models.Route, error) {
		i := indexOf(all, routeID, id)
		if i < 0 {
			return nil, notFound("route %s not found", id)
		}
		if err := s.check(r, Except(all, routeID, id), refs); err != nil {
			return nil, err
		}
		all[i] = r
		return all, nil
	})
	if err != nil {
		return models.Route{}, err
	}
	s.publish(EventUpdated, store.Routes, r.IDRoute)
	return r, nil
}

// Delete strips the route from every category, saves the categories and then
// removes the route. The two writes are not atomic.
func (s *RouteService) Delete(ctx context.Context, id string) (models.Route, error) {
	if _, err := s.GetBasic(ctx, id); err != nil {
		return models.Route{}, err
	}

	var touched int
	err := s.categories.Mutate(ctx, func(all []models.Category) ([]models.Category, error) {
		for i := range all {
			var found bool
			if all[i].Routes, found = without(all[i].Routes, id); found {
				touched++
			}
		}
		return all, nil
	})
	if err != nil {
		return models.Route{}, err
	}
	if touched > 0 {
		s.publish(EventCascaded, store.Categories, id)
	}

	var deleted models.Route
	err = s.routes.Mutate(ctx, func(all []models.Route) ([]models.Route, error) {
		i := indexOf(all, routeID, id)
		if i < 0 {
			return nil, notFound("route %s not found", id)
		}
		deleted = all[i]
		return append(all[:i], all[i+1:]...), nil
	})
	if err != nil {
		return models.Route{}, err
	}
	s.log.WithFields(logrus.Fields{"route": id, "categories": touched}).Info("route deleted")
	s.publish(EventDeleted, store.Routes, id)
	return deleted, nil
}

type routeRefs struct {
	glossary []models.GlossaryEntry
	teachers []models.Teacher
	courses  []models.Course
}

func (s *RouteService) loadRefs(ctx context.Context) (routeRefs, error) {
	var refs routeRefs
	err := loadAll(ctx,
		into(s.glossary, &refs.glossary),
		into(s.teachers, &refs.teachers),
		into(s.courses, &refs.courses),
	)
	return refs, err
}

func (s *RouteService) check(r models.Route, others []models.Route, refs routeRefs) error {
	if err := Unique(r.IDRoute, others, routeID, "route"); err != nil {
		return err
	}
	if err := UniqueName(r.Name, others, routeName, "route"); err != nil {
		return err
	}
	for _, sec := range r.Sections {
		if !sec.Level.Valid() {
			return invalid("invalid section level %q", sec.Level)
		}
	}
	if err := ExistAll(r.Glossary, refs.glossary, glossaryID, "glossary entry"); err != nil {
		return err
	}
	if err := ExistAll(r.Teachers, refs.teachers, teacherID, "teacher"); err != nil {
		return err
	}
	return ExistAll(r.CourseIDs(), refs.courses, courseID, "course")
}
