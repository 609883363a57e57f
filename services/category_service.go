package services

import (
	"context"

	"github.com/vnkhanh/e-learning-backend/models"
	"github.com/vnkhanh/e-learning-backend/store"
)

type CategoryService struct {
	base
}

func NewCategoryService(d Deps) *CategoryService {
	return &CategoryService{base: newBase(d)}
}

// List returns every category as id and name.
func (s *CategoryService) List(ctx context.Context) ([]models.CategorySummary, error) {
	all, err := s.categories.All(ctx)
	if err != nil {
		return nil, err
	}
	return Project(all, models.Category.Summary), nil
}

// Get returns a category with its route summaries.
func (s *CategoryService) Get(ctx context.Context, id string) (models.CategoryDetail, error) {
	var (
		categories []models.Category
		routes     []models.Route
	)
	if err := loadAll(ctx, into(s.categories, &categories), into(s.routes, &routes)); err != nil {
		return models.CategoryDetail{}, err
	}
	c, err := JoinOne(id, categories, categoryID, "category")
	if err != nil {
		return models.CategoryDetail{}, err
	}
	return models.CategoryDetail{
		IDCategory: c.IDCategory,
		Name:       c.Name,
		Routes:     Project(JoinMany(c.Routes, routes, routeID), models.Route.Summary),
	}, nil
}

// GetBasic returns the stored record.
func (s *CategoryService) GetBasic(ctx context.Context, id string) (models.Category, error) {
	all, err := s.categories.All(ctx)
	if err != nil {
		return models.Category{}, err
	}
	return JoinOne(id, all, categoryID, "category")
}

func (s *CategoryService) Create(ctx context.Context, c models.Category) (models.Category, error) {
	routes, err := s.routes.All(ctx)
	if err != nil {
		return models.Category{}, err
	}
	err = s.categories.Mutate(ctx, func(all []models.Category) ([]models.Category, error) {
		if err := s.check(c, all, routes); err != nil {
			return nil, err
		}
		return append(all, c), nil
	})
	if err != nil {
		return models.Category{}, err
	}
	s.publish(EventCreated, store.Categories, c.IDCategory)
	return c, nil
}

// Update replaces the category id in place. c may carry a new id.
func (s *CategoryService) Update(ctx context.Context, id string, c models.Category) (models.Category, error) {
	routes, err := s.routes.All(ctx)
	if err != nil {
		return models.Category{}, err
	}
	err = s.categories.Mutate(ctx, func(all []models.Category) ([]models.Category, error) {
		i := indexOf(all, categoryID, id)
		if i < 0 {
			return nil, notFound("category %s not found", id)
		}
		if err := s.check(c, Except(all, categoryID, id), routes); err != nil {
			return nil, err
		}
		all[i] = c
		return all, nil
	})
	if err != nil {
		return models.Category{}, err
	}
	s.publish(EventUpdated, store.Categories, c.IDCategory)
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) (models.Category, error) {
	var deleted models.Category
	err := s.categories.Mutate(ctx, func(all []models.Category) ([]models.Category, error) {
		i := indexOf(all, categoryID, id)
		if i < 0 {
			return nil, notFound("category %s not found", id)
		}
		deleted = all[i]
		return append(all[:i], all[i+1:]...), nil
	})
	if err != nil {
		return models.Category{}, err
	}
	s.publish(EventDeleted, store.Categories, id)
	return deleted, nil
}

func (s *CategoryService) check(c models.Category, others []models.Category, routes []models.Route) error {
	if err := Unique(c.IDCategory, others, categoryID, "category"); err != nil {
		return err
	}
	if err := UniqueName(c.Name, others, categoryName, "category"); err != nil {
		return err
	}
	return ExistAll(c.Routes, routes, routeID, "route")
}
