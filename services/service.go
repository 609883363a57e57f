package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vnkhanh/e-learning-backend/models"
	"github.com/vnkhanh/e-learning-backend/store"
)

// Deps are the collaborators every service is built from.
type Deps struct {
	DB        *store.DB
	Publisher Publisher
	Log       logrus.FieldLogger
}

// base holds the typed collections and shared plumbing of all services.
type base struct {
	categories store.Collection[models.Category]
	routes     store.Collection[models.Route]
	courses    store.Collection[models.Course]
	classes    store.Collection[models.Class]
	teachers   store.Collection[models.Teacher]
	users      store.Collection[models.User]
	glossary   store.Collection[models.GlossaryEntry]
	projects   store.Collection[models.Project]
	comments   store.Collection[models.Comment]

	db  *store.DB
	pub Publisher
	log logrus.FieldLogger
}

func newBase(d Deps) base {
	pub := d.Publisher
	if pub == nil {
		pub = nopPublisher{}
	}
	log := d.Log
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		log = l
	}
	return base{
		categories: store.Open[models.Category](d.DB, store.Categories),
		routes:     store.Open[models.Route](d.DB, store.Routes),
		courses:    store.Open[models.Course](d.DB, store.Courses),
		classes:    store.Open[models.Class](d.DB, store.Classes),
		teachers:   store.Open[models.Teacher](d.DB, store.Teachers),
		users:      store.Open[models.User](d.DB, store.Users),
		glossary:   store.Open[models.GlossaryEntry](d.DB, store.Glossary),
		projects:   store.Open[models.Project](d.DB, store.Projects),
		comments:   store.Open[models.Comment](d.DB, store.Comments),
		db:         d.DB,
		pub:        pub,
		log:        log,
	}
}

// posts opens the collection holding a blog, forum or tutorial kind.
func (b base) posts(kind models.ContributionKind) store.Collection[models.Post] {
	return store.Open[models.Post](b.db, kind.Collection())
}

func (b base) publish(t EventType, collection, id string) {
	b.pub.Publish(ChangeEvent{Type: t, Collection: collection, ID: id})
	b.log.WithFields(logrus.Fields{
		"event":      t,
		"collection": collection,
		"id":         id,
	}).Debug("collection written")
}

// loader fills one destination slice from a collection.
type loader func(ctx context.Context) error

func into[T any](c store.Collection[T], dst *[]T) loader {
	return func(ctx context.Context) error {
		records, err := c.All(ctx)
		if err != nil {
			return err
		}
		*dst = records
		return nil
	}
}

// loadAll reads independent collections concurrently.
func loadAll(ctx context.Context, loaders ...loader) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, l := range loaders {
		l := l
		g.Go(func() error { return l(ctx) })
	}
	return g.Wait()
}

// Key selectors.

func categoryID(c models.Category) string { return c.IDCategory }
func categoryName(c models.Category) string { return c.Name }
func routeID(r models.Route) string { return r.IDRoute }
func routeName(r models.Route) string { return r.Name }
func courseID(c models.Course) string { return c.IDCourse }
func courseName(c models.Course) string { return c.Name }
func classID(c models.Class) string { return c.IDClass }
func className(c models.Class) string { return c.Name }
func teacherID(t models.Teacher) string { return t.IDTeacher }
func userID(u models.User) uuid.UUID { return u.IDUser }
func glossaryID(g models.GlossaryEntry) uuid.UUID { return g.IDGlossary }
func projectID(p models.Project) string { return p.IDProject }

// contributionID selects the primary key of any contribution kind.
func contributionID[T interface{ Header() models.Contribution }](c T) uuid.UUID {
	return c.Header().IDContribution
}
