package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/vnkhanh/e-learning-backend/models"
	"github.com/vnkhanh/e-learning-backend/store"
)

var (
	userAna  = uuid.MustParse("9f1c2a7e-0a51-4c1e-9d4a-1b2f3c4d5e01")
	userLuis = uuid.MustParse("9f1c2a7e-0a51-4c1e-9d4a-1b2f3c4d5e02")

	glossGo   = uuid.MustParse("3b0e8c55-7a64-4f0b-8f6e-000000000001")
	glossHTTP = uuid.MustParse("3b0e8c55-7a64-4f0b-8f6e-000000000002")

	commentGreat  = uuid.MustParse("c0000000-0000-4000-8000-000000000001")
	commentThanks = uuid.MustParse("c0000000-0000-4000-8000-000000000002")
	commentForum  = uuid.MustParse("c0000000-0000-4000-8000-000000000003")

	blogGo     = uuid.MustParse("b0000000-0000-4000-8000-000000000001")
	forumHelp  = uuid.MustParse("f0000000-0000-4000-8000-000000000001")
	tutorialGo = uuid.MustParse("a0000000-0000-4000-8000-000000000001")
)

// recorder collects published change events.
type recorder struct {
	mu     sync.Mutex
	events []ChangeEvent
}

func (r *recorder) Publish(ev ChangeEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) has(t EventType, collection string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ev := range r.events {
		if ev.Type == t && ev.Collection == collection {
			return true
		}
	}
	return false
}

type fixture struct {
	ctx    context.Context
	mem    *store.Memory
	deps   Deps
	events *recorder
}

func header(id, user uuid.UUID, kind models.ContributionKind) models.Contribution {
	return models.Contribution{
		IDContribution:  id,
		DatePublication: "2021-03-14",
		Likes:           3,
		IDUser:          user,
		Kind:            kind,
	}
}

// newFixture seeds a small but complete content graph.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	mem := store.NewMemory()

	must := func(err error) {
		t.Helper()
		require.NoError(t, err)
	}

	must(store.Seed(ctx, mem, store.Users,
		models.User{IDUser: userAna, Name: "Ana", Kind: models.UserStudent, Status: models.StatusPublic},
		models.User{IDUser: userLuis, Name: "Luis", Kind: models.UserTeacher, Status: models.StatusPublic,
			Teacher: &models.TeacherSummary{IDTeacher: "t1", Name: "Luis"}},
	))
	must(store.Seed(ctx, mem, store.Teachers,
		models.Teacher{IDTeacher: "t1", Name: "Luis", WorkPosition: "Backend", LongDescription: "long",
			SocialNetwork: []models.SocialNetwork{{Kind: models.SocialTwitter, URL: "https://twitter.com/luis"}},
			Courses:       []string{"c1"}},
		models.Teacher{IDTeacher: "t2", Name: "Marta", WorkPosition: "Frontend"},
	))
	must(store.Seed(ctx, mem, store.Glossary,
		models.GlossaryEntry{IDGlossary: glossGo, Title: "Go"},
		models.GlossaryEntry{IDGlossary: glossHTTP, Title: "HTTP"},
	))
	must(store.Seed(ctx, mem, store.Projects,
		models.Project{IDProject: "p1", Title: "API REST"},
	))
	must(store.Seed(ctx, mem, store.Classes,
		models.Class{IDClass: "cl1", Name: "Intro", IDComments: []uuid.UUID{commentGreat}},
		models.Class{IDClass: "cl2", Name: "Variables"},
		models.Class{IDClass: "cl3", Name: "Funciones"},
	))
	must(store.Seed(ctx, mem, store.Comments,
		models.Comment{Contribution: header(commentGreat, userAna, models.KindComment), Content: "Great", IDAnswers: []uuid.UUID{commentThanks}},
		models.Comment{Contribution: header(commentThanks, userLuis, models.KindComment), Content: "Thanks"},
		models.Comment{Contribution: header(commentForum, userLuis, models.KindComment), Content: "Try go vet"},
	))
	must(store.Seed(ctx, mem, store.Blogs,
		models.Post{Contribution: header(blogGo, userAna, models.KindBlog), Title: "Why Go", IDComments: []uuid.UUID{commentGreat}},
	))
	must(store.Seed(ctx, mem, store.Forums,
		models.Post{Contribution: header(forumHelp, userAna, models.KindForum), Title: "Help", IDComments: []uuid.UUID{commentForum}},
	))
	must(store.Seed(ctx, mem, store.Tutorials,
		models.Post{Contribution: header(tutorialGo, userLuis, models.KindTutorial), Title: "Install Go"},
	))
	must(store.Seed(ctx, mem, store.Courses,
		models.Course{
			IDCourse: "c1", Name: "Go Básico", IDTeacher: "t1", IDRoutes: []string{"r1"}, IDProject: "p1",
			Modules: []models.Module{
				{IDModule: "m1", Name: "Inicio", IDClasses: []string{"cl1", "cl2"}},
				{IDModule: "m2", Name: "Funciones", IDClasses: []string{"cl3"}},
			},
			IDTutorials: []uuid.UUID{tutorialGo},
			IDComments:  []uuid.UUID{commentForum},
			Description: "Aprende Go",
		},
		models.Course{
			IDCourse: "c2", Name: "Go Avanzado", IDTeacher: "t2", IDProject: "p1",
			Modules: []models.Module{{IDModule: "m3", Name: "Concurrencia", IDClasses: []string{"cl3"}}},
		},
	))
	must(store.Seed(ctx, mem, store.Routes,
		models.Route{
			IDRoute: "r1", Name: "Backend con Go", CoursesNumber: 2,
			Glossary: []uuid.UUID{glossHTTP, glossGo},
			Teachers: []string{"t2", "t1"},
			Sections: []models.Section{{Title: "Fundamentos", Level: models.LevelBasic, Courses: []string{"c2", "c1"}}},
		},
		models.Route{IDRoute: "r2", Name: "Frontend"},
	))
	must(store.Seed(ctx, mem, store.Categories,
		models.Category{IDCategory: "cat1", Name: "Desarrollo", Routes: []string{"r1", "r2"}},
		models.Category{IDCategory: "cat2", Name: "Diseño", Routes: []string{"r2"}},
	))

	log, _ := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	events := &recorder{}
	return &fixture{
		ctx:    ctx,
		mem:    mem,
		deps:   Deps{DB: store.NewDB(mem), Publisher: events, Log: log},
		events: events,
	}
}

// snapshot returns the raw stored collection for unchanged-on-failure checks.
func (f *fixture) snapshot(t *testing.T, collection string) []json.RawMessage {
	t.Helper()
	raw, err := f.mem.Load(f.ctx, collection)
	require.NoError(t, err)
	return raw
}

func stored[T any](t *testing.T, f *fixture, collection string) []T {
	t.Helper()
	records, err := store.Open[T](f.deps.DB, collection).All(f.ctx)
	require.NoError(t, err)
	return records
}
