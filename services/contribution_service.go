package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vnkhanh/e-learning-backend/models"
	"github.com/vnkhanh/e-learning-backend/store"
)

// CommentCascade selects which back-references a comment delete cleans up.
type CommentCascade string

const (
	// CascadeNone deletes the comment only.
	CascadeNone CommentCascade = "comment"
	// CascadeAnswers strips the comment from other comments' answers.
	CascadeAnswers  CommentCascade = "answers"
	CascadeBlog     CommentCascade = "blog"
	CascadeForum    CommentCascade = "forum"
	CascadeTutorial CommentCascade = "tutorial"
	// CascadeAll runs every cascade above and also cleans classes and courses.
	CascadeAll CommentCascade = "all"
)

// ParseCommentCascade reads the ?kind= query value; empty means CascadeNone.
func ParseCommentCascade(v string) (CommentCascade, error) {
	switch c := CommentCascade(v); c {
	case "":
		return CascadeNone, nil
	case CascadeNone, CascadeAnswers, CascadeBlog, CascadeForum, CascadeTutorial, CascadeAll:
		return c, nil
	}
	return "", invalid("invalid delete kind %q", v)
}

// contribution is the constraint over the two stored contribution shapes.
type contribution interface {
	models.Comment | models.Post
	Header() models.Contribution
	Children() []uuid.UUID
}

// ContributionService serves comments, blogs, forums and tutorials.
type ContributionService struct {
	base
}

func NewContributionService(d Deps) *ContributionService {
	return &ContributionService{base: newBase(d)}
}

func postKind(kind models.ContributionKind) error {
	if kind == models.KindBlog || kind == models.KindForum || kind == models.KindTutorial {
		return nil
	}
	return invalid("%q is not a post kind", kind)
}

func (s *ContributionService) loadThreads(ctx context.Context) (threads, error) {
	var t threads
	err := loadAll(ctx, into(s.comments, &t.comments), into(s.users, &t.users))
	return t, err
}

// ListComments returns every comment with its author and answers.
func (s *ContributionService) ListComments(ctx context.Context) ([]models.Thread, error) {
	t, err := s.loadThreads(ctx)
	if err != nil {
		return nil, err
	}
	return ProjectErr(t.comments, t.thread)
}

func (s *ContributionService) GetComment(ctx context.Context, id uuid.UUID) (models.Thread, error) {
	t, err := s.loadThreads(ctx)
	if err != nil {
		return models.Thread{}, err
	}
	c, err := JoinOne(id, t.comments, contributionID[models.Comment], "comment")
	if err != nil {
		return models.Thread{}, err
	}
	return t.thread(c)
}

// GetCommentBasic returns the comment and its author, without answers.
func (s *ContributionService) GetCommentBasic(ctx context.Context, id uuid.UUID) (models.CommentView, error) {
	t, err := s.loadThreads(ctx)
	if err != nil {
		return models.CommentView{}, err
	}
	c, err := JoinOne(id, t.comments, contributionID[models.Comment], "comment")
	if err != nil {
		return models.CommentView{}, err
	}
	return t.commentView(c)
}

func (s *ContributionService) CreateComment(ctx context.Context, c models.Comment) (models.Comment, error) {
	if err := create(ctx, s.base, s.comments, models.KindComment, c, "answers"); err != nil {
		return models.Comment{}, err
	}
	return c, nil
}

func (s *ContributionService) UpdateComment(ctx context.Context, id uuid.UUID, c models.Comment) (models.Comment, error) {
	if err := update(ctx, s.base, s.comments, models.KindComment, id, c); err != nil {
		return models.Comment{}, err
	}
	return c, nil
}

// DeleteComment removes a comment and runs the selected cascade. Every
// collection involved is saved on its own; the comment itself goes last.
func (s *ContributionService) DeleteComment(ctx context.Context, id uuid.UUID, cascade CommentCascade) (models.Comment, error) {
	comments, err := s.comments.All(ctx)
	if err != nil {
		return models.Comment{}, err
	}
	if _, err := JoinOne(id, comments, contributionID[models.Comment], "comment"); err != nil {
		return models.Comment{}, err
	}

	var kinds []models.ContributionKind
	switch cascade {
	case CascadeBlog, CascadeForum, CascadeTutorial:
		kinds = []models.ContributionKind{models.ContributionKind(cascade)}
	case CascadeAll:
		kinds = models.PostKinds
	}
	for _, kind := range kinds {
		if err := s.stripFromPosts(ctx, kind, id); err != nil {
			return models.Comment{}, err
		}
	}
	if cascade == CascadeAll {
		if err := s.stripFromClassesAndCourses(ctx, id); err != nil {
			return models.Comment{}, err
		}
	}

	stripAnswers := cascade == CascadeAnswers || cascade == CascadeAll
	var (
		deleted models.Comment
		touched int
	)
	err = s.comments.Mutate(ctx, func(all []models.Comment) ([]models.Comment, error) {
		i := indexOf(all, contributionID[models.Comment], id)
		if i < 0 {
			return nil, notFound("comment %s not found", id)
		}
		deleted = all[i]
		all = append(all[:i], all[i+1:]...)
		if stripAnswers {
			for j := range all {
				var found bool
				if all[j].IDAnswers, found = without(all[j].IDAnswers, id); found {
					touched++
				}
			}
		}
		return all, nil
	})
	if err != nil {
		return models.Comment{}, err
	}
	s.log.WithFields(logrus.Fields{
		"comment": id,
		"cascade": cascade,
		"answers": touched,
	}).Info("comment deleted")
	s.publish(EventDeleted, store.Comments, id.String())
	return deleted, nil
}

func (s *ContributionService) stripFromPosts(ctx context.Context, kind models.ContributionKind, id uuid.UUID) error {
	var touched int
	err := s.posts(kind).Mutate(ctx, func(all []models.Post) ([]models.Post, error) {
		for i := range all {
			var found bool
			if all[i].IDComments, found = without(all[i].IDComments, id); found {
				touched++
			}
		}
		return all, nil
	})
	if err != nil {
		return err
	}
	if touched > 0 {
		s.publish(EventCascaded, kind.Collection(), id.String())
	}
	return nil
}

func (s *ContributionService) stripFromClassesAndCourses(ctx context.Context, id uuid.UUID) error {
	var classesTouched, coursesTouched int
	err := s.classes.Mutate(ctx, func(all []models.Class) ([]models.Class, error) {
		for i := range all {
			var found bool
			if all[i].IDComments, found = without(all[i].IDComments, id); found {
				classesTouched++
			}
		}
		return all, nil
	})
	if err != nil {
		return err
	}
	if classesTouched > 0 {
		s.publish(EventCascaded, store.Classes, id.String())
	}
	err = s.courses.Mutate(ctx, func(all []models.Course) ([]models.Course, error) {
		for i := range all {
			var found bool
			if all[i].IDComments, found = without(all[i].IDComments, id); found {
				coursesTouched++
			}
		}
		return all, nil
	})
	if err != nil {
		return err
	}
	if coursesTouched > 0 {
		s.publish(EventCascaded, store.Courses, id.String())
	}
	return nil
}

// ListPosts returns every post of kind with its author and comment threads.
func (s *ContributionService) ListPosts(ctx context.Context, kind models.ContributionKind) ([]models.PostDetail, error) {
	if err := postKind(kind); err != nil {
		return nil, err
	}
	var (
		t     threads
		posts []models.Post
	)
	err := loadAll(ctx,
		into(s.posts(kind), &posts),
		into(s.comments, &t.comments),
		into(s.users, &t.users),
	)
	if err != nil {
		return nil, err
	}
	return ProjectErr(posts, t.postDetail)
}

func (s *ContributionService) GetPost(ctx context.Context, kind models.ContributionKind, id uuid.UUID) (models.PostDetail, error) {
	if err := postKind(kind); err != nil {
		return models.PostDetail{}, err
	}
	var (
		t     threads
		posts []models.Post
	)
	err := loadAll(ctx,
		into(s.posts(kind), &posts),
		into(s.comments, &t.comments),
		into(s.users, &t.users),
	)
	if err != nil {
		return models.PostDetail{}, err
	}
	p, err := JoinOne(id, posts, contributionID[models.Post], string(kind))
	if err != nil {
		return models.PostDetail{}, err
	}
	return t.postDetail(p)
}

// GetPostBasic returns the post and its author, without comments.
func (s *ContributionService) GetPostBasic(ctx context.Context, kind models.ContributionKind, id uuid.UUID) (models.PostView, error) {
	if err := postKind(kind); err != nil {
		return models.PostView{}, err
	}
	var (
		posts []models.Post
		users []models.User
	)
	if err := loadAll(ctx, into(s.posts(kind), &posts), into(s.users, &users)); err != nil {
		return models.PostView{}, err
	}
	p, err := JoinOne(id, posts, contributionID[models.Post], string(kind))
	if err != nil {
		return models.PostView{}, err
	}
	return threads{users: users}.postView(p)
}

func (s *ContributionService) CreatePost(ctx context.Context, kind models.ContributionKind, p models.Post) (models.Post, error) {
	if err := postKind(kind); err != nil {
		return models.Post{}, err
	}
	if err := create(ctx, s.base, s.posts(kind), kind, p, "comments"); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

func (s *ContributionService) UpdatePost(ctx context.Context, kind models.ContributionKind, id uuid.UUID, p models.Post) (models.Post, error) {
	if err := postKind(kind); err != nil {
		return models.Post{}, err
	}
	if err := update(ctx, s.base, s.posts(kind), kind, id, p); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

// DeletePost removes a post. Deleting a tutorial also strips it from the
// courses that list it.
func (s *ContributionService) DeletePost(ctx context.Context, kind models.ContributionKind, id uuid.UUID) (models.Post, error) {
	if err := postKind(kind); err != nil {
		return models.Post{}, err
	}
	posts := s.posts(kind)
	all, err := posts.All(ctx)
	if err != nil {
		return models.Post{}, err
	}
	if _, err := JoinOne(id, all, contributionID[models.Post], string(kind)); err != nil {
		return models.Post{}, err
	}

	if kind == models.KindTutorial {
		touched, err := s.stripTutorial(ctx, id)
		if err != nil {
			return models.Post{}, err
		}
		if touched > 0 {
			s.publish(EventCascaded, store.Courses, id.String())
		}
	}

	var deleted models.Post
	err = posts.Mutate(ctx, func(all []models.Post) ([]models.Post, error) {
		i := indexOf(all, contributionID[models.Post], id)
		if i < 0 {
			return nil, notFound("%s %s not found", kind, id)
		}
		deleted = all[i]
		return append(all[:i], all[i+1:]...), nil
	})
	if err != nil {
		return models.Post{}, err
	}
	s.publish(EventDeleted, posts.Name(), id.String())
	return deleted, nil
}

// create validates and appends a new contribution. children names the
// reverse list that must start empty.
func create[T contribution](ctx context.Context, b base, coll store.Collection[T], kind models.ContributionKind, rec T, children string) error {
	h := rec.Header()
	if h.Kind != kind {
		return invalid("kind %q does not belong in %s", h.Kind, coll.Name())
	}
	if len(rec.Children()) > 0 {
		return invalid("a new %s cannot have %s", kind, children)
	}
	users, err := b.users.All(ctx)
	if err != nil {
		return err
	}
	if err := Exists(h.IDUser, users, userID, "user"); err != nil {
		return err
	}
	err = coll.Mutate(ctx, func(all []T) ([]T, error) {
		if err := Unique(h.IDContribution, all, contributionID[T], string(kind)); err != nil {
			return nil, err
		}
		return append(all, rec), nil
	})
	if err != nil {
		return err
	}
	b.publish(EventCreated, coll.Name(), h.IDContribution.String())
	return nil
}

// update replaces the contribution id in place after checking its author
// and that every listed child is a stored comment.
func update[T contribution](ctx context.Context, b base, coll store.Collection[T], kind models.ContributionKind, id uuid.UUID, rec T) error {
	h := rec.Header()
	if h.Kind != kind {
		return invalid("kind %q does not belong in %s", h.Kind, coll.Name())
	}
	for _, child := range rec.Children() {
		if child == h.IDContribution || child == id {
			return invalid("%s %s cannot list itself", kind, child)
		}
	}
	var (
		users    []models.User
		comments []models.Comment
	)
	if err := loadAll(ctx, into(b.users, &users), into(b.comments, &comments)); err != nil {
		return err
	}
	err := coll.Mutate(ctx, func(all []T) ([]T, error) {
		i := indexOf(all, contributionID[T], id)
		if i < 0 {
			return nil, notFound("%s %s not found", kind, id)
		}
		if err := Unique(h.IDContribution, Except(all, contributionID[T], id), contributionID[T], string(kind)); err != nil {
			return nil, err
		}
		if err := Exists(h.IDUser, users, userID, "user"); err != nil {
			return nil, err
		}
		if err := ExistAll(rec.Children(), comments, contributionID[models.Comment], "comment"); err != nil {
			return nil, err
		}
		all[i] = rec
		return all, nil
	})
	if err != nil {
		return err
	}
	b.publish(EventUpdated, coll.Name(), h.IDContribution.String())
	return nil
}
