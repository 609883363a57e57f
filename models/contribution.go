package models

import "github.com/google/uuid"

// ContributionKind tags a contribution with the collection it lives in.
type ContributionKind string

const (
	KindComment  ContributionKind = "comment"
	KindBlog     ContributionKind = "blog"
	KindForum    ContributionKind = "forum"
	KindTutorial ContributionKind = "tutorial"
)

// PostKinds are the kinds whose records carry a title and a comment list.
var PostKinds = []ContributionKind{KindBlog, KindForum, KindTutorial}

func (k ContributionKind) Valid() bool {
	switch k {
	case KindComment, KindBlog, KindForum, KindTutorial:
		return true
	}
	return false
}

// Collection returns the plural collection name that stores the kind.
func (k ContributionKind) Collection() string {
	return string(k) + "s"
}

// Contribution is the header shared by every contribution kind.
type Contribution struct {
	IDContribution  uuid.UUID        `json:"id_contribution" binding:"required"`
	DatePublication string           `json:"date_publication" binding:"required"`
	Likes           int              `json:"likes" binding:"gte=0"`
	IDUser          uuid.UUID        `json:"id_user" binding:"required"`
	Kind            ContributionKind `json:"kind" binding:"required"`
}

// Comment is a contribution with inline content. Top-level comments list
// their answers; answers are comments too.
type Comment struct {
	Contribution
	Content   string      `json:"content" binding:"required"`
	IDAnswers []uuid.UUID `json:"id_answers"`
}

// Post is a blog, forum or tutorial entry.
type Post struct {
	Contribution
	Title      string      `json:"title" binding:"required"`
	IDComments []uuid.UUID `json:"id_comments"`
}

func (c Comment) Header() Contribution { return c.Contribution }
func (c Comment) Children() []uuid.UUID { return c.IDAnswers }

func (p Post) Header() Contribution { return p.Contribution }
func (p Post) Children() []uuid.UUID { return p.IDComments }

// CommentView is a comment with its author. It has no answers field, so an
// answer cannot carry answers of its own.
type CommentView struct {
	Comment
	User User `json:"user"`
}

// Thread is a top-level comment with its answers.
type Thread struct {
	CommentView
	Answers []CommentView `json:"answers"`
}

// PostView is a post with its author.
type PostView struct {
	Post
	User User `json:"user"`
}

// PostDetail is a post with its author and comment threads.
type PostDetail struct {
	PostView
	Comments []Thread `json:"comments"`
}
