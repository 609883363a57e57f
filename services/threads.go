package services

import (
	"github.com/google/uuid"

	"github.com/vnkhanh/e-learning-backend/models"
)

// threads composes contributions with their authors and answers. comments is
// the whole comments collection, which answers are resolved against.
type threads struct {
	comments []models.Comment
	users    []models.User
}

func (t threads) commentView(c models.Comment) (models.CommentView, error) {
	u, err := JoinOne(c.IDUser, t.users, userID, "user")
	if err != nil {
		return models.CommentView{}, err
	}
	return models.CommentView{Comment: c, User: u}, nil
}

func (t threads) thread(c models.Comment) (models.Thread, error) {
	v, err := t.commentView(c)
	if err != nil {
		return models.Thread{}, err
	}
	answers := JoinMany(c.IDAnswers, t.comments, contributionID[models.Comment])
	views, err := ProjectErr(answers, t.commentView)
	if err != nil {
		return models.Thread{}, err
	}
	return models.Thread{CommentView: v, Answers: views}, nil
}

// threadsFor resolves a list of comment ids into full threads.
func (t threads) threadsFor(ids []uuid.UUID) ([]models.Thread, error) {
	return ProjectErr(JoinMany(ids, t.comments, contributionID[models.Comment]), t.thread)
}

// viewsFor resolves a list of comment ids into comments with authors only.
func (t threads) viewsFor(ids []uuid.UUID) ([]models.CommentView, error) {
	return ProjectErr(JoinMany(ids, t.comments, contributionID[models.Comment]), t.commentView)
}

func (t threads) postView(p models.Post) (models.PostView, error) {
	u, err := JoinOne(p.IDUser, t.users, userID, "user")
	if err != nil {
		return models.PostView{}, err
	}
	return models.PostView{Post: p, User: u}, nil
}

func (t threads) postDetail(p models.Post) (models.PostDetail, error) {
	v, err := t.postView(p)
	if err != nil {
		return models.PostDetail{}, err
	}
	comments, err := t.threadsFor(p.IDComments)
	if err != nil {
		return models.PostDetail{}, err
	}
	return models.PostDetail{PostView: v, Comments: comments}, nil
}
