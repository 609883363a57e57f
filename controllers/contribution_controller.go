package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/e-learning-backend/models"
	"github.com/vnkhanh/e-learning-backend/services"
)

type CommentController struct {
	svc *services.ContributionService
}

func NewCommentController(svc *services.ContributionService) *CommentController {
	return &CommentController{svc: svc}
}

func (h *CommentController) List(c *gin.Context) {
	out, err := h.svc.ListComments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CommentController) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	out, err := h.svc.GetComment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CommentController) GetBasic(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	out, err := h.svc.GetCommentBasic(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CommentController) Create(c *gin.Context) {
	var input models.Comment
	if !bindJSON(c, &input) {
		return
	}
	out, err := h.svc.CreateComment(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *CommentController) Update(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	var input models.Comment
	if !bindJSON(c, &input) {
		return
	}
	out, err := h.svc.UpdateComment(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Delete takes ?kind= to choose which back-references to clean.
func (h *CommentController) Delete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	cascade, err := services.ParseCommentCascade(c.Query("kind"))
	if err != nil {
		respondError(c, err)
		return
	}
	out, err := h.svc.DeleteComment(c.Request.Context(), id, cascade)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PostController serves one of the blog, forum and tutorial collections.
type PostController struct {
	svc  *services.ContributionService
	kind models.ContributionKind
}

func NewPostController(svc *services.ContributionService, kind models.ContributionKind) *PostController {
	return &PostController{svc: svc, kind: kind}
}

func (h *PostController) List(c *gin.Context) {
	out, err := h.svc.ListPosts(c.Request.Context(), h.kind)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *PostController) Get(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	out, err := h.svc.GetPost(c.Request.Context(), h.kind, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *PostController) GetBasic(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	out, err := h.svc.GetPostBasic(c.Request.Context(), h.kind, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *PostController) Create(c *gin.Context) {
	var input models.Post
	if !bindJSON(c, &input) {
		return
	}
	out, err := h.svc.CreatePost(c.Request.Context(), h.kind, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *PostController) Update(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	var input models.Post
	if !bindJSON(c, &input) {
		return
	}
	out, err := h.svc.UpdatePost(c.Request.Context(), h.kind, id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *PostController) Delete(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}
	out, err := h.svc.DeletePost(c.Request.Context(), h.kind, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
