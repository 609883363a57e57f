package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/e-learning-backend/models"
	"github.com/vnkhanh/e-learning-backend/services"
)

type CourseController struct {
	svc *services.CourseService
}

func NewCourseController(svc *services.CourseService) *CourseController {
	return &CourseController{svc: svc}
}

func (h *CourseController) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CourseController) Get(c *gin.Context) {
	out, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CourseController) GetBasic(c *gin.Context) {
	out, err := h.svc.GetBasic(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CourseController) Create(c *gin.Context) {
	var input models.Course
	if !bindJSON(c, &input) {
		return
	}
	out, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h *CourseController) Update(c *gin.Context) {
	var input models.Course
	if !bindJSON(c, &input) {
		return
	}
	out, err := h.svc.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CourseController) Delete(c *gin.Context) {
	out, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// ClassView serves the course as shown beside the class player.
func (h *CourseController) ClassView(c *gin.Context) {
	out, err := h.svc.GetClassView(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
