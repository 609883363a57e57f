package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/e-learning-backend/models"
	"github.com/vnkhanh/e-learning-backend/services"
)

type ClassController struct {
	svc *services.ClassService
}

func NewClassController(svc *services.ClassService) *ClassController {
	return &ClassController{svc: svc}
}

func (h *ClassController) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ClassController) GetBasic(c *gin.Context) {
	out, err := h.svc.GetBasic(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Get serves /clases/:id/:class where :id is the course.
func (h *ClassController) Get(c *gin.Context) {
	out, err := h.svc.Get(c.Request.Context(), c.Param("id"), c.Param("class"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ClassController) Create(c *gin.Context) {
	var input models.Class
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

func (h *ClassController) Update(c *gin.Context) {
	var input models.Class
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

func (h *ClassController) Delete(c *gin.Context) {
	out, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
