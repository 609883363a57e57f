package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/e-learning-backend/models"
	"github.com/vnkhanh/e-learning-backend/services"
)

type RouteController struct {
	svc *services.RouteService
}

func NewRouteController(svc *services.RouteService) *RouteController {
	return &RouteController{svc: svc}
}

func (h *RouteController) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *RouteController) Get(c *gin.Context) {
	out, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *RouteController) GetBasic(c *gin.Context) {
	out, err := h.svc.GetBasic(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *RouteController) Create(c *gin.Context) {
	var input models.Route
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

func (h *RouteController) Update(c *gin.Context) {
	var input models.Route
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

func (h *RouteController) Delete(c *gin.Context) {
	out, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
