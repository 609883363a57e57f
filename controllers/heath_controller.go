package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vnkhanh/e-learning-backend/services"
	"github.com/vnkhanh/e-learning-backend/store"
	"github.com/vnkhanh/e-learning-backend/ws"
)

type HealthController struct {
	db  *store.DB
	hub *ws.Hub
}

func NewHealthController(db *store.DB, hub *ws.Hub) *HealthController {
	return &HealthController{db: db, hub: hub}
}

func (h *HealthController) HealthCheck(c *gin.Context) {
	response := gin.H{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
		"store":     "ok",
		"websocket": gin.H{
			"enabled": false,
		},
	}
	if h.hub != nil {
		response["websocket"] = gin.H{"enabled": true, "stats": h.hub.GetStats()}
	}

	if err := services.Ping(c.Request.Context(), h.db); err != nil {
		_ = c.Error(err)
		response["store"] = "error: " + err.Error()
		response["status"] = "degraded"
		c.JSON(http.StatusServiceUnavailable, response)
		return
	}
	c.JSON(http.StatusOK, response)
}

// Home is the welcome message at /.
func Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"Platzi": "Never stop learning, because life never stops teaching"})
}
