package ws

import (
	"encoding/json"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vnkhanh/e-learning-backend/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type hello struct {
	Type       string `json:"type"`
	Collection string `json:"collection,omitempty"`
}

func (h *Hub) greet(client *Client, collection string) {
	data, _ := json.Marshal(hello{Type: "connected", Collection: collection})
	client.Send <- data
}

// HandleCollection streams change events of one collection.
func (h *Hub) HandleCollection(c *gin.Context) {
	collection := c.Param("collection")
	if !slices.Contains(store.AllCollections, collection) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection " + collection})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	client := h.Register(collection, conn)
	h.greet(client, collection)
	h.log.WithField("collection", collection).Debug("change feed connected")

	go writePump(client)
	readPump(conn)
	h.Unregister(collection, conn)
}

// HandleGlobal streams change events of every collection.
func (h *Hub) HandleGlobal(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	client := h.RegisterGlobal(conn)
	h.greet(client, "")
	h.log.Debug("global change feed connected")

	go writePump(client)
	readPump(conn)
	h.UnregisterGlobal(conn)
}
