package http

import (
	"github.com/gin-gonic/gin"

	"github.com/rafabene/avantpro-admin/internal/infrastructure/realtime"
)

// EventsHandler entrega os eventos administrativos via websocket
type EventsHandler struct {
	hub *realtime.Hub
}

// NewEventsHandler cria um novo EventsHandler
func NewEventsHandler(hub *realtime.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// Stream abre o websocket. O cliente recebe só eventos de recursos que
// pode listar no momento da publicação.
func (h *EventsHandler) Stream(c *gin.Context) {
	if err := h.hub.Serve(c.Writer, c.Request, actor(c).UserID); err != nil {
		// O upgrader já respondeu o erro do handshake
		_ = c.Error(err)
		c.Abort()
	}
}
