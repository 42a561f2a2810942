package handlers

import (
	"log/slog"
	"net/http"

	"github.com/smp-team-2025/smp-backend/internal/services"
	"github.com/smp-team-2025/smp-backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// LiveHandler upgrades organizers to a websocket feed of attendance events
// for one session.
type LiveHandler struct {
	hub            *ws.Hub
	sessionService *services.SessionService
}

func NewLiveHandler(hub *ws.Hub, sessionService *services.SessionService) *LiveHandler {
	return &LiveHandler{hub: hub, sessionService: sessionService}
}

// Attend godoc
// @Summary      Live attendance feed for a session
// @Description  Websocket endpoint; pass the JWT via the token query parameter
// @Tags         live
// @Param        sessionId path int true "Session ID"
// @Success      101 {string} string "Switching Protocols"
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /ws/sessions/{sessionId}/attendance [get]
func (h *LiveHandler) Attend(c *gin.Context) {
	sessionID, ok := paramUint(c, "sessionId")
	if !ok {
		return
	}
	if err := h.sessionService.Exists(sessionID); err != nil {
		respondError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "err", err)
		return
	}

	h.hub.AddConnection(sessionID, conn)
	defer h.hub.RemoveConnection(sessionID, conn)

	// Drain client frames until the peer goes away; the feed itself is
	// push-only.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
