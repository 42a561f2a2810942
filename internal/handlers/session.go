package handlers

import (
	"net/http"

	"github.com/smp-team-2025/smp-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionService *services.SessionService
}

func NewSessionHandler(sessionService *services.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// List godoc
// @Summary      Sessions of an event, ordered by start time
// @Tags         sessions
// @Produce      json
// @Param        eventId path int true "Event ID"
// @Success      200 {array} models.Session
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/events/{eventId}/sessions [get]
func (h *SessionHandler) List(c *gin.Context) {
	eventID, ok := paramUint(c, "eventId")
	if !ok {
		return
	}

	sessions, err := h.sessionService.List(eventID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// Get godoc
// @Summary      Fetch one session
// @Tags         sessions
// @Produce      json
// @Param        eventId path int true "Event ID"
// @Param        sessionId path int true "Session ID"
// @Success      200 {object} models.Session
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/events/{eventId}/sessions/{sessionId} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	eventID, ok := paramUint(c, "eventId")
	if !ok {
		return
	}
	sessionID, ok := paramUint(c, "sessionId")
	if !ok {
		return
	}

	session, err := h.sessionService.GetByID(eventID, sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Create godoc
// @Summary      Create a session within an event
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        eventId path int true "Event ID"
// @Param        request body services.CreateSessionInput true "Session data"
// @Success      201 {object} models.Session
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/events/{eventId}/sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	eventID, ok := paramUint(c, "eventId")
	if !ok {
		return
	}

	var input services.CreateSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	session, err := h.sessionService.Create(eventID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// Update godoc
// @Summary      Update a session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        eventId path int true "Event ID"
// @Param        sessionId path int true "Session ID"
// @Param        request body services.UpdateSessionInput true "Fields to change"
// @Success      200 {object} models.Session
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/events/{eventId}/sessions/{sessionId} [put]
func (h *SessionHandler) Update(c *gin.Context) {
	eventID, ok := paramUint(c, "eventId")
	if !ok {
		return
	}
	sessionID, ok := paramUint(c, "sessionId")
	if !ok {
		return
	}

	var input services.UpdateSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	session, err := h.sessionService.Update(eventID, sessionID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Delete godoc
// @Summary      Delete a session
// @Tags         sessions
// @Produce      json
// @Param        eventId path int true "Event ID"
// @Param        sessionId path int true "Session ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/events/{eventId}/sessions/{sessionId} [delete]
func (h *SessionHandler) Delete(c *gin.Context) {
	eventID, ok := paramUint(c, "eventId")
	if !ok {
		return
	}
	sessionID, ok := paramUint(c, "sessionId")
	if !ok {
		return
	}

	if err := h.sessionService.Delete(eventID, sessionID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "session deleted"})
}

// AssignedHiwis godoc
// @Summary      Staff assigned to a session
// @Tags         sessions
// @Produce      json
// @Param        sessionId path int true "Session ID"
// @Success      200 {array} models.HiWiSession
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/sessions/{sessionId}/hiwis [get]
func (h *SessionHandler) AssignedHiwis(c *gin.Context) {
	sessionID, ok := paramUint(c, "sessionId")
	if !ok {
		return
	}

	assignments, err := h.sessionService.AssignedHiwis(sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignments)
}
