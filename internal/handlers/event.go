package handlers

import (
	"net/http"
	"time"

	"github.com/smp-team-2025/smp-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// List godoc
// @Summary      List events
// @Description  Active event first, then newest
// @Tags         events
// @Produce      json
// @Success      200 {array} models.Event
// @Security     BearerAuth
// @Router       /api/events [get]
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.eventService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetActive godoc
// @Summary      Currently active event
// @Tags         events
// @Produce      json
// @Success      200 {object} models.Event
// @Failure      404 {object} ErrorResponse
// @Router       /api/events/active [get]
func (h *EventHandler) GetActive(c *gin.Context) {
	event, err := h.eventService.GetActive()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// Get godoc
// @Summary      Fetch one event
// @Tags         events
// @Produce      json
// @Param        eventId path int true "Event ID"
// @Success      200 {object} models.Event
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/events/{eventId} [get]
func (h *EventHandler) Get(c *gin.Context) {
	id, ok := paramUint(c, "eventId")
	if !ok {
		return
	}

	event, err := h.eventService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// Create godoc
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request body services.CreateEventInput true "Event data"
// @Success      201 {object} models.Event
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/events [post]
func (h *EventHandler) Create(c *gin.Context) {
	var input services.CreateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	event, err := h.eventService.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

// Update godoc
// @Summary      Update an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventId path int true "Event ID"
// @Param        request body services.UpdateEventInput true "Fields to change"
// @Success      200 {object} models.Event
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/events/{eventId} [put]
func (h *EventHandler) Update(c *gin.Context) {
	id, ok := paramUint(c, "eventId")
	if !ok {
		return
	}

	var input services.UpdateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	event, err := h.eventService.Update(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

type RegistrationDeadlineRequest struct {
	RegistrationClosesAt *time.Time `json:"registration_closes_at"`
}

// UpdateRegistrationDeadline godoc
// @Summary      Set or clear the registration deadline
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventId path int true "Event ID"
// @Param        request body RegistrationDeadlineRequest true "Deadline, null to clear"
// @Success      200 {object} models.Event
// @Security     BearerAuth
// @Router       /api/events/{eventId}/registration-deadline [put]
func (h *EventHandler) UpdateRegistrationDeadline(c *gin.Context) {
	id, ok := paramUint(c, "eventId")
	if !ok {
		return
	}

	var req RegistrationDeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	event, err := h.eventService.UpdateRegistrationClosesAt(id, req.RegistrationClosesAt)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// Delete godoc
// @Summary      Delete an event and its sessions
// @Tags         events
// @Produce      json
// @Param        eventId path int true "Event ID"
// @Success      200 {object} MessageResponse
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/events/{eventId} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := paramUint(c, "eventId")
	if !ok {
		return
	}

	if err := h.eventService.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "event deleted"})
}
