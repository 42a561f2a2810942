package handlers

import (
	"net/http"

	"github.com/smp-team-2025/smp-backend/internal/middleware"
	"github.com/smp-team-2025/smp-backend/internal/models"
	"github.com/smp-team-2025/smp-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type HiwiHandler struct {
	hiwiService *services.HiwiService
}

func NewHiwiHandler(hiwiService *services.HiwiService) *HiwiHandler {
	return &HiwiHandler{hiwiService: hiwiService}
}

// List godoc
// @Summary      List staff assistants
// @Tags         hiwis
// @Produce      json
// @Success      200 {array} models.HiWi
// @Security     BearerAuth
// @Router       /api/hiwis [get]
func (h *HiwiHandler) List(c *gin.Context) {
	hiwis, err := h.hiwiService.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hiwis)
}

// Get godoc
// @Summary      Fetch one staff assistant
// @Tags         hiwis
// @Produce      json
// @Param        id path int true "HiWi ID"
// @Success      200 {object} models.HiWi
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/hiwis/{id} [get]
func (h *HiwiHandler) Get(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	hiwi, err := h.hiwiService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hiwi)
}

// Create godoc
// @Summary      Provision a staff account
// @Description  Creates the user plus hiwi record and mails the generated password
// @Tags         hiwis
// @Accept       json
// @Produce      json
// @Param        request body services.CreateHiwiInput true "Staff data"
// @Success      201 {object} models.HiWi
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/hiwis [post]
func (h *HiwiHandler) Create(c *gin.Context) {
	var input services.CreateHiwiInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	hiwi, err := h.hiwiService.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, hiwi)
}

// Update godoc
// @Summary      Update a staff assistant
// @Tags         hiwis
// @Accept       json
// @Produce      json
// @Param        id path int true "HiWi ID"
// @Param        request body services.UpdateHiwiInput true "Fields to change"
// @Success      200 {object} models.HiWi
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/hiwis/{id} [put]
func (h *HiwiHandler) Update(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var input services.UpdateHiwiInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	hiwi, err := h.hiwiService.Update(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, hiwi)
}

// Delete godoc
// @Summary      Remove a staff assistant and their account
// @Tags         hiwis
// @Produce      json
// @Param        id path int true "HiWi ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/hiwis/{id} [delete]
func (h *HiwiHandler) Delete(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	if err := h.hiwiService.Remove(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "hiwi removed"})
}

type AssignRequest struct {
	HiwiID    uint `json:"hiwi_id" binding:"required"`
	SessionID uint `json:"session_id" binding:"required"`
}

// Assign godoc
// @Summary      Assign a staff assistant to a session
// @Tags         hiwis
// @Accept       json
// @Produce      json
// @Param        request body AssignRequest true "Assignment"
// @Success      201 {object} models.HiWiSession
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/hiwis/assignments [post]
func (h *HiwiHandler) Assign(c *gin.Context) {
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	assignment, err := h.hiwiService.Assign(req.HiwiID, req.SessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

// Unassign godoc
// @Summary      Remove a session assignment
// @Tags         hiwis
// @Produce      json
// @Param        id path int true "Assignment ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/hiwis/assignments/{id} [delete]
func (h *HiwiHandler) Unassign(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	if err := h.hiwiService.Unassign(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "assignment removed"})
}

type StatusRequest struct {
	Status models.HiWiSessionStatus `json:"status" binding:"required,oneof=AVAILABLE MAYBE UNAVAILABLE"`
}

// UpdateMyStatus godoc
// @Summary      Set own availability on an assignment
// @Tags         hiwis
// @Accept       json
// @Produce      json
// @Param        id path int true "Assignment ID"
// @Param        request body StatusRequest true "New status"
// @Success      200 {object} models.HiWiSession
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/hiwis/assignments/{id}/status [put]
func (h *HiwiHandler) UpdateMyStatus(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	assignment, err := h.hiwiService.UpdateMyStatus(middleware.UserID(c), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignment)
}

// AssignmentsByEvent godoc
// @Summary      Staff assignments of an event, grouped by session
// @Tags         hiwis
// @Produce      json
// @Param        eventId path int true "Event ID"
// @Success      200 {array} services.SessionAssignmentOverview
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/hiwis/assignments/event/{eventId} [get]
func (h *HiwiHandler) AssignmentsByEvent(c *gin.Context) {
	eventID, ok := paramUint(c, "eventId")
	if !ok {
		return
	}

	overview, err := h.hiwiService.AssignmentsByEvent(eventID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}
