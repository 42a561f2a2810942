package handlers

import (
	"net/http"

	"github.com/smp-team-2025/smp-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type RegistrationHandler struct {
	registrationService *services.RegistrationService
}

func NewRegistrationHandler(registrationService *services.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// Create godoc
// @Summary      File a registration for the active event
// @Description  Public endpoint. Both email fields must match, and registration
// @Description  must still be open.
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        request body services.RegistrationInput true "Registration data"
// @Success      201 {object} models.Registration
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/registrations [post]
func (h *RegistrationHandler) Create(c *gin.Context) {
	var input services.RegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	registration, err := h.registrationService.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, registration)
}

// List godoc
// @Summary      List registrations
// @Description  Defaults to the active event; pass eventId to pick another one
// @Tags         registrations
// @Produce      json
// @Param        eventId query int false "Event ID"
// @Success      200 {array} models.Registration
// @Security     BearerAuth
// @Router       /api/registrations [get]
func (h *RegistrationHandler) List(c *gin.Context) {
	registrations, err := h.registrationService.List(queryUint(c, "eventId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, registrations)
}

// Get godoc
// @Summary      Fetch one registration
// @Tags         registrations
// @Produce      json
// @Param        id path int true "Registration ID"
// @Success      200 {object} models.Registration
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/registrations/{id} [get]
func (h *RegistrationHandler) Get(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	registration, err := h.registrationService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, registration)
}

// Approve godoc
// @Summary      Approve a registration
// @Description  Creates the participant account with a QR token and mails the
// @Description  initial credentials
// @Tags         registrations
// @Produce      json
// @Param        id path int true "Registration ID"
// @Success      200 {object} models.Registration
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/registrations/{id}/approve [post]
func (h *RegistrationHandler) Approve(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	registration, err := h.registrationService.Approve(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, registration)
}

// Reject godoc
// @Summary      Reject a registration
// @Tags         registrations
// @Produce      json
// @Param        id path int true "Registration ID"
// @Success      200 {object} models.Registration
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/registrations/{id}/reject [post]
func (h *RegistrationHandler) Reject(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	registration, err := h.registrationService.Reject(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, registration)
}

type ApproveAllResponse struct {
	Approved int64 `json:"approved"`
}

// ApproveAllPending godoc
// @Summary      Bulk-approve all pending registrations
// @Tags         registrations
// @Produce      json
// @Param        eventId query int false "Event ID, defaults to the active event"
// @Success      200 {object} ApproveAllResponse
// @Security     BearerAuth
// @Router       /api/registrations/approve-all [post]
func (h *RegistrationHandler) ApproveAllPending(c *gin.Context) {
	count, err := h.registrationService.ApproveAllPending(queryUint(c, "eventId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ApproveAllResponse{Approved: count})
}

// Students godoc
// @Summary      Roster of approved students
// @Tags         registrations
// @Produce      json
// @Param        eventId query int false "Event ID, defaults to the active event"
// @Success      200 {array} services.ApprovedStudent
// @Security     BearerAuth
// @Router       /api/students [get]
func (h *RegistrationHandler) Students(c *gin.Context) {
	students, err := h.registrationService.ApprovedStudents(queryUint(c, "eventId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, students)
}
