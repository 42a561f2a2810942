package handlers

import (
	"net/http"
	"time"

	"github.com/smp-team-2025/smp-backend/internal/middleware"
	"github.com/smp-team-2025/smp-backend/internal/models"
	"github.com/smp-team-2025/smp-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type DiplomaHandler struct {
	diplomaService *services.DiplomaService
}

func NewDiplomaHandler(diplomaService *services.DiplomaService) *DiplomaHandler {
	return &DiplomaHandler{diplomaService: diplomaService}
}

type IssueDiplomaRequest struct {
	ParticipantID uint `json:"participant_id" binding:"required"`
	EventID       uint `json:"event_id" binding:"required"`
}

// Issue godoc
// @Summary      Issue a diploma
// @Description  Re-verifies eligibility and creates the numbered certificate
// @Tags         diplomas
// @Accept       json
// @Produce      json
// @Param        request body IssueDiplomaRequest true "Pair to issue for"
// @Success      201 {object} models.Diploma
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/diplomas/issue [post]
func (h *DiplomaHandler) Issue(c *gin.Context) {
	var req IssueDiplomaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	diploma, err := h.diplomaService.Issue(req.ParticipantID, req.EventID)
	if err != nil {
		if err == services.ErrNotEligible {
			check, checkErr := h.diplomaService.CheckEligibility(req.ParticipantID, req.EventID)
			if checkErr == nil {
				respondEligibilityError(c, err, check.Reasons)
				return
			}
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, diploma)
}

// CheckEligibility godoc
// @Summary      Check diploma eligibility
// @Tags         diplomas
// @Produce      json
// @Param        participantId path int true "Participant ID"
// @Param        eventId path int true "Event ID"
// @Success      200 {object} services.EligibilityResult
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/diplomas/check-eligibility/{participantId}/{eventId} [get]
func (h *DiplomaHandler) CheckEligibility(c *gin.Context) {
	participantID, ok := paramUint(c, "participantId")
	if !ok {
		return
	}
	eventID, ok := paramUint(c, "eventId")
	if !ok {
		return
	}
	if !h.maySeeParticipant(c, participantID) {
		return
	}

	result, err := h.diplomaService.CheckEligibility(participantID, eventID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get godoc
// @Summary      Fetch one diploma
// @Tags         diplomas
// @Produce      json
// @Param        participantId path int true "Participant ID"
// @Param        eventId path int true "Event ID"
// @Success      200 {object} models.Diploma
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/diplomas/{participantId}/{eventId} [get]
func (h *DiplomaHandler) Get(c *gin.Context) {
	participantID, ok := paramUint(c, "participantId")
	if !ok {
		return
	}
	eventID, ok := paramUint(c, "eventId")
	if !ok {
		return
	}
	if !h.maySeeParticipant(c, participantID) {
		return
	}

	diploma, err := h.diplomaService.Get(participantID, eventID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, diploma)
}

// CertificateVerification is the public payload: enough to confirm a
// certificate is genuine, nothing more.
type CertificateVerification struct {
	CertificateNumber string    `json:"certificate_number"`
	ParticipantName   string    `json:"participant_name"`
	EventTitle        string    `json:"event_title"`
	IssuedAt          time.Time `json:"issued_at"`
}

// VerifyCertificate godoc
// @Summary      Publicly verify a certificate number
// @Tags         diplomas
// @Produce      json
// @Param        certificateNumber path string true "Certificate number, e.g. SMP-2026-001"
// @Success      200 {object} CertificateVerification
// @Failure      404 {object} ErrorResponse
// @Router       /api/diplomas/certificate/{certificateNumber} [get]
func (h *DiplomaHandler) VerifyCertificate(c *gin.Context) {
	diploma, err := h.diplomaService.GetByCertificateNumber(c.Param("certificateNumber"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, CertificateVerification{
		CertificateNumber: diploma.CertificateNumber,
		ParticipantName:   diploma.Participant.Name,
		EventTitle:        diploma.Event.Title,
		IssuedAt:          diploma.IssuedAt,
	})
}

// ListEligible godoc
// @Summary      List eligible participants of an event
// @Tags         diplomas
// @Produce      json
// @Param        eventId path int true "Event ID"
// @Success      200 {array} services.EligibleParticipant
// @Security     BearerAuth
// @Router       /api/diplomas/eligible/{eventId} [get]
func (h *DiplomaHandler) ListEligible(c *gin.Context) {
	eventID, ok := paramUint(c, "eventId")
	if !ok {
		return
	}

	eligible, err := h.diplomaService.ListEligible(eventID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, eligible)
}

// ListIssued godoc
// @Summary      List issued diplomas of an event
// @Tags         diplomas
// @Produce      json
// @Param        eventId path int true "Event ID"
// @Success      200 {array} models.Diploma
// @Security     BearerAuth
// @Router       /api/diplomas/issued/{eventId} [get]
func (h *DiplomaHandler) ListIssued(c *gin.Context) {
	eventID, ok := paramUint(c, "eventId")
	if !ok {
		return
	}

	diplomas, err := h.diplomaService.ListIssued(eventID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, diplomas)
}

// MyDiplomas godoc
// @Summary      Own diplomas across events
// @Tags         diplomas
// @Produce      json
// @Success      200 {array} models.Diploma
// @Security     BearerAuth
// @Router       /api/diplomas/me [get]
func (h *DiplomaHandler) MyDiplomas(c *gin.Context) {
	diplomas, err := h.diplomaService.ListForParticipant(middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, diplomas)
}

// Statistics godoc
// @Summary      Per-event diploma statistics
// @Tags         diplomas
// @Produce      json
// @Param        eventId path int true "Event ID"
// @Success      200 {object} services.EventStatistics
// @Security     BearerAuth
// @Router       /api/diplomas/statistics/{eventId} [get]
func (h *DiplomaHandler) Statistics(c *gin.Context) {
	eventID, ok := paramUint(c, "eventId")
	if !ok {
		return
	}

	stats, err := h.diplomaService.Statistics(eventID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Delete godoc
// @Summary      Revoke a diploma
// @Tags         diplomas
// @Produce      json
// @Param        participantId path int true "Participant ID"
// @Param        eventId path int true "Event ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/diplomas/{participantId}/{eventId} [delete]
func (h *DiplomaHandler) Delete(c *gin.Context) {
	participantID, ok := paramUint(c, "participantId")
	if !ok {
		return
	}
	eventID, ok := paramUint(c, "eventId")
	if !ok {
		return
	}

	if err := h.diplomaService.Delete(participantID, eventID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "diploma revoked"})
}

// maySeeParticipant allows organizers through and participants for their own
// records only.
func (h *DiplomaHandler) maySeeParticipant(c *gin.Context, participantID uint) bool {
	if middleware.Role(c) == models.RoleOrganizer {
		return true
	}
	if middleware.UserID(c) == participantID {
		return true
	}
	c.JSON(http.StatusForbidden, ErrorResponse{Error: "FORBIDDEN"})
	return false
}
