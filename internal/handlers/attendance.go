package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/smp-team-2025/smp-backend/internal/csvutil"
	"github.com/smp-team-2025/smp-backend/internal/middleware"
	"github.com/smp-team-2025/smp-backend/internal/models"
	"github.com/smp-team-2025/smp-backend/internal/services"
	"github.com/smp-team-2025/smp-backend/internal/ws"
	"github.com/smp-team-2025/smp-backend/internal/zoomcsv"

	"github.com/gin-gonic/gin"
)

type AttendanceHandler struct {
	attendanceService *services.AttendanceService
	zoomImportService *services.ZoomImportService
	hub               *ws.Hub
}

func NewAttendanceHandler(attendanceService *services.AttendanceService, zoomImportService *services.ZoomImportService, hub *ws.Hub) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
		zoomImportService: zoomImportService,
		hub:               hub,
	}
}

type ScanRequest struct {
	QrID      string `json:"qr_id" binding:"required" example:"abc123"`
	SessionID uint   `json:"session_id" binding:"required" example:"1"`
}

// Scan godoc
// @Summary      Record attendance from a QR scan
// @Description  Staff-assistants scan a participant's QR badge for a session
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        request body ScanRequest true "Scan data"
// @Success      201 {object} models.Attendance
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/attendance/scan [post]
func (h *AttendanceHandler) Scan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	attendance, err := h.attendanceService.Scan(req.QrID, req.SessionID, middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(req.SessionID, ws.Message{Type: "attendance.scan", Data: attendance})
	c.JSON(http.StatusCreated, attendance)
}

type ManualAttendanceRequest struct {
	ParticipantID uint `json:"participant_id" binding:"required"`
	SessionID     uint `json:"session_id" binding:"required"`
}

// Manual godoc
// @Summary      Record attendance manually
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Param        request body ManualAttendanceRequest true "Attendance data"
// @Success      201 {object} models.Attendance
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/attendance/manual [post]
func (h *AttendanceHandler) Manual(c *gin.Context) {
	var req ManualAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	attendance, err := h.attendanceService.Manual(req.ParticipantID, req.SessionID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Broadcast(req.SessionID, ws.Message{Type: "attendance.manual", Data: attendance})
	c.JSON(http.StatusCreated, attendance)
}

// Remove godoc
// @Summary      Revoke one attendance record
// @Tags         attendance
// @Produce      json
// @Param        attendanceId path int true "Attendance ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/attendance/{attendanceId} [delete]
func (h *AttendanceHandler) Remove(c *gin.Context) {
	attendanceID, ok := paramUint(c, "attendanceId")
	if !ok {
		return
	}

	deleted, err := h.attendanceService.Remove(attendanceID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		respondError(c, services.ErrAttendanceNotFound)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "attendance removed"})
}

type MyAttendanceEntry struct {
	SessionID    uint       `json:"session_id"`
	SessionTitle string     `json:"session_title"`
	StartsAt     time.Time  `json:"starts_at"`
	EndsAt       *time.Time `json:"ends_at,omitempty"`
	Location     *string    `json:"location,omitempty"`
	EventTitle   string     `json:"event_title"`
	ScannedAt    time.Time  `json:"scanned_at"`
}

// Me godoc
// @Summary      Own attendance history
// @Tags         attendance
// @Produce      json
// @Success      200 {array} MyAttendanceEntry
// @Security     BearerAuth
// @Router       /api/attendance/me [get]
func (h *AttendanceHandler) Me(c *gin.Context) {
	attendances, err := h.attendanceService.ListForParticipant(middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	entries := make([]MyAttendanceEntry, 0, len(attendances))
	for _, a := range attendances {
		entries = append(entries, MyAttendanceEntry{
			SessionID:    a.Session.ID,
			SessionTitle: a.Session.Title,
			StartsAt:     a.Session.StartsAt,
			EndsAt:       a.Session.EndsAt,
			Location:     a.Session.Location,
			EventTitle:   a.Session.Event.Title,
			ScannedAt:    a.ScannedAt,
		})
	}
	c.JSON(http.StatusOK, entries)
}

// Session godoc
// @Summary      Attendance of one session
// @Tags         attendance
// @Produce      json
// @Param        sessionId path int true "Session ID"
// @Success      200 {array} models.Attendance
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/attendance/session/{sessionId} [get]
func (h *AttendanceHandler) Session(c *gin.Context) {
	sessionID, ok := paramUint(c, "sessionId")
	if !ok {
		return
	}

	attendances, err := h.attendanceService.ListForSession(sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attendances)
}

// UploadZoomCSV godoc
// @Summary      Import a Zoom attendance CSV for a session
// @Description  Matches rows by email or fuzzy name and merges them into the ledger
// @Tags         attendance
// @Accept       multipart/form-data
// @Produce      json
// @Param        sessionId formData int true "Session ID"
// @Param        file formData file true "Zoom CSV export"
// @Success      200 {object} services.ZoomImportResult
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/attendance/zoom/upload [post]
func (h *AttendanceHandler) UploadZoomCSV(c *gin.Context) {
	sessionID, err := strconv.ParseUint(c.PostForm("sessionId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "sessionId and CSV file are required"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "sessionId and CSV file are required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	rows, err := zoomcsv.Parse(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "INVALID_CSV"})
		return
	}

	result, err := h.zoomImportService.Import(uint(sessionID), rows)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ZoomUnmatched godoc
// @Summary      List CSV rows that could not be matched to a participant
// @Tags         attendance
// @Produce      json
// @Param        sessionId path int true "Session ID"
// @Success      200 {array} models.ZoomUnmatchedParticipant
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/attendance/zoom/unmatched/{sessionId} [get]
func (h *AttendanceHandler) ZoomUnmatched(c *gin.Context) {
	sessionID, ok := paramUint(c, "sessionId")
	if !ok {
		return
	}

	rows, err := h.zoomImportService.Unmatched(sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ExportCSV godoc
// @Summary      Download attendance as CSV
// @Description  Either ?sessionId= or ?eventId= must be given
// @Tags         attendance
// @Produce      text/csv
// @Param        sessionId query int false "Session ID"
// @Param        eventId query int false "Event ID"
// @Success      200 {string} string "CSV file"
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/attendance/export.csv [get]
func (h *AttendanceHandler) ExportCSV(c *gin.Context) {
	sessionID := queryUint(c, "sessionId")
	eventID := queryUint(c, "eventId")

	var attendances []models.Attendance
	var err error
	switch {
	case sessionID != 0:
		attendances, err = h.attendanceService.ListForSession(sessionID)
	case eventID != 0:
		attendances, err = h.attendanceService.ListForEvent(eventID)
	default:
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "sessionId or eventId is required"})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	headers := []string{"Name", "E-Mail", "Session", "Datum", "Quelle", "Erfasst von"}
	rows := make([]map[string]string, 0, len(attendances))
	for _, a := range attendances {
		scannedBy := ""
		if a.ScannedByHiwi != nil {
			scannedBy = a.ScannedByHiwi.User.Name
		}
		rows = append(rows, map[string]string{
			"Name":        a.Participant.Name,
			"E-Mail":      a.Participant.Email,
			"Session":     a.Session.Title,
			"Datum":       a.ScannedAt.Format("02.01.2006 15:04"),
			"Quelle":      string(a.Source),
			"Erfasst von": scannedBy,
		})
	}

	c.Header("Content-Disposition", `attachment; filename="attendance.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csvutil.Format(headers, rows)))
}
