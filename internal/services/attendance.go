package services

import (
	"errors"
	"time"

	"github.com/smp-team-2025/smp-backend/internal/models"

	"gorm.io/gorm"
)

// AttendanceService is the ledger of "participant P was present in session S"
// facts, one row per pair regardless of entry channel.
type AttendanceService struct {
	db *gorm.DB
}

func NewAttendanceService(db *gorm.DB) *AttendanceService {
	return &AttendanceService{db: db}
}

// Scan records a QR-based attendance taken by a staff-assistant. The unique
// (participant, session) index is the duplicate guard: a concurrent double
// scan that slips past any earlier read still fails here and is reported as
// ALREADY_SCANNED.
func (s *AttendanceService) Scan(qrToken string, sessionID, staffUserID uint) (*models.Attendance, error) {
	var hiwi models.HiWi
	if err := s.db.Where("user_id = ?", staffUserID).First(&hiwi).Error; err != nil {
		return nil, ErrHiwiNotFound
	}

	var participant models.User
	err := s.db.Where("qr_id = ?", qrToken).First(&participant).Error
	if err != nil || !participant.IsParticipant() {
		return nil, ErrInvalidQRCode
	}

	if err := s.db.First(&models.Session{}, sessionID).Error; err != nil {
		return nil, ErrSessionNotFound
	}

	attendance := models.Attendance{
		ParticipantID:   participant.ID,
		SessionID:       sessionID,
		Source:          models.AttendanceSourceScan,
		ScannedByHiwiID: &hiwi.ID,
		ScannedAt:       time.Now(),
	}
	if err := s.db.Create(&attendance).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyScanned
		}
		return nil, err
	}

	attendance.Participant = participant
	return &attendance, nil
}

// Manual records an organizer-entered attendance; no staff-assistant is
// associated.
func (s *AttendanceService) Manual(participantID, sessionID uint) (*models.Attendance, error) {
	var participant models.User
	err := s.db.First(&participant, participantID).Error
	if err != nil || !participant.IsParticipant() {
		return nil, ErrInvalidParticipant
	}

	if err := s.db.First(&models.Session{}, sessionID).Error; err != nil {
		return nil, ErrSessionNotFound
	}

	attendance := models.Attendance{
		ParticipantID: participantID,
		SessionID:     sessionID,
		Source:        models.AttendanceSourceManual,
		ScannedAt:     time.Now(),
	}
	if err := s.db.Create(&attendance).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyPresent
		}
		return nil, err
	}

	attendance.Participant = participant
	return &attendance, nil
}

// Remove deletes one record. Returns false when it did not exist, so repeated
// revocations are safe.
func (s *AttendanceService) Remove(attendanceID uint) (bool, error) {
	res := s.db.Delete(&models.Attendance{}, attendanceID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListForParticipant returns the participant's own attendance history with
// session and event context, oldest scan first.
func (s *AttendanceService) ListForParticipant(participantID uint) ([]models.Attendance, error) {
	var attendances []models.Attendance
	err := s.db.
		Where("participant_id = ?", participantID).
		Preload("Session").
		Preload("Session.Event").
		Order("scanned_at ASC").
		Find(&attendances).Error
	return attendances, err
}

// ListForSession returns all records of one session with participant and
// scanning-staff details, for review and CSV export.
func (s *AttendanceService) ListForSession(sessionID uint) ([]models.Attendance, error) {
	if err := s.db.First(&models.Session{}, sessionID).Error; err != nil {
		return nil, ErrSessionNotFound
	}

	var attendances []models.Attendance
	err := s.db.
		Where("session_id = ?", sessionID).
		Preload("Participant").
		Preload("Session").
		Preload("ScannedByHiwi.User").
		Order("scanned_at ASC").
		Find(&attendances).Error
	return attendances, err
}

// ListForEvent returns the records of every session belonging to the event.
func (s *AttendanceService) ListForEvent(eventID uint) ([]models.Attendance, error) {
	if err := s.db.First(&models.Event{}, eventID).Error; err != nil {
		return nil, ErrEventNotFound
	}

	var attendances []models.Attendance
	err := s.db.
		Joins("JOIN sessions ON sessions.id = attendances.session_id").
		Where("sessions.event_id = ?", eventID).
		Preload("Participant").
		Preload("Session").
		Preload("ScannedByHiwi.User").
		Order("attendances.scanned_at ASC").
		Find(&attendances).Error
	return attendances, err
}
