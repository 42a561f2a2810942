package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/smp-team-2025/smp-backend/internal/models"

	"gorm.io/gorm"
)

// MinimumAttendanceCount is how many sessions of an event a participant must
// have attended to qualify for a diploma.
const MinimumAttendanceCount = 3

type DiplomaService struct {
	db *gorm.DB
}

func NewDiplomaService(db *gorm.DB) *DiplomaService {
	return &DiplomaService{db: db}
}

type EligibilityResult struct {
	IsEligible         bool     `json:"is_eligible"`
	AttendanceCount    int      `json:"attendance_count"`
	QuizSubmitted      bool     `json:"quiz_submitted"`
	RequiredAttendance int      `json:"required_attendance"`
	Reasons            []string `json:"reasons,omitempty"`
}

// CheckEligibility derives the verdict fresh from the ledger and quiz
// responses on every call. Nothing is cached or stored, so it can never go
// stale.
func (s *DiplomaService) CheckEligibility(participantID, eventID uint) (*EligibilityResult, error) {
	var participant models.User
	err := s.db.First(&participant, participantID).Error
	if err != nil || !participant.IsParticipant() {
		return nil, ErrInvalidParticipant
	}

	if err := s.db.First(&models.Event{}, eventID).Error; err != nil {
		return nil, ErrEventNotFound
	}

	var attendanceCount int64
	err = s.db.Model(&models.Attendance{}).
		Joins("JOIN sessions ON sessions.id = attendances.session_id").
		Where("attendances.participant_id = ? AND sessions.event_id = ?", participantID, eventID).
		Count(&attendanceCount).Error
	if err != nil {
		return nil, err
	}

	var responseCount int64
	err = s.db.Model(&models.FermiResponse{}).
		Joins("JOIN fermi_quizzes ON fermi_quizzes.id = fermi_responses.quiz_id").
		Joins("JOIN sessions ON sessions.id = fermi_quizzes.session_id").
		Where("fermi_responses.participant_id = ? AND sessions.event_id = ?", participantID, eventID).
		Count(&responseCount).Error
	if err != nil {
		return nil, err
	}

	result := &EligibilityResult{
		AttendanceCount:    int(attendanceCount),
		QuizSubmitted:      responseCount > 0,
		RequiredAttendance: MinimumAttendanceCount,
	}
	result.IsEligible = result.AttendanceCount >= MinimumAttendanceCount && result.QuizSubmitted

	if result.AttendanceCount < MinimumAttendanceCount {
		result.Reasons = append(result.Reasons,
			fmt.Sprintf("Insufficient attendance: %d/%d", result.AttendanceCount, MinimumAttendanceCount))
	}
	if !result.QuizSubmitted {
		result.Reasons = append(result.Reasons, "Quiz not submitted")
	}
	return result, nil
}

// Issue re-verifies eligibility and creates the one diploma for the pair.
func (s *DiplomaService) Issue(participantID, eventID uint) (*models.Diploma, error) {
	eligibility, err := s.CheckEligibility(participantID, eventID)
	if err != nil {
		return nil, err
	}
	if !eligibility.IsEligible {
		return nil, ErrNotEligible
	}

	var existing models.Diploma
	err = s.db.Where("participant_id = ? AND event_id = ?", participantID, eventID).First(&existing).Error
	if err == nil {
		return nil, ErrDiplomaAlreadyIssued
	}

	var diploma models.Diploma
	err = s.db.Transaction(func(tx *gorm.DB) error {
		number, err := s.nextCertificateNumber(tx, eventID)
		if err != nil {
			return err
		}
		diploma = models.Diploma{
			ParticipantID:     participantID,
			EventID:           eventID,
			CertificateNumber: number,
			IssuedAt:          time.Now(),
		}
		return tx.Create(&diploma).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Either the pair lost a race to another issuance, or the
			// generated number collided with an existing row.
			var check models.Diploma
			if s.db.Where("participant_id = ? AND event_id = ?", participantID, eventID).
				First(&check).Error == nil {
				return nil, ErrDiplomaAlreadyIssued
			}
			return nil, ErrCertificateConflict
		}
		return nil, err
	}

	return s.Get(participantID, eventID)
}

// nextCertificateNumber builds SMP-{year}-{seq} from the event's start year
// (or the current one if unset) and the event's certificate counter. The
// counter only ever increments, so a revoked diploma's number stays retired
// instead of being handed out again.
func (s *DiplomaService) nextCertificateNumber(tx *gorm.DB, eventID uint) (string, error) {
	var event models.Event
	if err := tx.First(&event, eventID).Error; err != nil {
		return "", ErrEventNotFound
	}

	year := time.Now().Year()
	if event.StartDate != nil {
		year = event.StartDate.Year()
	}

	// Atomic increment; concurrent issuances serialize on the event row.
	res := tx.Model(&models.Event{}).Where("id = ?", eventID).
		UpdateColumn("certificate_seq", gorm.Expr("certificate_seq + 1"))
	if res.Error != nil {
		return "", res.Error
	}
	var fresh models.Event
	if err := tx.Select("certificate_seq").First(&fresh, eventID).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("SMP-%d-%03d", year, fresh.CertificateSeq), nil
}

func (s *DiplomaService) Get(participantID, eventID uint) (*models.Diploma, error) {
	var diploma models.Diploma
	err := s.db.
		Where("participant_id = ? AND event_id = ?", participantID, eventID).
		Preload("Participant").
		Preload("Event").
		First(&diploma).Error
	if err != nil {
		return nil, ErrDiplomaNotFound
	}
	return &diploma, nil
}

// GetByCertificateNumber backs the public verification endpoint; the handler
// exposes only non-sensitive fields of the result.
func (s *DiplomaService) GetByCertificateNumber(certificateNumber string) (*models.Diploma, error) {
	var diploma models.Diploma
	err := s.db.
		Where("certificate_number = ?", certificateNumber).
		Preload("Participant").
		Preload("Event").
		First(&diploma).Error
	if err != nil {
		return nil, ErrDiplomaNotFound
	}
	return &diploma, nil
}

type EligibleParticipant struct {
	Participant models.User        `json:"participant"`
	Eligibility *EligibilityResult `json:"eligibility"`
	Issued      bool               `json:"diploma_issued"`
	Diploma     *models.Diploma    `json:"diploma,omitempty"`
}

// ListEligible returns every eligible participant of the event, whether or
// not a diploma has been issued yet.
func (s *DiplomaService) ListEligible(eventID uint) ([]EligibleParticipant, error) {
	if err := s.db.First(&models.Event{}, eventID).Error; err != nil {
		return nil, ErrEventNotFound
	}

	var participants []models.User
	err := s.db.
		Distinct("users.*").
		Joins("JOIN attendances ON attendances.participant_id = users.id").
		Joins("JOIN sessions ON sessions.id = attendances.session_id").
		Where("users.role = ? AND sessions.event_id = ?", models.RoleParticipant, eventID).
		Find(&participants).Error
	if err != nil {
		return nil, err
	}

	eligible := make([]EligibleParticipant, 0, len(participants))
	for _, p := range participants {
		check, err := s.CheckEligibility(p.ID, eventID)
		if err != nil {
			return nil, err
		}
		if !check.IsEligible {
			continue
		}

		entry := EligibleParticipant{Participant: p, Eligibility: check}
		if diploma, err := s.Get(p.ID, eventID); err == nil {
			entry.Issued = true
			entry.Diploma = diploma
		}
		eligible = append(eligible, entry)
	}
	return eligible, nil
}

func (s *DiplomaService) ListIssued(eventID uint) ([]models.Diploma, error) {
	if err := s.db.First(&models.Event{}, eventID).Error; err != nil {
		return nil, ErrEventNotFound
	}

	var diplomas []models.Diploma
	err := s.db.
		Where("event_id = ?", eventID).
		Preload("Participant").
		Preload("Event").
		Order("issued_at DESC").
		Find(&diplomas).Error
	return diplomas, err
}

func (s *DiplomaService) ListForParticipant(participantID uint) ([]models.Diploma, error) {
	var diplomas []models.Diploma
	err := s.db.
		Where("participant_id = ?", participantID).
		Preload("Participant").
		Preload("Event").
		Order("issued_at DESC").
		Find(&diplomas).Error
	return diplomas, err
}

// Delete is a hard revoke. The certificate number is not reissued; the
// sequence continues past it.
func (s *DiplomaService) Delete(participantID, eventID uint) error {
	res := s.db.Where("participant_id = ? AND event_id = ?", participantID, eventID).
		Delete(&models.Diploma{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrDiplomaNotFound
	}
	return nil
}

type EventStatistics struct {
	EventID           uint `json:"event_id"`
	TotalParticipants int  `json:"total_participants"`
	IssuedDiplomas    int  `json:"issued_diplomas"`
	EligibleTotal     int  `json:"eligible_total"`
	EligibleNotIssued int  `json:"eligible_not_issued"`
}

func (s *DiplomaService) Statistics(eventID uint) (*EventStatistics, error) {
	eligible, err := s.ListEligible(eventID)
	if err != nil {
		return nil, err
	}

	var totalParticipants int64
	err = s.db.Model(&models.User{}).
		Distinct("users.id").
		Joins("JOIN attendances ON attendances.participant_id = users.id").
		Joins("JOIN sessions ON sessions.id = attendances.session_id").
		Where("users.role = ? AND sessions.event_id = ?", models.RoleParticipant, eventID).
		Count(&totalParticipants).Error
	if err != nil {
		return nil, err
	}

	var issued int64
	if err := s.db.Model(&models.Diploma{}).Where("event_id = ?", eventID).Count(&issued).Error; err != nil {
		return nil, err
	}

	stats := &EventStatistics{
		EventID:           eventID,
		TotalParticipants: int(totalParticipants),
		IssuedDiplomas:    int(issued),
		EligibleTotal:     len(eligible),
	}
	for _, e := range eligible {
		if !e.Issued {
			stats.EligibleNotIssued++
		}
	}
	return stats, nil
}
