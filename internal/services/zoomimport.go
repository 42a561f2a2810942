package services

import (
	"log/slog"
	"time"

	"github.com/smp-team-2025/smp-backend/internal/models"
	"github.com/smp-team-2025/smp-backend/internal/zoomcsv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ZoomImportService reconciles a Zoom attendance export against known
// participants and merges matches into the attendance ledger.
type ZoomImportService struct {
	db *gorm.DB
}

func NewZoomImportService(db *gorm.DB) *ZoomImportService {
	return &ZoomImportService{db: db}
}

type ZoomImportResult struct {
	MatchedCount   int `json:"matched_count"`
	UnmatchedCount int `json:"unmatched_count"`
}

// Import matches each row by exact email first, then by fuzzy name. The
// batch is deliberately not wrapped in one transaction: rows are idempotent
// upserts, so a failed import is simply re-run (at-least-once, not
// exactly-once).
func (s *ZoomImportService) Import(sessionID uint, rows []zoomcsv.Row) (*ZoomImportResult, error) {
	if err := s.db.First(&models.Session{}, sessionID).Error; err != nil {
		return nil, ErrSessionNotFound
	}

	var participants []models.User
	if err := s.db.Where("role = ?", models.RoleParticipant).Find(&participants).Error; err != nil {
		return nil, err
	}

	result := &ZoomImportResult{}
	for _, row := range rows {
		matched := s.matchRow(row, participants)
		if matched == nil {
			if err := s.recordUnmatched(sessionID, row); err != nil {
				return result, err
			}
			result.UnmatchedCount++
			continue
		}

		if err := s.upsertOnlineAttendance(matched.ID, sessionID, row); err != nil {
			return result, err
		}
		result.MatchedCount++
	}

	slog.Info("zoom import finished",
		"session_id", sessionID,
		"matched", result.MatchedCount,
		"unmatched", result.UnmatchedCount,
	)
	return result, nil
}

// matchRow resolves a CSV row to a participant. Email match is
// authoritative. A fuzzy name match is accepted only when it is unambiguous;
// with two or more candidates the row goes to the unmatched bucket instead
// of guessing.
func (s *ZoomImportService) matchRow(row zoomcsv.Row, participants []models.User) *models.User {
	if row.Email != "" {
		for i := range participants {
			if participants[i].Email == row.Email {
				return &participants[i]
			}
		}
	}

	var candidate *models.User
	for i := range participants {
		if NamesSimilar(row.Name, participants[i].Name) {
			if candidate != nil {
				return nil // ambiguous
			}
			candidate = &participants[i]
		}
	}
	return candidate
}

// upsertOnlineAttendance creates the ledger row with source ONLINE, or, when
// the pair already exists (prior scan, manual entry, or earlier import),
// refreshes only the online metadata. Scan source and staff fields are never
// overwritten.
func (s *ZoomImportService) upsertOnlineAttendance(participantID, sessionID uint, row zoomcsv.Row) error {
	attendance := models.Attendance{
		ParticipantID:     participantID,
		SessionID:         sessionID,
		Source:            models.AttendanceSourceOnline,
		ScannedAt:         time.Now(),
		OnlineJoinTime:    optString(row.JoinTime),
		OnlineLeaveTime:   optString(row.LeaveTime),
		OnlineDurationMin: row.DurationMin,
	}
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "participant_id"}, {Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"online_join_time", "online_leave_time", "online_duration_min",
		}),
	}).Create(&attendance).Error
}

// recordUnmatched keeps the row for manual review. Keyed by the normalized
// name so re-importing the same file does not pile up duplicates.
func (s *ZoomImportService) recordUnmatched(sessionID uint, row zoomcsv.Row) error {
	unmatched := models.ZoomUnmatchedParticipant{
		SessionID:      sessionID,
		NormalizedName: NormalizeName(row.Name),
		DisplayName:    row.Name,
		Email:          optString(row.Email),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "normalized_name"}},
		DoNothing: true,
	}).Create(&unmatched).Error
}

func (s *ZoomImportService) Unmatched(sessionID uint) ([]models.ZoomUnmatchedParticipant, error) {
	if err := s.db.First(&models.Session{}, sessionID).Error; err != nil {
		return nil, ErrSessionNotFound
	}

	var rows []models.ZoomUnmatchedParticipant
	err := s.db.Where("session_id = ?", sessionID).Order("created_at ASC").Find(&rows).Error
	return rows, err
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
