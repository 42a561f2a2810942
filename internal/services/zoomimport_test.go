package services

import (
	"testing"

	"github.com/smp-team-2025/smp-backend/internal/models"
	"github.com/smp-team-2025/smp-backend/internal/zoomcsv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportMatchesByEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewZoomImportService(db)

	event := seedEvent(t, db, "Spring Program", true)
	session := seedSession(t, db, event.ID, "Online Day")
	jane := seedParticipant(t, db, "Jane Doe", "jane@example.com", "qr-jane")

	duration := 85
	result, err := svc.Import(session.ID, []zoomcsv.Row{
		{Name: "totally different display name", Email: "jane@example.com", JoinTime: "09:01", LeaveTime: "10:26", DurationMin: &duration},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.MatchedCount)
	assert.Equal(t, 0, result.UnmatchedCount)

	var attendance models.Attendance
	require.NoError(t, db.Where("participant_id = ? AND session_id = ?", jane.ID, session.ID).First(&attendance).Error)
	assert.Equal(t, models.AttendanceSourceOnline, attendance.Source)
	require.NotNil(t, attendance.OnlineDurationMin)
	assert.Equal(t, 85, *attendance.OnlineDurationMin)
}

func TestImportMatchesByFuzzyName(t *testing.T) {
	db := newTestDB(t)
	svc := NewZoomImportService(db)

	event := seedEvent(t, db, "Spring Program", true)
	session := seedSession(t, db, event.ID, "Online Day")
	jane := seedParticipant(t, db, "Jane Doe", "jane@example.com", "qr-jane")

	result, err := svc.Import(session.ID, []zoomcsv.Row{
		{Name: "Jane A. Doe"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.MatchedCount)

	var count int64
	db.Model(&models.Attendance{}).Where("participant_id = ?", jane.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestImportAmbiguousNameGoesUnmatched(t *testing.T) {
	db := newTestDB(t)
	svc := NewZoomImportService(db)

	event := seedEvent(t, db, "Spring Program", true)
	session := seedSession(t, db, event.ID, "Online Day")
	seedParticipant(t, db, "Jane Doe", "jane1@example.com", "qr-jane1")
	seedParticipant(t, db, "Jane Doe Miller", "jane2@example.com", "qr-jane2")

	result, err := svc.Import(session.ID, []zoomcsv.Row{
		{Name: "Jane Doe"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.MatchedCount)
	assert.Equal(t, 1, result.UnmatchedCount)

	unmatched, err := svc.Unmatched(session.ID)
	require.NoError(t, err)
	require.Len(t, unmatched, 1)
	assert.Equal(t, "Jane Doe", unmatched[0].DisplayName)
}

func TestImportIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewZoomImportService(db)

	event := seedEvent(t, db, "Spring Program", true)
	session := seedSession(t, db, event.ID, "Online Day")
	seedParticipant(t, db, "Jane Doe", "jane@example.com", "qr-jane")

	rows := []zoomcsv.Row{
		{Name: "Jane Doe", Email: "jane@example.com"},
		{Name: "Stranger"},
	}

	for i := 0; i < 2; i++ {
		result, err := svc.Import(session.ID, rows)
		require.NoError(t, err)
		assert.Equal(t, 1, result.MatchedCount)
		assert.Equal(t, 1, result.UnmatchedCount)
	}

	var attendances int64
	db.Model(&models.Attendance{}).Where("session_id = ?", session.ID).Count(&attendances)
	assert.EqualValues(t, 1, attendances)

	var unmatched int64
	db.Model(&models.ZoomUnmatchedParticipant{}).Where("session_id = ?", session.ID).Count(&unmatched)
	assert.EqualValues(t, 1, unmatched)
}

func TestImportKeepsExistingScan(t *testing.T) {
	db := newTestDB(t)
	importSvc := NewZoomImportService(db)
	attendanceSvc := NewAttendanceService(db)

	event := seedEvent(t, db, "Spring Program", true)
	session := seedSession(t, db, event.ID, "Hybrid Day")
	jane := seedParticipant(t, db, "Jane Doe", "jane@example.com", "qr-jane")
	staff, _ := seedHiwi(t, db, "Sam Staff", "sam@example.com")

	scanned, err := attendanceSvc.Scan("qr-jane", session.ID, staff.ID)
	require.NoError(t, err)
	require.Equal(t, jane.ID, scanned.ParticipantID)

	duration := 40
	_, err = importSvc.Import(session.ID, []zoomcsv.Row{
		{Name: "Jane Doe", Email: "jane@example.com", DurationMin: &duration},
	})
	require.NoError(t, err)

	var attendance models.Attendance
	require.NoError(t, db.First(&attendance, scanned.ID).Error)
	// Online metadata is merged in, the scan record itself stays.
	assert.Equal(t, models.AttendanceSourceScan, attendance.Source)
	require.NotNil(t, attendance.ScannedByHiwiID)
	require.NotNil(t, attendance.OnlineDurationMin)
	assert.Equal(t, 40, *attendance.OnlineDurationMin)
}

func TestImportUnknownSession(t *testing.T) {
	db := newTestDB(t)
	svc := NewZoomImportService(db)

	_, err := svc.Import(999, nil)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
