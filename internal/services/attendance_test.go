package services

import (
	"testing"

	"github.com/smp-team-2025/smp-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanRecordsAttendance(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttendanceService(db)

	event := seedEvent(t, db, "Spring Program", true)
	session := seedSession(t, db, event.ID, "Day 1")
	participant := seedParticipant(t, db, "Jane Doe", "jane@example.com", "qr-jane")
	staff, hiwi := seedHiwi(t, db, "Sam Staff", "sam@example.com")

	attendance, err := svc.Scan("qr-jane", session.ID, staff.ID)
	require.NoError(t, err)
	assert.Equal(t, participant.ID, attendance.ParticipantID)
	assert.Equal(t, session.ID, attendance.SessionID)
	assert.Equal(t, models.AttendanceSourceScan, attendance.Source)
	require.NotNil(t, attendance.ScannedByHiwiID)
	assert.Equal(t, hiwi.ID, *attendance.ScannedByHiwiID)
}

func TestScanDuplicateIsRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttendanceService(db)

	event := seedEvent(t, db, "Spring Program", true)
	session := seedSession(t, db, event.ID, "Day 1")
	seedParticipant(t, db, "Jane Doe", "jane@example.com", "qr-jane")
	staff, _ := seedHiwi(t, db, "Sam Staff", "sam@example.com")

	_, err := svc.Scan("qr-jane", session.ID, staff.ID)
	require.NoError(t, err)

	_, err = svc.Scan("qr-jane", session.ID, staff.ID)
	assert.ErrorIs(t, err, ErrAlreadyScanned)
}

func TestScanValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttendanceService(db)

	event := seedEvent(t, db, "Spring Program", true)
	session := seedSession(t, db, event.ID, "Day 1")
	seedParticipant(t, db, "Jane Doe", "jane@example.com", "qr-jane")
	staff, _ := seedHiwi(t, db, "Sam Staff", "sam@example.com")
	organizer := &models.User{Name: "Orga", Email: "orga@example.com", PasswordHash: "x", Role: models.RoleOrganizer}
	require.NoError(t, db.Create(organizer).Error)

	tests := []struct {
		name        string
		qrID        string
		sessionID   uint
		staffUserID uint
		wantErr     error
	}{
		{name: "unknown qr", qrID: "qr-nobody", sessionID: session.ID, staffUserID: staff.ID, wantErr: ErrInvalidQRCode},
		{name: "unknown session", qrID: "qr-jane", sessionID: session.ID + 99, staffUserID: staff.ID, wantErr: ErrSessionNotFound},
		{name: "scanner without hiwi record", qrID: "qr-jane", sessionID: session.ID, staffUserID: organizer.ID, wantErr: ErrHiwiNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Scan(tt.qrID, tt.sessionID, tt.staffUserID)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestManualEntry(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttendanceService(db)

	event := seedEvent(t, db, "Spring Program", true)
	session := seedSession(t, db, event.ID, "Day 1")
	participant := seedParticipant(t, db, "Jane Doe", "jane@example.com", "qr-jane")

	attendance, err := svc.Manual(participant.ID, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceSourceManual, attendance.Source)
	assert.Nil(t, attendance.ScannedByHiwiID)

	_, err = svc.Manual(participant.ID, session.ID)
	assert.ErrorIs(t, err, ErrAlreadyPresent)
}

func TestManualRejectsNonParticipant(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttendanceService(db)

	event := seedEvent(t, db, "Spring Program", true)
	session := seedSession(t, db, event.ID, "Day 1")
	staff, _ := seedHiwi(t, db, "Sam Staff", "sam@example.com")

	_, err := svc.Manual(staff.ID, session.ID)
	assert.ErrorIs(t, err, ErrInvalidParticipant)
}

func TestRemoveIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttendanceService(db)

	event := seedEvent(t, db, "Spring Program", true)
	session := seedSession(t, db, event.ID, "Day 1")
	participant := seedParticipant(t, db, "Jane Doe", "jane@example.com", "qr-jane")

	attendance, err := svc.Manual(participant.ID, session.ID)
	require.NoError(t, err)

	deleted, err := svc.Remove(attendance.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Remove(attendance.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestListForParticipantIncludesContext(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttendanceService(db)

	event := seedEvent(t, db, "Spring Program", true)
	first := seedSession(t, db, event.ID, "Day 1")
	second := seedSession(t, db, event.ID, "Day 2")
	participant := seedParticipant(t, db, "Jane Doe", "jane@example.com", "qr-jane")

	_, err := svc.Manual(participant.ID, first.ID)
	require.NoError(t, err)
	_, err = svc.Manual(participant.ID, second.ID)
	require.NoError(t, err)

	history, err := svc.ListForParticipant(participant.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "Day 1", history[0].Session.Title)
	assert.Equal(t, "Spring Program", history[0].Session.Event.Title)
}
