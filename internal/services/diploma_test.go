package services

import (
	"testing"
	"time"

	"github.com/smp-team-2025/smp-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// submitQuiz records a quiz response for the participant on the session,
// creating the session's quiz if it does not exist yet.
func submitQuiz(t *testing.T, db *gorm.DB, sessionID, participantID uint) {
	t.Helper()

	var quiz models.FermiQuiz
	if err := db.Where("session_id = ?", sessionID).First(&quiz).Error; err != nil {
		quiz = models.FermiQuiz{SessionID: sessionID}
		require.NoError(t, db.Create(&quiz).Error)
	}
	response := models.FermiResponse{
		ParticipantID: participantID,
		QuizID:        quiz.ID,
		SubmittedAt:   time.Now(),
	}
	require.NoError(t, db.Create(&response).Error)
}

func TestCheckEligibility(t *testing.T) {
	db := newTestDB(t)
	attendanceSvc := NewAttendanceService(db)
	diplomaSvc := NewDiplomaService(db)

	event := seedEvent(t, db, "Spring Program", true)
	participant := seedParticipant(t, db, "Jane Doe", "jane@example.com", "qr-jane")

	sessions := make([]*models.Session, 0, 3)
	for _, title := range []string{"Day 1", "Day 2", "Day 3"} {
		sessions = append(sessions, seedSession(t, db, event.ID, title))
	}

	// Two of three sessions attended, no quiz yet.
	for _, s := range sessions[:2] {
		_, err := attendanceSvc.Manual(participant.ID, s.ID)
		require.NoError(t, err)
	}

	result, err := diplomaSvc.CheckEligibility(participant.ID, event.ID)
	require.NoError(t, err)
	assert.False(t, result.IsEligible)
	assert.Equal(t, 2, result.AttendanceCount)
	assert.False(t, result.QuizSubmitted)
	assert.Contains(t, result.Reasons, "Insufficient attendance: 2/3")
	assert.Contains(t, result.Reasons, "Quiz not submitted")

	// Third attendance plus a quiz submission flips the verdict.
	_, err = attendanceSvc.Manual(participant.ID, sessions[2].ID)
	require.NoError(t, err)
	submitQuiz(t, db, sessions[0].ID, participant.ID)

	result, err = diplomaSvc.CheckEligibility(participant.ID, event.ID)
	require.NoError(t, err)
	assert.True(t, result.IsEligible)
	assert.Equal(t, 3, result.AttendanceCount)
	assert.True(t, result.QuizSubmitted)
	assert.Empty(t, result.Reasons)
}

func TestCheckEligibilityCountsOnlyTheEventsSessions(t *testing.T) {
	db := newTestDB(t)
	attendanceSvc := NewAttendanceService(db)
	diplomaSvc := NewDiplomaService(db)

	spring := seedEvent(t, db, "Spring Program", true)
	autumn := seedEvent(t, db, "Autumn Program", false)
	participant := seedParticipant(t, db, "Jane Doe", "jane@example.com", "qr-jane")

	// Three attendances in the autumn event, one in spring.
	for _, title := range []string{"Day 1", "Day 2", "Day 3"} {
		session := seedSession(t, db, autumn.ID, title)
		_, err := attendanceSvc.Manual(participant.ID, session.ID)
		require.NoError(t, err)
	}
	springSession := seedSession(t, db, spring.ID, "Day 1")
	_, err := attendanceSvc.Manual(participant.ID, springSession.ID)
	require.NoError(t, err)
	submitQuiz(t, db, springSession.ID, participant.ID)

	result, err := diplomaSvc.CheckEligibility(participant.ID, spring.ID)
	require.NoError(t, err)
	assert.False(t, result.IsEligible)
	assert.Equal(t, 1, result.AttendanceCount)
	assert.Contains(t, result.Reasons, "Insufficient attendance: 1/3")
}

func TestIssueRequiresEligibility(t *testing.T) {
	db := newTestDB(t)
	diplomaSvc := NewDiplomaService(db)

	event := seedEvent(t, db, "Spring Program", true)
	participant := seedParticipant(t, db, "Jane Doe", "jane@example.com", "qr-jane")

	_, err := diplomaSvc.Issue(participant.ID, event.ID)
	assert.ErrorIs(t, err, ErrNotEligible)
}

func TestIssueNumbersCertificatesSequentially(t *testing.T) {
	db := newTestDB(t)
	attendanceSvc := NewAttendanceService(db)
	diplomaSvc := NewDiplomaService(db)

	event := seedEvent(t, db, "Spring Program", true)
	jane := seedParticipant(t, db, "Jane Doe", "jane@example.com", "qr-jane")
	kim := seedParticipant(t, db, "Kim Lee", "kim@example.com", "qr-kim")

	var quizSessionID uint
	for i, title := range []string{"Day 1", "Day 2", "Day 3"} {
		session := seedSession(t, db, event.ID, title)
		if i == 0 {
			quizSessionID = session.ID
		}
		for _, p := range []*models.User{jane, kim} {
			_, err := attendanceSvc.Manual(p.ID, session.ID)
			require.NoError(t, err)
		}
	}
	submitQuiz(t, db, quizSessionID, jane.ID)
	submitQuiz(t, db, quizSessionID, kim.ID)

	first, err := diplomaSvc.Issue(jane.ID, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "SMP-2026-001", first.CertificateNumber)

	second, err := diplomaSvc.Issue(kim.ID, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "SMP-2026-002", second.CertificateNumber)

	_, err = diplomaSvc.Issue(jane.ID, event.ID)
	assert.ErrorIs(t, err, ErrDiplomaAlreadyIssued)
}

func TestRevokedNumberIsNotReused(t *testing.T) {
	db := newTestDB(t)
	attendanceSvc := NewAttendanceService(db)
	diplomaSvc := NewDiplomaService(db)

	event := seedEvent(t, db, "Spring Program", true)
	jane := seedParticipant(t, db, "Jane Doe", "jane@example.com", "qr-jane")
	kim := seedParticipant(t, db, "Kim Lee", "kim@example.com", "qr-kim")

	var quizSessionID uint
	for i, title := range []string{"Day 1", "Day 2", "Day 3"} {
		session := seedSession(t, db, event.ID, title)
		if i == 0 {
			quizSessionID = session.ID
		}
		for _, p := range []*models.User{jane, kim} {
			_, err := attendanceSvc.Manual(p.ID, session.ID)
			require.NoError(t, err)
		}
	}
	submitQuiz(t, db, quizSessionID, jane.ID)
	submitQuiz(t, db, quizSessionID, kim.ID)

	first, err := diplomaSvc.Issue(jane.ID, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "SMP-2026-001", first.CertificateNumber)

	require.NoError(t, diplomaSvc.Delete(jane.ID, event.ID))

	second, err := diplomaSvc.Issue(kim.ID, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "SMP-2026-002", second.CertificateNumber)
}

func TestVerifyByCertificateNumber(t *testing.T) {
	db := newTestDB(t)
	diplomaSvc := NewDiplomaService(db)

	event := seedEvent(t, db, "Spring Program", true)
	jane := seedParticipant(t, db, "Jane Doe", "jane@example.com", "qr-jane")

	diploma := models.Diploma{
		ParticipantID:     jane.ID,
		EventID:           event.ID,
		CertificateNumber: "SMP-2026-001",
		IssuedAt:          time.Now(),
	}
	require.NoError(t, db.Create(&diploma).Error)

	found, err := diplomaSvc.GetByCertificateNumber("SMP-2026-001")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", found.Participant.Name)
	assert.Equal(t, "Spring Program", found.Event.Title)

	_, err = diplomaSvc.GetByCertificateNumber("SMP-2026-999")
	assert.ErrorIs(t, err, ErrDiplomaNotFound)
}
