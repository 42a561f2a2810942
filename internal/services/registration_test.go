package services

import (
	"testing"
	"time"

	"github.com/smp-team-2025/smp-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registrationInput(email string) RegistrationInput {
	return RegistrationInput{
		Salutation:   "Frau",
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        email,
		ConfirmEmail: email,
		Street:       "Musterstraße 1",
		ZipCode:      "12345",
		City:         "Berlin",
		School:       "Gymnasium Mitte",
		Grade:        "10",
	}
}

func TestRegistrationCreate(t *testing.T) {
	db := newTestDB(t)
	events := NewEventService(db)
	svc := NewRegistrationService(db, events, &fakeSender{})

	event := seedEvent(t, db, "Spring Program", true)

	registration, err := svc.Create(registrationInput("jane@example.com"))
	require.NoError(t, err)
	assert.Equal(t, event.ID, registration.EventID)
	assert.Equal(t, models.RegistrationPending, registration.Status)
}

func TestRegistrationEmailMismatch(t *testing.T) {
	db := newTestDB(t)
	svc := NewRegistrationService(db, NewEventService(db), &fakeSender{})
	seedEvent(t, db, "Spring Program", true)

	input := registrationInput("jane@example.com")
	input.ConfirmEmail = "other@example.com"

	_, err := svc.Create(input)
	assert.ErrorIs(t, err, ErrEmailMismatch)
}

func TestRegistrationWithoutActiveEvent(t *testing.T) {
	db := newTestDB(t)
	svc := NewRegistrationService(db, NewEventService(db), &fakeSender{})

	_, err := svc.Create(registrationInput("jane@example.com"))
	assert.ErrorIs(t, err, ErrNoActiveEvent)
}

func TestRegistrationAfterDeadline(t *testing.T) {
	db := newTestDB(t)
	svc := NewRegistrationService(db, NewEventService(db), &fakeSender{})

	event := seedEvent(t, db, "Spring Program", true)
	yesterday := time.Now().Add(-24 * time.Hour)
	require.NoError(t, db.Model(event).Update("registration_closes_at", yesterday).Error)

	_, err := svc.Create(registrationInput("jane@example.com"))
	assert.ErrorIs(t, err, ErrRegistrationClosed)
}

func TestApproveCreatesParticipantAccount(t *testing.T) {
	db := newTestDB(t)
	mailer := &fakeSender{}
	svc := NewRegistrationService(db, NewEventService(db), mailer)
	seedEvent(t, db, "Spring Program", true)

	registration, err := svc.Create(registrationInput("jane@example.com"))
	require.NoError(t, err)

	approved, err := svc.Approve(registration.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationApproved, approved.Status)

	var user models.User
	require.NoError(t, db.Where("email = ?", "jane@example.com").First(&user).Error)
	assert.Equal(t, models.RoleParticipant, user.Role)
	assert.Equal(t, "Jane Doe", user.Name)
	require.NotNil(t, user.QrID)
	assert.NotEmpty(t, *user.QrID)
	require.NotNil(t, user.RegistrationID)
	assert.Equal(t, registration.ID, *user.RegistrationID)

	// Credentials go out by mail, the hash stays in the database.
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "jane@example.com", mailer.sent[0].To)
	assert.NotContains(t, mailer.sent[0].Body, user.PasswordHash)
}

func TestRejectLeavesNoAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewRegistrationService(db, NewEventService(db), &fakeSender{})
	seedEvent(t, db, "Spring Program", true)

	registration, err := svc.Create(registrationInput("jane@example.com"))
	require.NoError(t, err)

	rejected, err := svc.Reject(registration.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationRejected, rejected.Status)

	var count int64
	db.Model(&models.User{}).Where("email = ?", "jane@example.com").Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestApproveAllPending(t *testing.T) {
	db := newTestDB(t)
	svc := NewRegistrationService(db, NewEventService(db), &fakeSender{})
	seedEvent(t, db, "Spring Program", true)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		_, err := svc.Create(registrationInput(email))
		require.NoError(t, err)
	}

	count, err := svc.ApproveAllPending(0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	count, err = svc.ApproveAllPending(0)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestApprovedStudentsRoster(t *testing.T) {
	db := newTestDB(t)
	svc := NewRegistrationService(db, NewEventService(db), &fakeSender{})
	seedEvent(t, db, "Spring Program", true)

	registration, err := svc.Create(registrationInput("jane@example.com"))
	require.NoError(t, err)
	_, err = svc.Approve(registration.ID)
	require.NoError(t, err)

	_, err = svc.Create(registrationInput("pending@example.com"))
	require.NoError(t, err)

	students, err := svc.ApprovedStudents(0)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "jane@example.com", students[0].Email)
	require.NotNil(t, students[0].UserID)
}
