package services

import (
	"testing"

	"github.com/smp-team-2025/smp-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHiwiCreateProvisionsAccount(t *testing.T) {
	db := newTestDB(t)
	mailer := &fakeSender{}
	svc := NewHiwiService(db, mailer)

	hiwi, err := svc.Create(CreateHiwiInput{Email: "sam@example.com", Name: "Sam Staff"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleHiwi, hiwi.User.Role)
	assert.Equal(t, "Sam Staff", hiwi.User.Name)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "sam@example.com", mailer.sent[0].To)

	_, err = svc.Create(CreateHiwiInput{Email: "sam@example.com", Name: "Sam Again"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestHiwiRemoveDeletesAccount(t *testing.T) {
	db := newTestDB(t)
	svc := NewHiwiService(db, &fakeSender{})

	hiwi, err := svc.Create(CreateHiwiInput{Email: "sam@example.com", Name: "Sam Staff"})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(hiwi.ID))

	var users int64
	db.Model(&models.User{}).Where("email = ?", "sam@example.com").Count(&users)
	assert.EqualValues(t, 0, users)
}

func TestHiwiAssignment(t *testing.T) {
	db := newTestDB(t)
	svc := NewHiwiService(db, &fakeSender{})

	event := seedEvent(t, db, "Spring Program", true)
	session := seedSession(t, db, event.ID, "Day 1")
	_, hiwi := seedHiwi(t, db, "Sam Staff", "sam@example.com")

	assignment, err := svc.Assign(hiwi.ID, session.ID)
	require.NoError(t, err)
	assert.Equal(t, models.HiwiMaybe, assignment.Status)

	_, err = svc.Assign(hiwi.ID, session.ID)
	assert.ErrorIs(t, err, ErrAlreadyAssigned)

	require.NoError(t, svc.Unassign(assignment.ID))
	assert.ErrorIs(t, svc.Unassign(assignment.ID), ErrAssignmentNotFound)
}

func TestHiwiStatusOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewHiwiService(db, &fakeSender{})

	event := seedEvent(t, db, "Spring Program", true)
	session := seedSession(t, db, event.ID, "Day 1")
	samUser, sam := seedHiwi(t, db, "Sam Staff", "sam@example.com")
	leeUser, _ := seedHiwi(t, db, "Lee Staff", "lee@example.com")

	assignment, err := svc.Assign(sam.ID, session.ID)
	require.NoError(t, err)

	updated, err := svc.UpdateMyStatus(samUser.ID, assignment.ID, models.HiwiAvailable)
	require.NoError(t, err)
	assert.Equal(t, models.HiwiAvailable, updated.Status)

	_, err = svc.UpdateMyStatus(leeUser.ID, assignment.ID, models.HiwiUnavailable)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAssignmentsByEvent(t *testing.T) {
	db := newTestDB(t)
	svc := NewHiwiService(db, &fakeSender{})

	event := seedEvent(t, db, "Spring Program", true)
	first := seedSession(t, db, event.ID, "Day 1")
	seedSession(t, db, event.ID, "Day 2")
	_, sam := seedHiwi(t, db, "Sam Staff", "sam@example.com")

	_, err := svc.Assign(sam.ID, first.ID)
	require.NoError(t, err)

	overview, err := svc.AssignmentsByEvent(event.ID)
	require.NoError(t, err)
	require.Len(t, overview, 2)
	assert.Len(t, overview[0].Hiwis, 1)
	assert.Empty(t, overview[1].Hiwis)
}
