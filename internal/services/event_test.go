package services

import (
	"testing"

	"github.com/smp-team-2025/smp-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateActiveEventDeactivatesOthers(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)

	first, err := svc.Create(CreateEventInput{Title: "Spring 2025", IsActive: true})
	require.NoError(t, err)
	assert.True(t, first.IsActive)

	second, err := svc.Create(CreateEventInput{Title: "Spring 2026", IsActive: true})
	require.NoError(t, err)
	assert.True(t, second.IsActive)

	var active []models.Event
	require.NoError(t, db.Where("is_active = ?", true).Find(&active).Error)
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)
}

func TestUpdateActivationDeactivatesOthers(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)

	first, err := svc.Create(CreateEventInput{Title: "Spring 2025", IsActive: true})
	require.NoError(t, err)
	second, err := svc.Create(CreateEventInput{Title: "Spring 2026"})
	require.NoError(t, err)

	activate := true
	_, err = svc.Update(second.ID, UpdateEventInput{IsActive: &activate})
	require.NoError(t, err)

	refreshed, err := svc.GetByID(first.ID)
	require.NoError(t, err)
	assert.False(t, refreshed.IsActive)

	active, err := svc.GetActive()
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)
}

func TestGetActiveWithoutOne(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)

	_, err := svc.GetActive()
	assert.ErrorIs(t, err, ErrNoActiveEvent)
}

func TestDeleteActiveEventIsRefused(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)

	event, err := svc.Create(CreateEventInput{Title: "Spring 2026", IsActive: true})
	require.NoError(t, err)

	err = svc.Delete(event.ID)
	assert.ErrorIs(t, err, ErrCannotDeleteActive)

	deactivate := false
	_, err = svc.Update(event.ID, UpdateEventInput{IsActive: &deactivate})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(event.ID))

	_, err = svc.GetByID(event.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestListPutsActiveFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewEventService(db)

	_, err := svc.Create(CreateEventInput{Title: "Old"})
	require.NoError(t, err)
	active, err := svc.Create(CreateEventInput{Title: "Current", IsActive: true})
	require.NoError(t, err)
	_, err = svc.Create(CreateEventInput{Title: "Draft"})
	require.NoError(t, err)

	events, err := svc.List()
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, active.ID, events[0].ID)
}
