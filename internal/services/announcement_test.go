package services

import (
	"testing"

	"github.com/smp-team-2025/smp-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnouncementVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnnouncementService(db)

	author := &models.User{Name: "Orga", Email: "orga@example.com", PasswordHash: "x", Role: models.RoleOrganizer}
	require.NoError(t, db.Create(author).Error)

	public := models.VisibilityPublic
	_, err := svc.Create(author.ID, CreateAnnouncementInput{Body: "welcome everyone", Visibility: &public})
	require.NoError(t, err)
	_, err = svc.Create(author.ID, CreateAnnouncementInput{Body: "staff briefing at 8"})
	require.NoError(t, err)

	orgaView, err := svc.List(0, 0, models.RoleOrganizer)
	require.NoError(t, err)
	assert.Len(t, orgaView, 2)

	hiwiView, err := svc.List(0, 0, models.RoleHiwi)
	require.NoError(t, err)
	assert.Len(t, hiwiView, 2)

	participantView, err := svc.List(0, 0, models.RoleParticipant)
	require.NoError(t, err)
	require.Len(t, participantView, 1)
	assert.Equal(t, "welcome everyone", participantView[0].Body)
}

func TestAnnouncementDefaultsToStaffVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnnouncementService(db)

	author, _ := seedHiwi(t, db, "Sam Staff", "sam@example.com")

	announcement, err := svc.Create(author.ID, CreateAnnouncementInput{Body: "internal note"})
	require.NoError(t, err)
	assert.Equal(t, models.VisibilityHiwiOrga, announcement.Visibility)
}

func TestAnnouncementOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnnouncementService(db)

	sam, _ := seedHiwi(t, db, "Sam Staff", "sam@example.com")
	lee, _ := seedHiwi(t, db, "Lee Staff", "lee@example.com")
	orga := &models.User{Name: "Orga", Email: "orga@example.com", PasswordHash: "x", Role: models.RoleOrganizer}
	require.NoError(t, db.Create(orga).Error)

	announcement, err := svc.Create(sam.ID, CreateAnnouncementInput{Body: "original"})
	require.NoError(t, err)

	newBody := "edited"
	_, err = svc.Update(announcement.ID, lee.ID, models.RoleHiwi, UpdateAnnouncementInput{Body: &newBody})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Update(announcement.ID, sam.ID, models.RoleHiwi, UpdateAnnouncementInput{Body: &newBody})
	require.NoError(t, err)

	// Organizers may moderate any post.
	require.NoError(t, svc.Delete(announcement.ID, orga.ID, models.RoleOrganizer))
}

func TestAnnouncementComments(t *testing.T) {
	db := newTestDB(t)
	svc := NewAnnouncementService(db)

	sam, _ := seedHiwi(t, db, "Sam Staff", "sam@example.com")
	lee, _ := seedHiwi(t, db, "Lee Staff", "lee@example.com")

	announcement, err := svc.Create(sam.ID, CreateAnnouncementInput{Body: "briefing"})
	require.NoError(t, err)

	comment, err := svc.CreateComment(announcement.ID, lee.ID, "noted")
	require.NoError(t, err)
	assert.Equal(t, "Lee Staff", comment.Author.Name)

	_, err = svc.UpdateComment(comment.ID, sam.ID, models.RoleHiwi, "hijacked")
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.UpdateComment(comment.ID, lee.ID, models.RoleHiwi, "noted, thanks")
	require.NoError(t, err)
	assert.Equal(t, "noted, thanks", updated.Body)

	comments, err := svc.ListComments(announcement.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 1)

	require.NoError(t, svc.DeleteComment(comment.ID, lee.ID, models.RoleHiwi))
	assert.ErrorIs(t, svc.DeleteComment(comment.ID, lee.ID, models.RoleHiwi), ErrCommentNotFound)
}
