package services

import (
	"github.com/smp-team-2025/smp-backend/internal/models"

	"gorm.io/gorm"
)

type AnnouncementService struct {
	db *gorm.DB
}

func NewAnnouncementService(db *gorm.DB) *AnnouncementService {
	return &AnnouncementService{db: db}
}

type CreateAnnouncementInput struct {
	Title      *string                        `json:"title" binding:"omitempty,max=255"`
	Body       string                         `json:"body" binding:"required"`
	EventID    *uint                          `json:"event_id"`
	SessionID  *uint                          `json:"session_id"`
	Visibility *models.AnnouncementVisibility `json:"visibility"`
}

type UpdateAnnouncementInput struct {
	Title      *string                        `json:"title" binding:"omitempty,max=255"`
	Body       *string                        `json:"body"`
	Visibility *models.AnnouncementVisibility `json:"visibility"`
}

func (s *AnnouncementService) Create(authorID uint, input CreateAnnouncementInput) (*models.StaffAnnouncement, error) {
	announcement := models.StaffAnnouncement{
		Title:      input.Title,
		Body:       input.Body,
		EventID:    input.EventID,
		SessionID:  input.SessionID,
		AuthorID:   authorID,
		Visibility: models.VisibilityHiwiOrga,
	}
	if input.Visibility != nil {
		announcement.Visibility = *input.Visibility
	}
	if err := s.db.Create(&announcement).Error; err != nil {
		return nil, err
	}
	return &announcement, nil
}

// List filters by the caller's role: organizers see everything, hiwis see
// staff-internal and public ones, participants only public ones.
func (s *AnnouncementService) List(eventID, sessionID uint, role models.UserRole) ([]models.StaffAnnouncement, error) {
	query := s.db.Model(&models.StaffAnnouncement{})

	switch role {
	case models.RoleOrganizer:
	case models.RoleHiwi:
		query = query.Where("visibility IN ?", []models.AnnouncementVisibility{
			models.VisibilityHiwiOrga, models.VisibilityPublic,
		})
	default:
		query = query.Where("visibility = ?", models.VisibilityPublic)
	}

	if eventID != 0 {
		query = query.Where("event_id = ?", eventID)
	}
	if sessionID != 0 {
		query = query.Where("session_id = ?", sessionID)
	}

	var announcements []models.StaffAnnouncement
	err := query.
		Preload("Author").
		Preload("Attachments").
		Order("created_at DESC").
		Find(&announcements).Error
	return announcements, err
}

// Update is restricted to the author; organizers may edit anything.
func (s *AnnouncementService) Update(id, userID uint, role models.UserRole, input UpdateAnnouncementInput) (*models.StaffAnnouncement, error) {
	var announcement models.StaffAnnouncement
	if err := s.db.First(&announcement, id).Error; err != nil {
		return nil, ErrAnnouncementNotFound
	}
	if role != models.RoleOrganizer && announcement.AuthorID != userID {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Body != nil {
		updates["body"] = *input.Body
	}
	if input.Visibility != nil {
		updates["visibility"] = *input.Visibility
	}
	if len(updates) > 0 {
		if err := s.db.Model(&announcement).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &announcement, nil
}

func (s *AnnouncementService) Delete(id, userID uint, role models.UserRole) error {
	var announcement models.StaffAnnouncement
	if err := s.db.First(&announcement, id).Error; err != nil {
		return ErrAnnouncementNotFound
	}
	if role != models.RoleOrganizer && announcement.AuthorID != userID {
		return ErrForbidden
	}
	return s.db.Delete(&announcement).Error
}

// AttachFile records an already-uploaded file for the announcement. Upload
// handling itself lives in the HTTP layer.
func (s *AnnouncementService) AttachFile(announcementID uint, url, mimeType string) (*models.AnnouncementAttachment, error) {
	if err := s.db.First(&models.StaffAnnouncement{}, announcementID).Error; err != nil {
		return nil, ErrAnnouncementNotFound
	}

	attachment := models.AnnouncementAttachment{
		AnnouncementID: announcementID,
		URL:            url,
		MimeType:       mimeType,
	}
	if err := s.db.Create(&attachment).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (s *AnnouncementService) ListComments(announcementID uint) ([]models.AnnouncementComment, error) {
	if err := s.db.First(&models.StaffAnnouncement{}, announcementID).Error; err != nil {
		return nil, ErrAnnouncementNotFound
	}

	var comments []models.AnnouncementComment
	err := s.db.
		Where("announcement_id = ?", announcementID).
		Preload("Author").
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

func (s *AnnouncementService) CreateComment(announcementID, authorID uint, body string) (*models.AnnouncementComment, error) {
	if err := s.db.First(&models.StaffAnnouncement{}, announcementID).Error; err != nil {
		return nil, ErrAnnouncementNotFound
	}

	comment := models.AnnouncementComment{
		AnnouncementID: announcementID,
		AuthorID:       authorID,
		Body:           body,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	if err := s.db.Preload("Author").First(&comment, comment.ID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *AnnouncementService) UpdateComment(commentID, userID uint, role models.UserRole, body string) (*models.AnnouncementComment, error) {
	var comment models.AnnouncementComment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		return nil, ErrCommentNotFound
	}
	if role != models.RoleOrganizer && comment.AuthorID != userID {
		return nil, ErrForbidden
	}

	if err := s.db.Model(&comment).Update("body", body).Error; err != nil {
		return nil, err
	}
	comment.Body = body
	return &comment, nil
}

func (s *AnnouncementService) DeleteComment(commentID, userID uint, role models.UserRole) error {
	var comment models.AnnouncementComment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		return ErrCommentNotFound
	}
	if role != models.RoleOrganizer && comment.AuthorID != userID {
		return ErrForbidden
	}
	return s.db.Delete(&comment).Error
}
