package services

import (
	"time"

	"github.com/smp-team-2025/smp-backend/internal/models"

	"gorm.io/gorm"
)

type SessionService struct {
	db *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{db: db}
}

type CreateSessionInput struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	StartsAt    time.Time  `json:"starts_at" binding:"required"`
	EndsAt      *time.Time `json:"ends_at"`
}

type UpdateSessionInput struct {
	Title       *string    `json:"title" binding:"omitempty,max=255"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
}

func (s *SessionService) List(eventID uint) ([]models.Session, error) {
	if err := s.db.First(&models.Event{}, eventID).Error; err != nil {
		return nil, ErrEventNotFound
	}

	var sessions []models.Session
	err := s.db.Where("event_id = ?", eventID).Order("starts_at ASC").Find(&sessions).Error
	return sessions, err
}

func (s *SessionService) GetByID(eventID, sessionID uint) (*models.Session, error) {
	var session models.Session
	err := s.db.Where("id = ? AND event_id = ?", sessionID, eventID).First(&session).Error
	if err != nil {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (s *SessionService) Create(eventID uint, input CreateSessionInput) (*models.Session, error) {
	if err := s.db.First(&models.Event{}, eventID).Error; err != nil {
		return nil, ErrEventNotFound
	}
	if input.EndsAt != nil && input.EndsAt.Before(input.StartsAt) {
		return nil, ErrInvalidDate
	}

	session := models.Session{
		EventID:     eventID,
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *SessionService) Update(eventID, sessionID uint, input UpdateSessionInput) (*models.Session, error) {
	session, err := s.GetByID(eventID, sessionID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}
	if input.StartsAt != nil {
		updates["starts_at"] = *input.StartsAt
	}
	if input.EndsAt != nil {
		updates["ends_at"] = *input.EndsAt
	}

	startsAt := session.StartsAt
	if input.StartsAt != nil {
		startsAt = *input.StartsAt
	}
	endsAt := session.EndsAt
	if input.EndsAt != nil {
		endsAt = input.EndsAt
	}
	if endsAt != nil && endsAt.Before(startsAt) {
		return nil, ErrInvalidDate
	}

	if len(updates) > 0 {
		if err := s.db.Model(session).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return session, nil
}

func (s *SessionService) Delete(eventID, sessionID uint) error {
	session, err := s.GetByID(eventID, sessionID)
	if err != nil {
		return err
	}
	return s.db.Delete(session).Error
}

// Exists reports whether the session is known, regardless of event.
func (s *SessionService) Exists(sessionID uint) error {
	if err := s.db.First(&models.Session{}, sessionID).Error; err != nil {
		return ErrSessionNotFound
	}
	return nil
}

// AssignedHiwis lists the staff-assistant assignments for one session.
func (s *SessionService) AssignedHiwis(sessionID uint) ([]models.HiWiSession, error) {
	if err := s.db.First(&models.Session{}, sessionID).Error; err != nil {
		return nil, ErrSessionNotFound
	}

	var assignments []models.HiWiSession
	err := s.db.
		Where("session_id = ?", sessionID).
		Preload("Hiwi").
		Preload("Hiwi.User").
		Order("id ASC").
		Find(&assignments).Error
	return assignments, err
}
