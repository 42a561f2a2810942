package services

import (
	"time"

	"github.com/smp-team-2025/smp-backend/internal/models"

	"gorm.io/gorm"
)

type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

type CreateEventInput struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	IsActive    bool       `json:"is_active"`
}

type UpdateEventInput struct {
	Title       *string    `json:"title" binding:"omitempty,max=255"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	IsActive    *bool      `json:"is_active"`
}

func (s *EventService) List() ([]models.Event, error) {
	var events []models.Event
	err := s.db.Order("is_active DESC, created_at DESC").Find(&events).Error
	return events, err
}

func (s *EventService) GetByID(id uint) (*models.Event, error) {
	var event models.Event
	if err := s.db.First(&event, id).Error; err != nil {
		return nil, ErrEventNotFound
	}
	return &event, nil
}

func (s *EventService) GetActive() (*models.Event, error) {
	var event models.Event
	err := s.db.Where("is_active = ?", true).Order("created_at DESC").First(&event).Error
	if err != nil {
		return nil, ErrNoActiveEvent
	}
	return &event, nil
}

func (s *EventService) GetActiveEventID() (uint, error) {
	event, err := s.GetActive()
	if err != nil {
		return 0, err
	}
	return event.ID, nil
}

// Create inserts the event; when it is created active, all other events are
// deactivated in the same transaction so at most one event is ever active.
func (s *EventService) Create(input CreateEventInput) (*models.Event, error) {
	event := models.Event{
		Title:       input.Title,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		IsActive:    input.IsActive,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if input.IsActive {
			if err := tx.Model(&models.Event{}).
				Where("is_active = ?", true).
				Update("is_active", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *EventService) Update(id uint, input UpdateEventInput) (*models.Event, error) {
	var event models.Event
	if err := s.db.First(&event, id).Error; err != nil {
		return nil, ErrEventNotFound
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.StartDate != nil {
		updates["start_date"] = *input.StartDate
	}
	if input.EndDate != nil {
		updates["end_date"] = *input.EndDate
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if input.IsActive != nil && *input.IsActive {
			if err := tx.Model(&models.Event{}).
				Where("id <> ? AND is_active = ?", id, true).
				Update("is_active", false).Error; err != nil {
				return err
			}
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&event).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *EventService) UpdateRegistrationClosesAt(id uint, closesAt *time.Time) (*models.Event, error) {
	var event models.Event
	if err := s.db.First(&event, id).Error; err != nil {
		return nil, ErrEventNotFound
	}

	if err := s.db.Model(&event).Update("registration_closes_at", closesAt).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *EventService) Delete(id uint) error {
	var event models.Event
	if err := s.db.First(&event, id).Error; err != nil {
		return ErrEventNotFound
	}
	if event.IsActive {
		return ErrCannotDeleteActive
	}
	return s.db.Select("Sessions").Delete(&event).Error
}
