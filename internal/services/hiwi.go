package services

import (
	"errors"

	"github.com/smp-team-2025/smp-backend/internal/mail"
	"github.com/smp-team-2025/smp-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type HiwiService struct {
	db     *gorm.DB
	mailer mail.Sender
}

func NewHiwiService(db *gorm.DB, mailer mail.Sender) *HiwiService {
	return &HiwiService{db: db, mailer: mailer}
}

type CreateHiwiInput struct {
	Email        string  `json:"email" binding:"required,email"`
	Name         string  `json:"name" binding:"required,max=255"`
	ClothingSize *string `json:"clothing_size"`
}

type UpdateHiwiInput struct {
	Name         *string `json:"name" binding:"omitempty,max=255"`
	ClothingSize *string `json:"clothing_size"`
}

func (s *HiwiService) List() ([]models.HiWi, error) {
	var hiwis []models.HiWi
	err := s.db.Preload("User").Order("id ASC").Find(&hiwis).Error
	return hiwis, err
}

func (s *HiwiService) GetByID(hiwiID uint) (*models.HiWi, error) {
	var hiwi models.HiWi
	if err := s.db.Preload("User").First(&hiwi, hiwiID).Error; err != nil {
		return nil, ErrHiwiNotFound
	}
	return &hiwi, nil
}

// Create provisions the staff account and its hiwi record together and mails
// the generated password.
func (s *HiwiService) Create(input CreateHiwiInput) (*models.HiWi, error) {
	password, err := generatePassword(10)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var hiwi models.HiWi
	err = s.db.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Email:        input.Email,
			Name:         input.Name,
			PasswordHash: string(hash),
			Role:         models.RoleHiwi,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		hiwi = models.HiWi{UserID: user.ID, ClothingSize: input.ClothingSize}
		if err := tx.Create(&hiwi).Error; err != nil {
			return err
		}
		hiwi.User = user
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	s.mailer.Send(mail.Message{
		To:      hiwi.User.Email,
		ToName:  hiwi.User.Name,
		Subject: "Dein HiWi-Zugang",
		Body: "Hallo " + hiwi.User.Name + ",\n\n" +
			"für dich wurde ein HiWi-Zugang angelegt:\n\n" +
			"E-Mail: " + hiwi.User.Email + "\n" +
			"Passwort: " + password + "\n\n" +
			"Bitte ändere dein Passwort nach dem ersten Login.",
	})
	return &hiwi, nil
}

func (s *HiwiService) Update(hiwiID uint, input UpdateHiwiInput) (*models.HiWi, error) {
	hiwi, err := s.GetByID(hiwiID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if input.Name != nil {
			if err := tx.Model(&models.User{}).
				Where("id = ?", hiwi.UserID).
				Update("name", *input.Name).Error; err != nil {
				return err
			}
		}
		if input.ClothingSize != nil {
			if err := tx.Model(hiwi).Update("clothing_size", *input.ClothingSize).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(hiwiID)
}

// Remove deletes the hiwi record together with its user account.
func (s *HiwiService) Remove(hiwiID uint) error {
	hiwi, err := s.GetByID(hiwiID)
	if err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.HiWi{}, hiwiID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, hiwi.UserID).Error
	})
}

// Assign links a hiwi to a session.
func (s *HiwiService) Assign(hiwiID, sessionID uint) (*models.HiWiSession, error) {
	if _, err := s.GetByID(hiwiID); err != nil {
		return nil, err
	}
	if err := s.db.First(&models.Session{}, sessionID).Error; err != nil {
		return nil, ErrSessionNotFound
	}

	assignment := models.HiWiSession{
		HiwiID:    hiwiID,
		SessionID: sessionID,
		Status:    models.HiwiMaybe,
	}
	if err := s.db.Create(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyAssigned
		}
		return nil, err
	}
	return &assignment, nil
}

func (s *HiwiService) Unassign(assignmentID uint) error {
	res := s.db.Delete(&models.HiWiSession{}, assignmentID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

// UpdateMyStatus lets a hiwi set the availability on their own assignment.
func (s *HiwiService) UpdateMyStatus(userID, assignmentID uint, status models.HiWiSessionStatus) (*models.HiWiSession, error) {
	var hiwi models.HiWi
	if err := s.db.Where("user_id = ?", userID).First(&hiwi).Error; err != nil {
		return nil, ErrHiwiNotFound
	}

	var assignment models.HiWiSession
	if err := s.db.First(&assignment, assignmentID).Error; err != nil {
		return nil, ErrAssignmentNotFound
	}
	if assignment.HiwiID != hiwi.ID {
		return nil, ErrForbidden
	}

	if err := s.db.Model(&assignment).Update("status", status).Error; err != nil {
		return nil, err
	}
	assignment.Status = status
	return &assignment, nil
}

type SessionAssignmentOverview struct {
	Session models.Session       `json:"session"`
	Hiwis   []models.HiWiSession `json:"hiwis"`
}

// AssignmentsByEvent groups the staff assignments of an event by session,
// for the organizer's planning view.
func (s *HiwiService) AssignmentsByEvent(eventID uint) ([]SessionAssignmentOverview, error) {
	if err := s.db.First(&models.Event{}, eventID).Error; err != nil {
		return nil, ErrEventNotFound
	}

	var sessions []models.Session
	err := s.db.Where("event_id = ?", eventID).Order("starts_at ASC").Find(&sessions).Error
	if err != nil {
		return nil, err
	}

	var assignments []models.HiWiSession
	err = s.db.
		Joins("JOIN sessions ON sessions.id = hi_wi_sessions.session_id").
		Where("sessions.event_id = ?", eventID).
		Preload("Hiwi").
		Preload("Hiwi.User").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	bySession := make(map[uint][]models.HiWiSession)
	for _, a := range assignments {
		bySession[a.SessionID] = append(bySession[a.SessionID], a)
	}

	overview := make([]SessionAssignmentOverview, 0, len(sessions))
	for _, session := range sessions {
		overview = append(overview, SessionAssignmentOverview{
			Session: session,
			Hiwis:   bySession[session.ID],
		})
	}
	return overview, nil
}
