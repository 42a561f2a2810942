package services

import (
	"time"

	"github.com/smp-team-2025/smp-backend/internal/mail"
	"github.com/smp-team-2025/smp-backend/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegistrationService struct {
	db     *gorm.DB
	events *EventService
	mailer mail.Sender
}

func NewRegistrationService(db *gorm.DB, events *EventService, mailer mail.Sender) *RegistrationService {
	return &RegistrationService{db: db, events: events, mailer: mailer}
}

type RegistrationInput struct {
	Salutation   string  `json:"salutation" binding:"required,max=50"`
	FirstName    string  `json:"first_name" binding:"required,max=100"`
	LastName     string  `json:"last_name" binding:"required,max=100"`
	Email        string  `json:"email" binding:"required,email"`
	ConfirmEmail string  `json:"confirm_email" binding:"required,email"`
	Street       string  `json:"street" binding:"required,max=255"`
	AddressExtra *string `json:"address_extra"`
	ZipCode      string  `json:"zip_code" binding:"required,max=20"`
	City         string  `json:"city" binding:"required,max=100"`
	School       string  `json:"school" binding:"required,max=255"`
	Grade        string  `json:"grade" binding:"required,max=50"`
	Motivation   *string `json:"motivation"`
	Comments     *string `json:"comments"`
}

// Create files a pending registration against the currently active event.
func (s *RegistrationService) Create(input RegistrationInput) (*models.Registration, error) {
	if input.Email != input.ConfirmEmail {
		return nil, ErrEmailMismatch
	}

	event, err := s.events.GetActive()
	if err != nil {
		return nil, err
	}
	if event.RegistrationClosesAt != nil && time.Now().After(*event.RegistrationClosesAt) {
		return nil, ErrRegistrationClosed
	}

	registration := models.Registration{
		EventID:      event.ID,
		Salutation:   input.Salutation,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Street:       input.Street,
		AddressExtra: input.AddressExtra,
		ZipCode:      input.ZipCode,
		City:         input.City,
		School:       input.School,
		Grade:        input.Grade,
		Motivation:   input.Motivation,
		Comments:     input.Comments,
		Status:       models.RegistrationPending,
	}
	if err := s.db.Create(&registration).Error; err != nil {
		return nil, err
	}
	return &registration, nil
}

// List returns registrations of the given event, or of the active event when
// eventID is zero.
func (s *RegistrationService) List(eventID uint) ([]models.Registration, error) {
	if eventID == 0 {
		id, err := s.events.GetActiveEventID()
		if err != nil {
			return nil, err
		}
		eventID = id
	}

	var registrations []models.Registration
	err := s.db.Where("event_id = ?", eventID).Order("created_at DESC").Find(&registrations).Error
	return registrations, err
}

func (s *RegistrationService) GetByID(id uint) (*models.Registration, error) {
	var registration models.Registration
	if err := s.db.First(&registration, id).Error; err != nil {
		return nil, ErrRegistrationNotFound
	}
	return &registration, nil
}

// Approve flips the registration to APPROVED and creates the participant
// account: a fresh QR token, a random initial password, and an approval
// email carrying the credentials. Account creation and status change commit
// together.
func (s *RegistrationService) Approve(id uint) (*models.Registration, error) {
	registration, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	password, err := generatePassword(12)
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	qrID := uuid.NewString()
	name := registration.FirstName + " " + registration.LastName

	var user models.User
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(registration).Update("status", models.RegistrationApproved).Error; err != nil {
			return err
		}
		user = models.User{
			Name:           name,
			Email:          registration.Email,
			PasswordHash:   string(hash),
			Role:           models.RoleParticipant,
			QrID:           &qrID,
			RegistrationID: &registration.ID,
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}

	s.mailer.Send(mail.Message{
		To:      user.Email,
		ToName:  user.Name,
		Subject: "Deine Anmeldung wurde bestätigt",
		Body: "Hallo " + user.Name + ",\n\n" +
			"deine Anmeldung wurde bestätigt. Du kannst dich jetzt einloggen:\n\n" +
			"E-Mail: " + user.Email + "\n" +
			"Passwort: " + password + "\n\n" +
			"Bitte ändere dein Passwort nach dem ersten Login.",
	})

	registration.Status = models.RegistrationApproved
	return registration, nil
}

// ApproveAllPending bulk-approves without creating accounts; used for data
// cleanups where accounts are provisioned separately. Returns the number of
// rows changed.
func (s *RegistrationService) ApproveAllPending(eventID uint) (int64, error) {
	if eventID == 0 {
		id, err := s.events.GetActiveEventID()
		if err != nil {
			return 0, err
		}
		eventID = id
	}

	res := s.db.Model(&models.Registration{}).
		Where("event_id = ? AND status = ?", eventID, models.RegistrationPending).
		Update("status", models.RegistrationApproved)
	return res.RowsAffected, res.Error
}

func (s *RegistrationService) Reject(id uint) (*models.Registration, error) {
	registration, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(registration).Update("status", models.RegistrationRejected).Error; err != nil {
		return nil, err
	}
	registration.Status = models.RegistrationRejected
	return registration, nil
}

// ApprovedStudents joins the approved registrations of an event with the
// accounts created from them, for the organizer's roster view.
type ApprovedStudent struct {
	RegistrationID uint      `json:"registration_id"`
	UserID         *uint     `json:"user_id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	School         string    `json:"school"`
	Grade          string    `json:"grade"`
	City           string    `json:"city"`
	CreatedAt      time.Time `json:"created_at"`
}

func (s *RegistrationService) ApprovedStudents(eventID uint) ([]ApprovedStudent, error) {
	if eventID == 0 {
		id, err := s.events.GetActiveEventID()
		if err != nil {
			return nil, err
		}
		eventID = id
	}

	var registrations []models.Registration
	err := s.db.
		Where("event_id = ? AND status = ?", eventID, models.RegistrationApproved).
		Order("created_at DESC").
		Find(&registrations).Error
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := s.db.Where("role = ?", models.RoleParticipant).Find(&users).Error; err != nil {
		return nil, err
	}
	userByRegistration := make(map[uint]uint, len(users))
	for _, u := range users {
		if u.RegistrationID != nil {
			userByRegistration[*u.RegistrationID] = u.ID
		}
	}

	students := make([]ApprovedStudent, 0, len(registrations))
	for _, r := range registrations {
		student := ApprovedStudent{
			RegistrationID: r.ID,
			Email:          r.Email,
			FirstName:      r.FirstName,
			LastName:       r.LastName,
			School:         r.School,
			Grade:          r.Grade,
			City:           r.City,
			CreatedAt:      r.CreatedAt,
		}
		if userID, ok := userByRegistration[r.ID]; ok {
			student.UserID = &userID
		}
		students = append(students, student)
	}
	return students, nil
}
