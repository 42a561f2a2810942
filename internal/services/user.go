package services

import (
	"github.com/smp-team-2025/smp-backend/internal/models"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetByID(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// QRPayload is what the frontend renders into the participant's QR badge.
// Image generation is not this backend's job.
type QRPayload struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	QrID   string `json:"qr_id"`
}

func (s *UserService) QRPayload(userID uint) (*QRPayload, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user.QrID == nil || !user.IsParticipant() {
		return nil, ErrInvalidParticipant
	}
	return &QRPayload{UserID: user.ID, Name: user.Name, QrID: *user.QrID}, nil
}
