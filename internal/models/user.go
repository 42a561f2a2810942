package models

import "time"

type UserRole string

const (
	RoleOrganizer   UserRole = "ORGANIZER"
	RoleHiwi        UserRole = "HIWI"
	RoleParticipant UserRole = "PARTICIPANT"
)

type User struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	Name                string     `gorm:"size:255;not null" json:"name"`
	Email               string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash        string     `gorm:"size:255;not null" json:"-"`
	Role                UserRole   `gorm:"size:20;not null;default:'PARTICIPANT'" json:"role"`
	QrID                *string    `gorm:"size:36;uniqueIndex" json:"qr_id,omitempty"`
	RegistrationID      *uint      `json:"registration_id,omitempty"`
	ResetTokenHash      *string    `gorm:"size:64" json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
}

func (u *User) IsParticipant() bool {
	return u.Role == RoleParticipant
}
