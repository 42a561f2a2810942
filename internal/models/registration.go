package models

import "time"

type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "PENDING"
	RegistrationApproved RegistrationStatus = "APPROVED"
	RegistrationRejected RegistrationStatus = "REJECTED"
)

type Registration struct {
	ID           uint               `gorm:"primaryKey" json:"id"`
	EventID      uint               `gorm:"not null;index" json:"event_id"`
	Salutation   string             `gorm:"size:50" json:"salutation"`
	FirstName    string             `gorm:"size:100;not null" json:"first_name"`
	LastName     string             `gorm:"size:100;not null" json:"last_name"`
	Email        string             `gorm:"size:255;not null" json:"email"`
	Street       string             `gorm:"size:255" json:"street"`
	AddressExtra *string            `gorm:"size:255" json:"address_extra,omitempty"`
	ZipCode      string             `gorm:"size:20" json:"zip_code"`
	City         string             `gorm:"size:100" json:"city"`
	School       string             `gorm:"size:255" json:"school"`
	Grade        string             `gorm:"size:50" json:"grade"`
	Motivation   *string            `gorm:"type:text" json:"motivation,omitempty"`
	Comments     *string            `gorm:"type:text" json:"comments,omitempty"`
	Status       RegistrationStatus `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
}
