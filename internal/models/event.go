package models

import "time"

type Event struct {
	ID                   uint       `gorm:"primaryKey" json:"id"`
	Title                string     `gorm:"size:255;not null" json:"title"`
	Description          *string    `gorm:"type:text" json:"description,omitempty"`
	StartDate            *time.Time `json:"start_date,omitempty"`
	EndDate              *time.Time `json:"end_date,omitempty"`
	IsActive             bool       `gorm:"not null;default:false;index" json:"is_active"`
	CertificateSeq       int        `gorm:"not null;default:0" json:"-"`
	RegistrationClosesAt *time.Time `json:"registration_closes_at,omitempty"`
	Sessions             []Session  `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"sessions,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}
