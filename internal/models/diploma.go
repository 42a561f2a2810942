package models

import "time"

// Diploma is issued once per (participant, event). Certificate numbers are
// globally unique and never reused, even after a revocation.
type Diploma struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ParticipantID     uint      `gorm:"not null;uniqueIndex:idx_diploma_pair" json:"participant_id"`
	EventID           uint      `gorm:"not null;uniqueIndex:idx_diploma_pair" json:"event_id"`
	CertificateNumber string    `gorm:"size:30;not null;uniqueIndex" json:"certificate_number"`
	IssuedAt          time.Time `gorm:"not null" json:"issued_at"`

	Participant User  `gorm:"foreignKey:ParticipantID" json:"participant,omitempty"`
	Event       Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}
