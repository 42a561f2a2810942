package models

import "time"

// HiWi is the staff-assistant record attached to a user with RoleHiwi.
type HiWi struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	ClothingSize *string   `gorm:"size:20" json:"clothing_size,omitempty"`
	CreatedAt    time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
}

type HiWiSessionStatus string

const (
	HiwiAvailable   HiWiSessionStatus = "AVAILABLE"
	HiwiMaybe       HiWiSessionStatus = "MAYBE"
	HiwiUnavailable HiWiSessionStatus = "UNAVAILABLE"
)

// HiWiSession assigns a staff-assistant to a session; the hiwi keeps their
// own availability status up to date.
type HiWiSession struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	HiwiID    uint              `gorm:"not null;uniqueIndex:idx_hiwi_session" json:"hiwi_id"`
	SessionID uint              `gorm:"not null;uniqueIndex:idx_hiwi_session" json:"session_id"`
	Status    HiWiSessionStatus `gorm:"size:20;not null;default:'MAYBE'" json:"status"`
	CreatedAt time.Time         `json:"created_at"`

	Hiwi    HiWi    `gorm:"foreignKey:HiwiID;constraint:OnDelete:CASCADE" json:"hiwi,omitempty"`
	Session Session `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"session,omitempty"`
}
