package models

import "time"

type Session struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	EventID     uint       `gorm:"not null;index" json:"event_id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	Location    *string    `gorm:"size:255" json:"location,omitempty"`
	StartsAt    time.Time  `gorm:"not null" json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`

	Event Event `gorm:"foreignKey:EventID" json:"-"`
}
