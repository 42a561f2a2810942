package models

import "time"

type AnnouncementVisibility string

const (
	VisibilityPublic   AnnouncementVisibility = "PUBLIC"
	VisibilityHiwiOrga AnnouncementVisibility = "HIWI_ORGA"
)

type StaffAnnouncement struct {
	ID         uint                   `gorm:"primaryKey" json:"id"`
	Title      *string                `gorm:"size:255" json:"title,omitempty"`
	Body       string                 `gorm:"type:text;not null" json:"body"`
	EventID    *uint                  `gorm:"index" json:"event_id,omitempty"`
	SessionID  *uint                  `gorm:"index" json:"session_id,omitempty"`
	AuthorID   uint                   `gorm:"not null" json:"author_id"`
	Visibility AnnouncementVisibility `gorm:"size:20;not null;default:'HIWI_ORGA'" json:"visibility"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`

	Author      User                     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Attachments []AnnouncementAttachment `gorm:"foreignKey:AnnouncementID;constraint:OnDelete:CASCADE" json:"attachments,omitempty"`
	Comments    []AnnouncementComment    `gorm:"foreignKey:AnnouncementID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
}

type AnnouncementAttachment struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	AnnouncementID uint      `gorm:"not null;index" json:"announcement_id"`
	URL            string    `gorm:"size:512;not null" json:"url"`
	MimeType       string    `gorm:"size:100" json:"mime_type"`
	CreatedAt      time.Time `json:"created_at"`
}

type AnnouncementComment struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	AnnouncementID uint      `gorm:"not null;index" json:"announcement_id"`
	AuthorID       uint      `gorm:"not null" json:"author_id"`
	Body           string    `gorm:"type:text;not null" json:"body"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Author User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}
