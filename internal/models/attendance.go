package models

import "time"

type AttendanceSource string

const (
	AttendanceSourceScan   AttendanceSource = "SCAN"
	AttendanceSourceManual AttendanceSource = "MANUAL"
	AttendanceSourceOnline AttendanceSource = "ONLINE"
)

// Attendance is one fact per (participant, session) pair. The composite
// unique index is the real duplicate guard; services translate its violation
// into a domain error instead of trusting a pre-check.
type Attendance struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	ParticipantID   uint             `gorm:"not null;uniqueIndex:idx_attendance_pair" json:"participant_id"`
	SessionID       uint             `gorm:"not null;uniqueIndex:idx_attendance_pair" json:"session_id"`
	Source          AttendanceSource `gorm:"size:10;not null;default:'SCAN'" json:"source"`
	ScannedByHiwiID *uint            `json:"scanned_by_hiwi_id,omitempty"`
	ScannedAt       time.Time        `gorm:"not null" json:"scanned_at"`

	// Metadata carried over from an online (Zoom CSV) import. Raw strings;
	// the export format is not stable enough to parse into timestamps.
	OnlineJoinTime    *string `gorm:"size:100" json:"online_join_time,omitempty"`
	OnlineLeaveTime   *string `gorm:"size:100" json:"online_leave_time,omitempty"`
	OnlineDurationMin *int    `json:"online_duration_min,omitempty"`

	Participant   User    `gorm:"foreignKey:ParticipantID" json:"participant,omitempty"`
	Session       Session `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"session,omitempty"`
	ScannedByHiwi *HiWi   `gorm:"foreignKey:ScannedByHiwiID" json:"scanned_by_hiwi,omitempty"`
}

// ZoomUnmatchedParticipant holds a CSV row the reconciliation could not map
// to a known participant. Kept for manual review only.
type ZoomUnmatchedParticipant struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	SessionID      uint      `gorm:"not null;uniqueIndex:idx_zoom_unmatched" json:"session_id"`
	NormalizedName string    `gorm:"size:255;not null;uniqueIndex:idx_zoom_unmatched" json:"-"`
	DisplayName    string    `gorm:"size:255;not null" json:"display_name"`
	Email          *string   `gorm:"size:255" json:"email,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
