package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/smp-team-2025/smp-backend/internal/mail"
	"github.com/smp-team-2025/smp-backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory sqlite database. TranslateError is on
// so unique-constraint violations surface as gorm.ErrDuplicatedKey, exactly
// as with the postgres driver in production.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps every session on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Registration{},
		&models.Event{},
		&models.Session{},
		&models.HiWi{},
		&models.HiWiSession{},
		&models.Attendance{},
		&models.ZoomUnmatchedParticipant{},
		&models.FermiQuestion{},
		&models.FermiQuiz{},
		&models.FermiQuizQuestion{},
		&models.FermiResponse{},
		&models.FermiAnswer{},
		&models.Diploma{},
		&models.StaffAnnouncement{},
		&models.AnnouncementAttachment{},
		&models.AnnouncementComment{},
	))
	return db
}

func seedEvent(t *testing.T, db *gorm.DB, title string, active bool) *models.Event {
	t.Helper()
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	event := &models.Event{Title: title, IsActive: active, StartDate: &start}
	require.NoError(t, db.Create(event).Error)
	return event
}

func seedSession(t *testing.T, db *gorm.DB, eventID uint, title string) *models.Session {
	t.Helper()
	session := &models.Session{
		EventID:  eventID,
		Title:    title,
		StartsAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(session).Error)
	return session
}

func seedParticipant(t *testing.T, db *gorm.DB, name, email, qrID string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: "x",
		Role:         models.RoleParticipant,
	}
	if qrID != "" {
		user.QrID = &qrID
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedHiwi(t *testing.T, db *gorm.DB, name, email string) (*models.User, *models.HiWi) {
	t.Helper()
	user := &models.User{Name: name, Email: email, PasswordHash: "x", Role: models.RoleHiwi}
	require.NoError(t, db.Create(user).Error)
	hiwi := &models.HiWi{UserID: user.ID}
	require.NoError(t, db.Create(hiwi).Error)
	return user, hiwi
}

// fakeSender records outgoing mail instead of sending it.
type fakeSender struct {
	sent []mail.Message
}

func (f *fakeSender) Send(msg mail.Message) {
	f.sent = append(f.sent, msg)
}
