package database

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/smp-team-2025/smp-backend/internal/config"
	"github.com/smp-team-2025/smp-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	// TranslateError lets services catch unique-constraint violations as
	// gorm.ErrDuplicatedKey instead of driver-specific errors. The unique
	// indexes are the real duplicate guards; pre-checks alone would race.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		slog.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}

	slog.Info("database connected", "host", cfg.DBHost, "db", cfg.DBName)
	return db
}

func AutoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
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
	)
	if err != nil {
		slog.Error("failed to auto-migrate", "err", err)
		os.Exit(1)
	}
	slog.Info("database migrated")
}
