package pkg

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ielts-prep/admin-service/internal/config"
	"github.com/ielts-prep/admin-service/internal/models"
)

// InitDatabase opens the postgres connection and migrates the schema.
func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormLogLevel := logger.Warn
	if cfg.Environment == "development" {
		gormLogLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:         logger.Default.LogMode(gormLogLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&models.SpeakingTest{}, &models.SpeakingQuestion{},
		&models.ReadingTest{}, &models.ReadingPassage{}, &models.ReadingQuestionPack{},
		&models.WritingTest{}, &models.WritingTask{},
		&models.ListeningTest{}, &models.ListeningSection{}, &models.ListeningQuestionPack{},
		&models.User{},
		&models.SpeakingSubmission{}, &models.ReadingSubmission{},
		&models.WritingSubmission{}, &models.ListeningSubmission{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}
