package database

import (
	"log"
	"os"
	"time"

	"myswamvar/backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// gormConfig builds the shared gorm configuration. TranslateError must stay
// on: the repositories match on gorm.ErrDuplicatedKey, and without it the
// postgres driver surfaces raw pgconn errors that never hit those branches.
func gormConfig() *gorm.Config {
	customLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             200 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,            // Log level
			IgnoreRecordNotFoundError: true,                   // Ignore ErrRecordNotFound error for logger
			Colorful:                  true,                   // Enable color
		},
	)
	return &gorm.Config{
		Logger:         customLogger,
		TranslateError: true,
	}
}

// Connect initializes the database connection and runs migrations.
func Connect(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established.")

	// Run migrations
	err = db.AutoMigrate(&models.User{}, &models.Interest{}, &models.Conversation{}, &models.Message{})
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Database migrated successfully.")
	return db
}
