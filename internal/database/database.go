package database

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/okfde/froide-campaign-service/internal/models"
)

// searchVectorDDL keeps the full text vector of a target in sync with its text columns
const searchVectorDDL = `
ALTER TABLE information_objects
ADD COLUMN IF NOT EXISTS search_vector tsvector
GENERATED ALWAYS AS (
	to_tsvector('simple', coalesce(title, '') || ' ' || coalesce(ident, '') || ' ' || coalesce(search_text, ''))
) STORED`

const searchVectorIndexDDL = `
CREATE INDEX IF NOT EXISTS idx_iobj_search_vector ON information_objects USING GIN (search_vector)`

// InitDB initializes the database connection and performs migrations
func InitDB() (*gorm.DB, error) {
	// Get database connection parameters from environment variables
	host := getEnv("DB_HOST", "")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "")
	password := getEnv("DB_PASSWORD", "")
	dbname := getEnv("DB_NAME", "")
	sslmode := getEnv("DB_SSLMODE", "disable")

	// Validate required environment variables
	if host == "" || user == "" || dbname == "" {
		return nil, fmt.Errorf("missing required database environment variables. Please check your .env file")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode)

	// Configure GORM logger
	gormLogger := logger.New(
		logrus.StandardLogger(),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Error,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                                   gormLogger,
		DisableForeignKeyConstraintWhenMigrating: true, // platform tables are owned elsewhere
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database connection: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if getEnv("DB_AUTO_MIGRATE", "true") == "true" {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// Migrate creates or updates the tables owned by this service
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Campaign{},
		&models.InformationObject{},
		&models.InformationObjectFoiRequest{},
		&models.Questionaire{},
		&models.Question{},
		&models.Report{},
		&models.CampaignPage{},
		&models.CampaignSubscription{},
		&models.CampaignPlugin{},
		&models.CampaignRequestsPlugin{},
		&models.CampaignQuestionairePlugin{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Platform tables are only created when missing, e.g. in development
	if getEnv("DB_MIGRATE_PLATFORM", "false") == "true" {
		if err := db.AutoMigrate(&models.PublicBody{}, &models.FoiRequest{}, &models.RequestCampaign{}); err != nil {
			return fmt.Errorf("failed to migrate platform tables: %w", err)
		}
	}

	if err := db.Exec(searchVectorDDL).Error; err != nil {
		return fmt.Errorf("failed to add search vector: %w", err)
	}
	if err := db.Exec(searchVectorIndexDDL).Error; err != nil {
		return fmt.Errorf("failed to index search vector: %w", err)
	}

	logrus.Info("Database migration completed")
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
