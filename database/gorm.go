package database

import (
	"fmt"
	"log"
	"time"

	"github.com/sahilchouksey/actividades-api/config"
	"github.com/sahilchouksey/actividades-api/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage defines the interface that all database implementations must satisfy
type Storage interface {
	// Lifecycle methods
	Init() error
	Close() error
	HealthCheck() error

	// GORM DB access for repositories/handlers
	GetDB() *gorm.DB
}

type GORMStore struct {
	db *gorm.DB
}

// StartGORM opens the database selected by DB_DRIVER
func StartGORM() (*GORMStore, error) {
	getEnv, err := config.Get()
	if err != nil {
		return nil, err
	}

	if getEnv.DB_DRIVER == "sqlite" {
		return StartSQLite(getEnv.SQLITE_PATH, getEnv.GO_ENV)
	}

	// Build DSN (Data Source Name)
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		getEnv.DB_HOST,
		getEnv.DB_USER_NAME,
		getEnv.DB_PASSWORD,
		getEnv.DB_NAME,
		getEnv.DB_PORT,
		getEnv.DB_SSL_MODE,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                 gormLogger(getEnv.GO_ENV),
		SkipDefaultTransaction: false,
		PrepareStmt:            true,
		TranslateError:         true,
	})
	if err != nil {
		log.Println("Unable to connect to PostgreSQL with GORM:", err)
		return nil, err
	}

	// Get underlying *sql.DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Successfully connected to PostgreSQL Database with GORM.")

	return &GORMStore{db: db}, nil
}

// StartSQLite opens a SQLite database at path. ":memory:" is accepted for tests.
// Foreign keys are always switched on so cascades hold.
func StartSQLite(path string, goEnv string) (*GORMStore, error) {
	dsn := path + "?_foreign_keys=1"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormLogger(goEnv),
		TranslateError: true,
	})
	if err != nil {
		log.Println("Unable to open SQLite database with GORM:", err)
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// SQLite has a single writer; one connection also keeps ":memory:" databases alive
	sqlDB.SetMaxOpenConns(1)

	return &GORMStore{db: db}, nil
}

func gormLogger(goEnv string) logger.Interface {
	switch goEnv {
	case "production":
		return logger.Default.LogMode(logger.Error)
	case "test":
		return logger.Default.LogMode(logger.Silent)
	default:
		return logger.Default.LogMode(logger.Info)
	}
}

// Init runs the AutoMigrate to create/update tables
func (s *GORMStore) Init() error {
	log.Println("Running GORM AutoMigrate for all models...")

	err := s.db.AutoMigrate(
		// Core entities
		&model.Activity{},
		&model.Category{},
		&model.Student{},

		// Join tables
		&model.ActivityCategory{},
		&model.EnrollmentRequest{},

		// Products & books
		&model.Product{},
		&model.Book{},

		// Audit trail & background jobs
		&model.AuditLog{},
		&model.CronJobLog{},
	)

	if err != nil {
		log.Println("Error running AutoMigrate:", err)
		return err
	}

	log.Println("GORM AutoMigrate completed successfully!")
	return nil
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	log.Println("Closing GORM database connection...")
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the GORM DB instance for use in repositories/handlers
func (s *GORMStore) GetDB() *gorm.DB {
	return s.db
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
