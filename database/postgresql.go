package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Maheshkadam-Delxn/eye/models"
)

// DB is the global database instance.
var DB *gorm.DB

// slotUniqueIndex is the storage-level guarantee behind the scheduling
// invariant: for a doctor and a date, at most one non-cancelled appointment
// may hold a given {start_time, end_time} pair. Concurrent writers that
// both pass the conflict check hit this index and one of them loses.
const slotUniqueIndex = `
CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_slot
ON appointments (doctor_id, appointment_date, start_time, end_time)
WHERE status <> 'cancelled'`

// InitDB initializes the database connection and configures it.
func InitDB(ctx context.Context, dsn string) (*gorm.DB, error) {
	var err error

	logMode := logger.Silent
	if os.Getenv("ENV") == "development" {
		logMode = logger.Info
	}

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		Logger:         logger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database connection")
	}

	if err := configureConnectionPool(); err != nil {
		return nil, err
	}

	if err := testDatabaseConnection(ctx); err != nil {
		return nil, err
	}

	if err := runMigrations(); err != nil {
		return nil, err
	}

	log.Println("Database initialized successfully.")
	return DB, nil
}

// configureConnectionPool sets up the connection pool settings for the database.
func configureConnectionPool() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB from GORM")
	}
	sqlDB.SetMaxOpenConns(40)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	return nil
}

// testDatabaseConnection verifies that the database connection is functional.
func testDatabaseConnection(ctx context.Context) error {
	sqlDB, err := DB.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get sql.DB from GORM")
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return errors.Wrap(err, "failed to ping database")
	}
	return nil
}

// runMigrations performs database schema migrations and installs the
// partial unique index AutoMigrate cannot express.
func runMigrations() error {
	if err := DB.AutoMigrate(
		&models.User{},
		&models.Patient{},
		&models.Appointment{},
	); err != nil {
		return errors.Wrap(err, "failed to run migrations")
	}
	if err := DB.Exec(slotUniqueIndex).Error; err != nil {
		return errors.Wrap(err, "failed to create slot unique index")
	}
	return nil
}
