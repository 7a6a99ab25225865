package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	connectAttempts = 5
	connectBaseWait = time.Second
)

func getLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second, // Slow SQL threshold
			LogLevel:                  logger.Info, // Log level
			IgnoreRecordNotFoundError: true,        // Ignore ErrRecordNotFound error for logger
			ParameterizedQueries:      true,        // Don't include params in the SQL log
			Colorful:                  true,
		},
	)
}

func configureConnectionPool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	// SetMaxIdleConns sets the maximum number of connections in the idle connection pool.
	sqlDB.SetMaxIdleConns(10)

	// SetMaxOpenConns sets the maximum number of open connections to the database.
	sqlDB.SetMaxOpenConns(100)

	// SetConnMaxLifetime sets the maximum amount of time a connection may be reused.
	sqlDB.SetConnMaxLifetime(time.Hour)

	return nil
}

// NewGormDBFromDSN opens a Postgres connection, retrying with exponential
// backoff while the database comes up. Startup fails after the last attempt.
func NewGormDBFromDSN(dsn string) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	wait := connectBaseWait
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: getLogger(),
		})
		if err == nil {
			break
		}

		if attempt == connectAttempts {
			return nil, fmt.Errorf("connect to database after %d attempts: %w", connectAttempts, err)
		}

		log.Printf("Warn: database not ready (attempt %d/%d): %v", attempt, connectAttempts, err)
		time.Sleep(wait)
		wait *= 2
	}

	if err := configureConnectionPool(db); err != nil {
		return nil, err
	}

	return db, nil
}
