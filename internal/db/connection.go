package db

import (
	"fmt"
	"time"

	"github.com/folioapp/folio/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB wraps the gorm connection to the embedded SQLite store.
type DB struct {
	*gorm.DB
}

// Connect opens (creating if needed) the SQLite database at path and runs
// the schema migration. SQLite allows one writer, so the pool is capped at a
// single connection.
func Connect(path string) (*DB, error) {
	gormDB, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	database := &DB{gormDB}
	if err := database.migrate(); err != nil {
		return nil, err
	}
	return database, nil
}

func (db *DB) migrate() error {
	err := db.AutoMigrate(
		&models.Instrument{},
		&models.Currency{},
		&models.AssetType{},
		&models.Trade{},
		&models.Deposit{},
		&models.ManualValue{},
		&models.Dividend{},
		&models.StakingEvent{},
		&models.PricePoint{},
		&models.FxPoint{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Health pings the database.
func (db *DB) Health() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
