// Package storage holds the service's bookkeeping store. It is only
// consulted by the health endpoint; recognition history is never
// persisted.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const DefaultDBFile = "tunespotter.sqlite3"

const errStoreNil = "store is nil"

// Heartbeat records the last successful connectivity check.
type Heartbeat struct {
	ID        uint `gorm:"primaryKey"`
	CheckedAt time.Time
}

type Store struct {
	DB *gorm.DB
	db *sql.DB
}

// Open creates (or opens) the sqlite store and migrates its schema.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		dbPath = DefaultDBFile
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !os.IsExist(err) {
		if filepath.Dir(dbPath) != "." {
			return nil, fmt.Errorf("creating db dir: %w", err)
		}
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(dbPath), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB from gorm: %w", err)
	}

	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&Heartbeat{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return &Store{DB: db, db: sqlDB}, nil
}

// Ping verifies connectivity and stamps the heartbeat row.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errors.New(errStoreNil)
	}
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging store: %w", err)
	}
	hb := Heartbeat{ID: 1, CheckedAt: time.Now().UTC()}
	if err := s.DB.WithContext(ctx).Save(&hb).Error; err != nil {
		return fmt.Errorf("stamping heartbeat: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
