// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package database provides the storage layer for the governance core.
// Ledger tables and scalar state live in a sqlite metadata store via
// gorm, and the append-only event journal lives in a badger blob store.
// The two are coordinated through a single Txn wrapper so that each
// external call either fully commits or leaves no trace.
package database

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/blinklabs-io/agora/database/models"
	badger "github.com/dgraph-io/badger/v4"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/opentelemetry/tracing"
)

// Config describes the database configuration
type Config struct {
	Logger  *slog.Logger
	DataDir string
}

// Database combines the sqlite metadata store and the badger blob store
type Database struct {
	logger   *slog.Logger
	metadata *gorm.DB
	blob     *badger.DB
	dataDir  string
}

// Metadata returns the underlying gorm handle for the metadata store
func (d *Database) Metadata() *gorm.DB {
	return d.metadata
}

// Blob returns the underlying badger handle for the blob store
func (d *Database) Blob() *badger.DB {
	return d.blob
}

// DataDir returns the path to the data directory used for storage
func (d *Database) DataDir() string {
	return d.dataDir
}

// Logger returns the logger instance
func (d *Database) Logger() *slog.Logger {
	return d.logger
}

// Transaction starts a new database transaction and returns a handle to it
func (d *Database) Transaction(readWrite bool) *Txn {
	return NewTxn(d, readWrite)
}

// Close cleans up the database connections
func (d *Database) Close() error {
	var err error
	if d.metadata != nil {
		if sqlDb, sqlErr := d.metadata.DB(); sqlErr == nil {
			err = errors.Join(err, sqlDb.Close())
		}
	}
	if d.blob != nil {
		err = errors.Join(err, d.blob.Close())
	}
	return err
}

func (d *Database) init() error {
	if d.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		d.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	// Configure tracing for GORM
	if err := d.metadata.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return err
	}
	// Create table schemas
	for _, model := range models.MigrateModels {
		d.logger.Debug(
			fmt.Sprintf("creating table: %#v", model),
			"component", "database",
		)
		if err := d.metadata.AutoMigrate(model); err != nil {
			return err
		}
	}
	// Seed the singleton state rows
	if err := d.seedStateRows(); err != nil {
		return err
	}
	return nil
}

// seedStateRows inserts the singleton scalar-state rows if missing
func (d *Database) seedStateRows() error {
	seeds := []any{
		&models.GovernanceState{ID: models.StateRowID},
		&models.TreasuryState{ID: models.StateRowID},
		&models.TokenState{ID: models.StateRowID},
	}
	for _, seed := range seeds {
		result := d.metadata.FirstOrCreate(seed)
		if result.Error != nil {
			return fmt.Errorf("seed state row: %w", result.Error)
		}
	}
	return nil
}

// New creates a new database instance with optional persistence using
// the provided data directory. An empty data dir selects an in-memory
// sqlite store and an in-memory badger store, useful for testing.
func New(cfg *Config) (*Database, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	var metadataDb *gorm.DB
	var blobDb *badger.DB
	var err error
	if cfg.DataDir == "" {
		metadataDb, err = gorm.Open(
			sqlite.Open("file::memory:?cache=shared"),
			&gorm.Config{
				Logger:                 gormlogger.Discard,
				SkipDefaultTransaction: true,
			},
		)
		if err != nil {
			return nil, err
		}
		blobDb, err = badger.Open(
			badger.DefaultOptions("").
				WithInMemory(true).
				WithLogger(nil),
		)
		if err != nil {
			return nil, err
		}
	} else {
		// Make sure that we can read data dir, and create if it doesn't exist
		if _, err := os.Stat(cfg.DataDir); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read data dir: %w", err)
			}
			if err := os.MkdirAll(cfg.DataDir, fs.ModePerm); err != nil {
				return nil, fmt.Errorf("failed to create data dir: %w", err)
			}
		}
		metadataDbPath := filepath.Join(cfg.DataDir, "metadata.sqlite")
		// WAL journal mode, disable sync on write
		metadataConnOpts := "_pragma=journal_mode(WAL)&_pragma=sync(OFF)"
		metadataDb, err = gorm.Open(
			sqlite.Open(
				fmt.Sprintf("file:%s?%s", metadataDbPath, metadataConnOpts),
			),
			&gorm.Config{
				Logger:                 gormlogger.Discard,
				SkipDefaultTransaction: true,
			},
		)
		if err != nil {
			return nil, err
		}
		blobDb, err = badger.Open(
			badger.DefaultOptions(filepath.Join(cfg.DataDir, "journal")).
				WithLogger(nil),
		)
		if err != nil {
			return nil, err
		}
	}
	db := &Database{
		logger:   cfg.Logger,
		metadata: metadataDb,
		blob:     blobDb,
		dataDir:  cfg.DataDir,
	}
	if err := db.init(); err != nil {
		// Database is available for recovery, so return it with error
		return db, err
	}
	return db, nil
}
