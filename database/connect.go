// Package database owns the durable stores: the gorm-backed enrollment and
// admin tables, and the read-only student roster.
package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/D13garg/ucs503p-202526odd-alpha/models"
)

// DB bundles both database handles. The roster handle is optional; a kiosk
// without a roster file still runs.
type DB struct {
	gorm   *gorm.DB
	mu     sync.Mutex
	roster *sql.DB
	rmu    sync.Mutex
	log    *slog.Logger
}

// Open connects the embedding/admin store and, when rosterPath is non-empty,
// the roster. A roster that fails to open is logged and skipped rather than
// failing the kiosk.
func Open(storePath, rosterPath string) (*DB, error) {
	log := slog.Default().With("component", "database")

	gdb, err := gorm.Open(sqlite.Open(storePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", storePath, err)
	}
	if err := gdb.AutoMigrate(&models.FaceEmbedding{}, &models.AdminUser{}); err != nil {
		return nil, fmt.Errorf("migrating store: %w", err)
	}

	db := &DB{gorm: gdb, log: log}

	if rosterPath != "" {
		roster, err := sql.Open("sqlite3", rosterPath)
		if err != nil {
			log.Warn("roster unavailable", "path", rosterPath, "error", err)
		} else {
			db.roster = roster
		}
	}
	return db, nil
}

// Close releases the roster handle. The gorm sqlite handle has no explicit
// close path worth failing over.
func (d *DB) Close() {
	if d.roster != nil {
		if err := d.roster.Close(); err != nil {
			d.log.Warn("closing roster", "error", err)
		}
	}
}
