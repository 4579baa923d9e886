package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS albums (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS subfolders (
		id         TEXT PRIMARY KEY,
		album_id   TEXT NOT NULL REFERENCES albums(id),
		name       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		UNIQUE (album_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS images (
		id            TEXT PRIMARY KEY,
		album_id      TEXT NOT NULL REFERENCES albums(id),
		subfolder_id  TEXT NOT NULL REFERENCES subfolders(id),
		filename      TEXT NOT NULL,
		original_ext  TEXT NOT NULL,
		original_path TEXT NOT NULL,
		thumb_path    TEXT NOT NULL,
		preview_path  TEXT NOT NULL DEFAULT '',
		width         INTEGER NOT NULL,
		height        INTEGER NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_images_album_created ON images (album_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_images_album_subfolder_created ON images (album_id, subfolder_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS shares (
		id            TEXT PRIMARY KEY,
		album_id      TEXT NOT NULL REFERENCES albums(id),
		subfolder_id  TEXT REFERENCES subfolders(id),
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL,
		expires_at    TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS idx_shares_expires_at ON shares (expires_at)`,
}

// Migrate creates the schema if it does not exist yet. Every statement is
// idempotent, so it runs on each startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d: %w", i+1, err)
		}
	}
	return nil
}
