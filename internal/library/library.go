// Package library records completed downloads in a local SQLite database.
package library

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Download is one saved or opened image.
type Download struct {
	ID        int64
	ImageID   int64
	Path      string
	SourceURL string
	Mode      string
	CreatedAt time.Time
}

// Library wraps the SQLite connection. A nil *Library is valid and records
// nothing.
type Library struct {
	conn *sql.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Library, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create library dir: %w", err)
		}
	}
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open library: %w", err)
	}
	if _, err := conn.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}
	lib := &Library{conn: conn}
	if err := lib.migrate(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return lib, nil
}

// Close closes the database connection.
func (l *Library) Close() error {
	if l == nil || l.conn == nil {
		return nil
	}
	return l.conn.Close()
}

func (l *Library) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS downloads (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		image_id INTEGER NOT NULL,
		path TEXT NOT NULL DEFAULT '',
		source_url TEXT NOT NULL,
		mode TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_downloads_image ON downloads(image_id);
	`
	_, err := l.conn.Exec(schema)
	return err
}

// Record stores d and returns its row id. CreatedAt defaults to now.
func (l *Library) Record(ctx context.Context, d Download) (int64, error) {
	if l == nil || l.conn == nil {
		return 0, nil
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	res, err := l.conn.ExecContext(ctx,
		"INSERT INTO downloads (image_id, path, source_url, mode, created_at) VALUES (?, ?, ?, ?, ?)",
		d.ImageID, d.Path, d.SourceURL, d.Mode, d.CreatedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("record download: %w", err)
	}
	return res.LastInsertId()
}

// Has reports whether imageID was downloaded before.
func (l *Library) Has(ctx context.Context, imageID int64) (bool, error) {
	if l == nil || l.conn == nil {
		return false, nil
	}
	var n int
	err := l.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM downloads WHERE image_id = ?", imageID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("lookup download: %w", err)
	}
	return n > 0, nil
}

// DownloadedIDs returns the set of image ids with at least one download.
func (l *Library) DownloadedIDs(ctx context.Context) (map[int64]bool, error) {
	ids := make(map[int64]bool)
	if l == nil || l.conn == nil {
		return ids, nil
	}
	rows, err := l.conn.QueryContext(ctx, "SELECT DISTINCT image_id FROM downloads")
	if err != nil {
		return nil, fmt.Errorf("list downloads: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// Recent returns the latest downloads, newest first.
func (l *Library) Recent(ctx context.Context, limit int) ([]Download, error) {
	if l == nil || l.conn == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := l.conn.QueryContext(ctx,
		"SELECT id, image_id, path, source_url, mode, created_at FROM downloads ORDER BY created_at DESC, id DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, fmt.Errorf("list downloads: %w", err)
	}
	defer rows.Close()
	var out []Download
	for rows.Next() {
		var d Download
		if err := rows.Scan(&d.ID, &d.ImageID, &d.Path, &d.SourceURL, &d.Mode, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
