// Package store keeps the clock's non-volatile memory in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/nixie/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Size is the capacity of the simulated EEPROM in bytes.
const Size = 1024

// erased is the value of a cell that was never written.
const erased = 0xFF

// Store is a settings.Device backed by SQLite. Every write is also kept
// as a revision.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS eeprom (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			image BLOB NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS revisions (
			id TEXT PRIMARY KEY,
			written_at TEXT NOT NULL,
			byte_offset INTEGER NOT NULL,
			byte_length INTEGER NOT NULL,
			image BLOB NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_revisions_written_at ON revisions(written_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Image returns the whole device contents.
func (s *Store) Image(ctx context.Context) ([]byte, error) {
	return image(ctx, s.db)
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func image(ctx context.Context, q querier) ([]byte, error) {
	var stored []byte
	err := q.QueryRowContext(ctx, `SELECT image FROM eeprom WHERE id = 1`).Scan(&stored)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	img := make([]byte, Size)
	for i := range img {
		img[i] = erased
	}
	copy(img, stored)
	return img, nil
}

// ReadAt implements io.ReaderAt over the device image.
func (s *Store) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off+int64(len(p)) > Size {
		return 0, io.EOF
	}
	img, err := s.Image(context.Background())
	if err != nil {
		return 0, fmt.Errorf("store: read image: %w", err)
	}
	return copy(p, img[off:]), nil
}

// WriteAt implements io.WriterAt over the device image.
func (s *Store) WriteAt(p []byte, off int64) (int, error) {
	if err := s.Write(context.Background(), p, off); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Write patches the image at off and records the revision.
func (s *Store) Write(ctx context.Context, p []byte, off int64) (err error) {
	if off < 0 || off+int64(len(p)) > Size {
		return io.ErrShortWrite
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	img, err := image(ctx, tx)
	if err != nil {
		return fmt.Errorf("store: read image: %w", err)
	}
	copy(img[off:], p)
	at := s.now().UTC().Format(time.RFC3339Nano)

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO eeprom (id, image, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET image = excluded.image, updated_at = excluded.updated_at`,
		img, at,
	); err != nil {
		return fmt.Errorf("store: write image: %w", err)
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO revisions (id, written_at, byte_offset, byte_length, image) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), at, off, len(p), img,
	); err != nil {
		return fmt.Errorf("store: record revision: %w", err)
	}
	return tx.Commit()
}

// History lists revisions oldest first. A positive filter.Last keeps only
// the most recent ones.
func (s *Store) History(ctx context.Context, filter model.HistoryFilter) ([]model.Revision, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Since != nil {
		clauses = append(clauses, "written_at >= ?")
		args = append(args, filter.Since.UTC().Format(time.RFC3339Nano))
	}
	limit := ""
	if filter.Last > 0 {
		limit = "LIMIT ?"
		args = append(args, filter.Last)
	}
	query := fmt.Sprintf(`SELECT id, written_at, byte_offset, byte_length, image FROM (
		SELECT rowid AS seq, id, written_at, byte_offset, byte_length, image
		FROM revisions
		WHERE %s
		ORDER BY written_at DESC, seq DESC
		%s
	) ORDER BY written_at ASC, seq ASC`, strings.Join(clauses, " AND "), limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var revisions []model.Revision
	for rows.Next() {
		var rev model.Revision
		var writtenAt string
		if err := rows.Scan(&rev.ID, &writtenAt, &rev.Offset, &rev.Length, &rev.Image); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, writtenAt)
		if err != nil {
			return nil, err
		}
		rev.WrittenAt = parsed
		revisions = append(revisions, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return revisions, nil
}
