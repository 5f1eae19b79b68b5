// Package cache stores compiled script trees in a local SQLite
// database, keyed by source path and content hash. Loaders check the
// cache before re-parsing script text; a hit hands back the decoded
// tree, a stale hash falls through to recompilation.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/emberworks/scribe/codec"
	"github.com/emberworks/scribe/script"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS objects (
	id         TEXT PRIMARY KEY,
	path       TEXT NOT NULL UNIQUE,
	hash       TEXT NOT NULL,
	data       BLOB NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_objects_created_at ON objects(created_at);
`

// Store is a compiled-object cache backed by a SQLite file.
type Store struct {
	db   *sql.DB
	opts codec.EncodeOptions
}

// Stats summarizes cache contents.
type Stats struct {
	Entries    int64
	TotalBytes int64
}

// Open opens (creating if needed) a cache database at path. Pass
// ":memory:" for an ephemeral cache.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	// Single writer; the engine loads assets from one thread.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: pragma: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: init schema: %w", err)
	}
	return &Store{db: db, opts: codec.EncodeOptions{Compress: true, Checksum: true}}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores a compiled tree for the given source path and content
// hash, replacing any previous entry for the path.
func (s *Store) Put(ctx context.Context, path, hash string, tree *script.Tree) error {
	data, err := codec.Encode(tree, s.opts)
	if err != nil {
		return fmt.Errorf("cache: encode %s: %w", path, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO objects (id, path, hash, data, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			hash = excluded.hash,
			data = excluded.data,
			created_at = excluded.created_at`,
		uuid.NewString(), path, hash, data, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("cache: put %s: %w", path, err)
	}
	return nil
}

// Get returns the cached tree for the path when the stored hash still
// matches, decoding and integrity-checking the stored bytes. The
// second return is false on miss or stale hash.
func (s *Store) Get(ctx context.Context, path, hash string) (*script.Tree, bool, error) {
	var data []byte
	var storedHash string
	err := s.db.QueryRowContext(ctx,
		`SELECT hash, data FROM objects WHERE path = ?`, path).Scan(&storedHash, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: get %s: %w", path, err)
	}
	if storedHash != hash {
		return nil, false, nil
	}
	tree, err := codec.Decode(data)
	if err != nil {
		// A corrupt entry is a miss, not a failure; the caller will
		// recompile and overwrite it.
		return nil, false, nil
	}
	return tree, true, nil
}

// Delete removes the entry for a source path.
func (s *Store) Delete(ctx context.Context, path string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM objects WHERE path = ?`, path); err != nil {
		return fmt.Errorf("cache: delete %s: %w", path, err)
	}
	return nil
}

// Prune removes entries created before the cutoff and reports how many
// were removed.
func (s *Store) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM objects WHERE created_at < ?`, olderThan.Unix())
	if err != nil {
		return 0, fmt.Errorf("cache: prune: %w", err)
	}
	return res.RowsAffected()
}

// Stats reports entry count and total stored bytes.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(LENGTH(data)), 0) FROM objects`).
		Scan(&st.Entries, &st.TotalBytes)
	if err != nil {
		return Stats{}, fmt.Errorf("cache: stats: %w", err)
	}
	return st, nil
}
