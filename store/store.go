// Package store keeps an append-only log of graph snapshots in SQLite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang/snappy"
	"go.uber.org/zap"

	"wordweb/diagram"

	_ "modernc.org/sqlite"
)

// schemaVersion is bumped whenever the tables change shape.
const schemaVersion = 1

// ErrNotFound is returned when no snapshot matches.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is one entry of the log. Graph is nil in listings.
type Snapshot struct {
	Seq         int64
	ID          string
	CreatedAt   time.Time
	Label       string
	Nodes       int
	Connections int
	Frames      int
	Graph       *diagram.Graph
}

// Store is the snapshot log. Payloads are JSON, snappy-compressed.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

// Open opens or creates the log at path. ":memory:" gives a private in-memory log.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps ":memory:" databases alive and serialises writers
	db.SetMaxOpenConns(1)

	s := &Store{db: db, logger: logger, now: time.Now}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT NOT NULL)`,
		`CREATE TABLE IF NOT EXISTS snapshots (
			seq         INTEGER PRIMARY KEY AUTOINCREMENT,
			id          TEXT NOT NULL UNIQUE,
			created_at  INTEGER NOT NULL,
			label       TEXT NOT NULL,
			nodes       INTEGER NOT NULL,
			connections INTEGER NOT NULL,
			frames      INTEGER NOT NULL,
			payload     BLOB NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	var version int
	err := s.db.QueryRowContext(ctx, `SELECT CAST(value AS INTEGER) FROM meta WHERE key = 'schema_version'`).Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = s.db.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES ('schema_version', ?)`, fmt.Sprint(schemaVersion))
		if err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("read schema version: %w", err)
	case version > schemaVersion:
		return fmt.Errorf("store schema version %d is newer than supported %d", version, schemaVersion)
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append stores g under label and returns the new entry.
func (s *Store) Append(ctx context.Context, label string, g *diagram.Graph) (Snapshot, error) {
	if g == nil {
		g = diagram.Empty()
	}
	data, err := json.Marshal(g)
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode snapshot: %w", err)
	}

	snap := Snapshot{
		ID:          diagram.NewID(),
		CreatedAt:   s.now().UTC(),
		Label:       label,
		Nodes:       len(g.Nodes),
		Connections: len(g.Connections),
		Frames:      len(g.Frames),
		Graph:       g,
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, created_at, label, nodes, connections, frames, payload) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.CreatedAt.UnixMilli(), snap.Label, snap.Nodes, snap.Connections, snap.Frames, snappy.Encode(nil, data),
	)
	if err != nil {
		return Snapshot{}, fmt.Errorf("insert snapshot: %w", err)
	}
	if snap.Seq, err = res.LastInsertId(); err != nil {
		return Snapshot{}, fmt.Errorf("insert snapshot: %w", err)
	}

	s.logger.Info("snapshot saved",
		zap.String("id", snap.ID),
		zap.String("label", label),
		zap.Int("nodes", snap.Nodes),
		zap.Int("bytes", len(data)),
	)
	return snap, nil
}

// List returns every entry in append order, without graphs.
func (s *Store) List(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, id, created_at, label, nodes, connections, frames FROM snapshots ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		var created int64
		if err := rows.Scan(&snap.Seq, &snap.ID, &created, &snap.Label, &snap.Nodes, &snap.Connections, &snap.Frames); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snap.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, snap)
	}
	return out, rows.Err()
}

// Load returns the entry with the given id, or with the given sequence number when id
// is all digits and no id matches.
func (s *Store) Load(ctx context.Context, id string) (Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT seq, id, created_at, label, nodes, connections, frames, payload FROM snapshots
		 WHERE id = ? OR CAST(seq AS TEXT) = ? ORDER BY id = ? DESC LIMIT 1`, id, id, id)
	return s.scanFull(row)
}

// Latest returns the newest entry.
func (s *Store) Latest(ctx context.Context) (Snapshot, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT seq, id, created_at, label, nodes, connections, frames, payload FROM snapshots
		 ORDER BY seq DESC LIMIT 1`)
	return s.scanFull(row)
}

func (s *Store) scanFull(row *sql.Row) (Snapshot, error) {
	var snap Snapshot
	var created int64
	var payload []byte
	err := row.Scan(&snap.Seq, &snap.ID, &created, &snap.Label, &snap.Nodes, &snap.Connections, &snap.Frames, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	snap.CreatedAt = time.UnixMilli(created).UTC()

	data, err := snappy.Decode(nil, payload)
	if err != nil {
		return Snapshot{}, fmt.Errorf("decompress snapshot %s: %w", snap.ID, err)
	}
	var g diagram.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot %s: %w", snap.ID, err)
	}
	snap.Graph = &g
	return snap, nil
}
