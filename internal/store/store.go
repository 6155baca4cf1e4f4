// SPDX-License-Identifier: EPL-2.0

// Package store keeps editing sessions in a SQLite file: one session per
// audio file, with its segments and markers in their on-screen order.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/ik5/audwave/segment"
)

var ErrUnknownSession = errors.New("unknown session")

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id          TEXT PRIMARY KEY,
	path        TEXT NOT NULL UNIQUE,
	duration_ms INTEGER NOT NULL,
	created_at  INTEGER NOT NULL,
	updated_at  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS segments (
	session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	position   INTEGER NOT NULL,
	start_ms   INTEGER NOT NULL,
	end_ms     INTEGER NOT NULL,
	PRIMARY KEY (session_id, position)
);
CREATE TABLE IF NOT EXISTS markers (
	session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	position   INTEGER NOT NULL,
	value      REAL NOT NULL,
	PRIMARY KEY (session_id, position)
);
CREATE INDEX IF NOT EXISTS idx_sessions_updated ON sessions(updated_at);
`

// Session is the stored state of one audio file.
type Session struct {
	ID         string
	Path       string
	DurationMs int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Store struct {
	db     *sql.DB
	logger *zap.Logger
	now    func() time.Time
}

type Option func(*Store)

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open opens or creates the database at path, creating its directory.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s := &Store{db: db, logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	s.logger.Debug("store opened", zap.String("path", path))

	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Session returns the session for path, creating it on first use. A changed
// duration is written back.
func (s *Store) Session(ctx context.Context, path string, durationMs int64) (Session, error) {
	sess, err := s.byPath(ctx, path)

	switch {
	case errors.Is(err, ErrUnknownSession):
		now := s.now()
		sess = Session{
			ID:         uuid.NewString(),
			Path:       path,
			DurationMs: durationMs,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		_, err = s.db.ExecContext(ctx,
			`INSERT INTO sessions (id, path, duration_ms, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
			sess.ID, sess.Path, sess.DurationMs, now.UnixMilli(), now.UnixMilli())
		if err != nil {
			return Session{}, fmt.Errorf("create session: %w", err)
		}

		s.logger.Info("session created", zap.String("id", sess.ID), zap.String("path", path))

		return sess, nil

	case err != nil:
		return Session{}, err
	}

	if sess.DurationMs != durationMs {
		sess.DurationMs = durationMs
		sess.UpdatedAt = s.now()

		_, err = s.db.ExecContext(ctx,
			`UPDATE sessions SET duration_ms = ?, updated_at = ? WHERE id = ?`,
			durationMs, sess.UpdatedAt.UnixMilli(), sess.ID)
		if err != nil {
			return Session{}, fmt.Errorf("update session: %w", err)
		}
	}

	return sess, nil
}

func (s *Store) byPath(ctx context.Context, path string) (Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, path, duration_ms, created_at, updated_at FROM sessions WHERE path = ?`, path)

	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("%w: %s", ErrUnknownSession, path)
	}
	if err != nil {
		return Session{}, fmt.Errorf("find session: %w", err)
	}

	return sess, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (Session, error) {
	var (
		sess             Session
		created, updated int64
	)
	if err := row.Scan(&sess.ID, &sess.Path, &sess.DurationMs, &created, &updated); err != nil {
		return Session{}, err
	}

	sess.CreatedAt = time.UnixMilli(created)
	sess.UpdatedAt = time.UnixMilli(updated)

	return sess, nil
}

// Sessions lists every session, most recently updated first.
func (s *Store) Sessions(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, path, duration_ms, created_at, updated_at FROM sessions ORDER BY updated_at DESC, path`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
		out = append(out, sess)
	}

	return out, rows.Err()
}

// DeleteSession removes a session with its segments and markers.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}

	return nil
}

// SaveSegments replaces the stored segments of a session.
func (s *Store) SaveSegments(ctx context.Context, id string, segs []segment.Segment) error {
	return s.replace(ctx, id, "segments", len(segs), func(tx *sql.Tx, i int) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO segments (session_id, position, start_ms, end_ms) VALUES (?, ?, ?, ?)`,
			id, i, segs[i].Start, segs[i].End)
		return err
	})
}

func (s *Store) LoadSegments(ctx context.Context, id string) ([]segment.Segment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT start_ms, end_ms FROM segments WHERE session_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("load segments: %w", err)
	}
	defer rows.Close()

	out := []segment.Segment{}
	for rows.Next() {
		var seg segment.Segment
		if err := rows.Scan(&seg.Start, &seg.End); err != nil {
			return nil, fmt.Errorf("load segments: %w", err)
		}
		out = append(out, seg)
	}

	return out, rows.Err()
}

// SaveMarkers replaces the stored markers of a session.
func (s *Store) SaveMarkers(ctx context.Context, id string, markers []float64) error {
	return s.replace(ctx, id, "markers", len(markers), func(tx *sql.Tx, i int) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO markers (session_id, position, value) VALUES (?, ?, ?)`,
			id, i, markers[i])
		return err
	})
}

func (s *Store) LoadMarkers(ctx context.Context, id string) ([]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT value FROM markers WHERE session_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("load markers: %w", err)
	}
	defer rows.Close()

	out := []float64{}
	for rows.Next() {
		var v float64
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("load markers: %w", err)
		}
		out = append(out, v)
	}

	return out, rows.Err()
}

// replace deletes every row of table for the session and inserts n new ones
// in a single transaction. table is one of the constant names above.
func (s *Store) replace(ctx context.Context, id, table string, n int, insert func(*sql.Tx, int) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save %s: %w", table, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `UPDATE sessions SET updated_at = ? WHERE id = ?`, s.now().UnixMilli(), id)
	if err != nil {
		return fmt.Errorf("save %s: %w", table, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("save %s: %w", table, err)
	}

	for i := range n {
		if err = insert(tx, i); err != nil {
			return fmt.Errorf("save %s: %w", table, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("save %s: %w", table, err)
	}

	s.logger.Debug("saved", zap.String("table", table), zap.String("session", id), zap.Int("rows", n))

	return nil
}
