// Package store provides the sqlite-backed session store.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/aditya-sb/livestreaming/internal/domain"
)

const schema = `CREATE TABLE IF NOT EXISTS sessions(
	id         TEXT PRIMARY KEY,
	owner_role TEXT NOT NULL,
	share_url  TEXT NOT NULL,
	active     INTEGER NOT NULL DEFAULT 1
);`

type SQLite struct {
	db *sql.DB
}

// Open opens (creating if needed) the session database at path.
func Open(path string) (*SQLite, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate session db: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) Create(ctx context.Context, sess *domain.Session) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions(id, owner_role, share_url, active) VALUES(?,?,?,?)`,
		string(sess.ID), string(sess.OwnerRole), sess.ShareURL, boolToInt(sess.Active))
	return err
}

func (s *SQLite) FindByID(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT id, owner_role, share_url, active FROM sessions WHERE id=?`, string(id)))
}

func (s *SQLite) FindActiveByID(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	return s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT id, owner_role, share_url, active FROM sessions WHERE id=? AND active=1`, string(id)))
}

func (s *SQLite) SetActive(ctx context.Context, id domain.SessionID, active bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET active=? WHERE id=?`, boolToInt(active), string(id))
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNoSession
	}
	return nil
}

func (s *SQLite) scanOne(row *sql.Row) (*domain.Session, error) {
	var sess domain.Session
	var active int
	err := row.Scan(&sess.ID, &sess.OwnerRole, &sess.ShareURL, &active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	sess.Active = active == 1
	return &sess, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
