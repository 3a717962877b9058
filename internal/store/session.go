package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var sessionMigrations = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,

		logged_in BOOLEAN NOT NULL DEFAULT 0,

		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);`,
}

type Session struct {
	ID string

	LoggedIn bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Store) GetSession(ctx context.Context, id string) (*Session, error) {
	var session *Session

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		return errors.WithStack(sqlitex.Execute(conn, `SELECT `+sessionAttributes+` FROM sessions WHERE id = ? LIMIT 1`, &sqlitex.ExecOptions{
			Args: []any{id},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				session = &Session{}
				bindSession(stmt, session)
				return nil
			},
		}))
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if session == nil {
		return nil, errors.Wrapf(ErrNotFound, "session '%s'", id)
	}

	return session, nil
}

// SaveSession creates the session or updates its login flag.
func (s *Store) SaveSession(ctx context.Context, id string, loggedIn bool) (*Session, error) {
	var session *Session

	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		now := time.Now().UTC().Unix()

		query := `
			INSERT INTO sessions (id, logged_in, created_at, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				logged_in = excluded.logged_in,
				updated_at = excluded.updated_at
			RETURNING ` + sessionAttributes

		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{id, loggedIn, now, now},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				session = &Session{}
				bindSession(stmt, session)
				return nil
			},
		}))
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return session, nil
}

// DeleteSession removes the session and its notifications.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	return s.Tx(ctx, func(conn *sqlite.Conn) error {
		return errors.WithStack(sqlitex.Execute(conn, `DELETE FROM sessions WHERE id = ?`, &sqlitex.ExecOptions{
			Args: []any{id},
		}))
	})
}

// DeleteSessionsBefore purges the sessions not updated since the given time.
func (s *Store) DeleteSessionsBefore(ctx context.Context, before time.Time) (int, error) {
	var deleted int

	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, `DELETE FROM sessions WHERE updated_at < ?`, &sqlitex.ExecOptions{
			Args: []any{before.UTC().Unix()},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		deleted = conn.Changes()

		return nil
	})
	if err != nil {
		return 0, errors.WithStack(err)
	}

	return deleted, nil
}

func (s *Store) CountSessions(ctx context.Context) (int64, error) {
	var count int64

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		return errors.WithStack(sqlitex.Execute(conn, "SELECT COUNT(*) FROM sessions", &sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				count = stmt.ColumnInt64(0)
				return nil
			},
		}))
	})

	return count, errors.WithStack(err)
}

const sessionAttributes = `id, logged_in, created_at, updated_at`

func bindSession(stmt *sqlite.Stmt, session *Session) {
	session.ID = stmt.ColumnText(0)
	session.LoggedIn = stmt.ColumnBool(1)
	session.CreatedAt = time.Unix(stmt.ColumnInt64(2), 0)
	session.UpdatedAt = time.Unix(stmt.ColumnInt64(3), 0)
}
