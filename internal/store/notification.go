package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bornholm/compass/pkg/inbox"
	"github.com/bornholm/compass/pkg/log"
	"github.com/pkg/errors"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var notificationMigrations = []string{
	`CREATE TABLE IF NOT EXISTS notifications (
		seq INTEGER PRIMARY KEY,

		session_id TEXT NOT NULL,
		id TEXT NOT NULL,

		body TEXT NOT NULL,
		read BOOLEAN NOT NULL DEFAULT 0,

		created_at INTEGER NOT NULL,

		FOREIGN KEY (session_id) REFERENCES sessions (id) ON DELETE CASCADE,
		UNIQUE (session_id, id)
	);`,
}

var repeatableNotificationMigrations = []string{
	`CREATE INDEX IF NOT EXISTS notifications_session_idx ON notifications (session_id);`,
}

// GetNotifications returns the persisted notifications of the session, in
// insertion order.
func (s *Store) GetNotifications(ctx context.Context, sessionID string) ([]inbox.Notification, error) {
	notifications := make([]inbox.Notification, 0)

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := `SELECT id, body, read, created_at FROM notifications WHERE session_id = ? ORDER BY seq`

		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{sessionID},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				notifications = append(notifications, inbox.Notification{
					ID:        stmt.ColumnText(0),
					Body:      stmt.ColumnText(1),
					Read:      stmt.ColumnBool(2),
					CreatedAt: time.UnixMilli(stmt.ColumnInt64(3)),
				})
				return nil
			},
		}))
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return notifications, nil
}

// SaveNotifications replaces the persisted notifications of the session.
func (s *Store) SaveNotifications(ctx context.Context, sessionID string, notifications []inbox.Notification) error {
	return s.Tx(ctx, func(conn *sqlite.Conn) error {
		err := sqlitex.Execute(conn, `DELETE FROM notifications WHERE session_id = ?`, &sqlitex.ExecOptions{
			Args: []any{sessionID},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		query := `INSERT INTO notifications (session_id, id, body, read, created_at) VALUES (?, ?, ?, ?, ?)`

		for _, n := range notifications {
			err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
				Args: []any{sessionID, n.ID, n.Body, n.Read, n.CreatedAt.UnixMilli()},
			})
			if err != nil {
				return errors.WithStack(err)
			}
		}

		now := time.Now().UTC().Unix()

		err = sqlitex.Execute(conn, `UPDATE sessions SET updated_at = ? WHERE id = ?`, &sqlitex.ExecOptions{
			Args: []any{now, sessionID},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
}

// InboxListener returns an inbox listener persisting the session inbox after
// every mutation. Events older than the last persisted one are skipped, so
// concurrent mutations always leave the latest inbox content in the
// database. Errors are logged, the inbox state is left as is.
func (s *Store) InboxListener(ctx context.Context, sessionID string) inbox.Listener {
	ctx = context.WithoutCancel(ctx)

	var (
		mutex   sync.Mutex
		version uint64
	)

	return func(evt inbox.Event) {
		mutex.Lock()
		defer mutex.Unlock()

		if evt.Version != 0 && evt.Version <= version {
			return
		}

		if err := s.SaveNotifications(ctx, sessionID, evt.Snapshot); err != nil {
			slog.ErrorContext(ctx, "could not persist inbox",
				slog.String("session", sessionID),
				slog.String("event", string(evt.Type)),
				log.Error(errors.WithStack(err)),
			)
			return
		}

		version = evt.Version
	}
}
