package store

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bornholm/compass/pkg/inbox"
	"github.com/pkg/errors"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store := NewStore(filepath.Join(t.TempDir(), "test.db"))

	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("%+v", errors.WithStack(err))
		}
	})

	if err := store.HealthCheck(context.Background()); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return store
}

func TestSession(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if _, err := store.GetSession(ctx, "unknown"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err: expected %v, got %+v", ErrNotFound, err)
	}

	session, err := store.SaveSession(ctx, "foo", false)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if session.LoggedIn {
		t.Error("session.LoggedIn: expected false, got true")
	}

	if _, err := store.SaveSession(ctx, "foo", true); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	session, err = store.GetSession(ctx, "foo")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if !session.LoggedIn {
		t.Error("session.LoggedIn: expected true, got false")
	}

	count, err := store.CountSessions(ctx)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(1), count; e != g {
		t.Errorf("count: expected %d, got %d", e, g)
	}

	deleted, err := store.DeleteSessionsBefore(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 0, deleted; e != g {
		t.Errorf("deleted: expected %d, got %d", e, g)
	}
}

func TestInboxListener(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if _, err := store.SaveSession(ctx, "foo", true); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	ib := inbox.New()
	unsubscribe := ib.Subscribe(store.InboxListener(ctx, "foo"))
	defer unsubscribe()

	first := ib.Add(inbox.Notification{Body: "first"})
	second := ib.Add(inbox.Notification{Body: "second"})
	third := ib.Add(inbox.Notification{Body: "third"})

	ib.MarkRead(second.ID)
	ib.Remove(third.ID)

	notifications, err := store.GetNotifications(ctx, "foo")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 2, len(notifications); e != g {
		t.Fatalf("len(notifications): expected %d, got %d", e, g)
	}

	if e, g := first.ID, notifications[0].ID; e != g {
		t.Errorf("notifications[0].ID: expected '%s', got '%s'", e, g)
	}

	if notifications[0].Read {
		t.Error("notifications[0].Read: expected false, got true")
	}

	if e, g := second.ID, notifications[1].ID; e != g {
		t.Errorf("notifications[1].ID: expected '%s', got '%s'", e, g)
	}

	if !notifications[1].Read {
		t.Error("notifications[1].Read: expected true, got false")
	}

	if e, g := first.CreatedAt.UnixMilli(), notifications[0].CreatedAt.UnixMilli(); e != g {
		t.Errorf("notifications[0].CreatedAt: expected %d, got %d", e, g)
	}

	// Restored inbox
	restored := inbox.New(inbox.WithNotifications(notifications...))

	if e, g := 1, restored.UnreadCount(); e != g {
		t.Errorf("restored.UnreadCount(): expected %d, got %d", e, g)
	}

	ib.ClearAll()

	notifications, err = store.GetNotifications(ctx, "foo")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 0, len(notifications); e != g {
		t.Errorf("len(notifications): expected %d, got %d", e, g)
	}
}

func TestDeleteSessionCascade(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if _, err := store.SaveSession(ctx, "foo", true); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	err := store.SaveNotifications(ctx, "foo", []inbox.Notification{
		{ID: "n1", Body: "hello", CreatedAt: time.Now()},
	})
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := store.DeleteSession(ctx, "foo"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	notifications, err := store.GetNotifications(ctx, "foo")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 0, len(notifications); e != g {
		t.Errorf("len(notifications): expected %d, got %d", e, g)
	}

	if _, err := store.GetSession(ctx, "foo"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err: expected %v, got %+v", ErrNotFound, err)
	}
}

func TestInboxListenerConcurrentMutations(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for round := range 5 {
		sessionID := fmt.Sprintf("session-%d", round)

		if _, err := store.SaveSession(ctx, sessionID, true); err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		ib := inbox.New()
		ib.Subscribe(store.InboxListener(ctx, sessionID))

		var wg sync.WaitGroup

		for i := range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()

				n := ib.Add(inbox.Notification{Body: fmt.Sprintf("message %d", i)})
				ib.MarkRead(n.ID)
			}()
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			ib.ClearAll()
		}()

		wg.Wait()

		notifications, err := store.GetNotifications(ctx, sessionID)
		if err != nil {
			t.Fatalf("%+v", errors.WithStack(err))
		}

		expected := ib.Snapshot()

		if e, g := len(expected), len(notifications); e != g {
			t.Fatalf("len(notifications): expected %d, got %d", e, g)
		}

		for i := range expected {
			if e, g := expected[i].ID, notifications[i].ID; e != g {
				t.Errorf("notifications[%d].ID: expected '%s', got '%s'", i, e, g)
			}

			if e, g := expected[i].Read, notifications[i].Read; e != g {
				t.Errorf("notifications[%d].Read: expected '%v', got '%v'", i, e, g)
			}
		}
	}
}
