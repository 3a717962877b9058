package console

import (
	"fmt"
	"testing"

	"github.com/bornholm/compass/pkg/inbox"
)

func TestLatestEventSlowConsumer(t *testing.T) {
	ib := inbox.New()
	latest := newLatestEvent()

	unsubscribe := ib.Subscribe(latest.Push)
	defer unsubscribe()

	// Nobody reads while the inbox is flooded
	for i := range 100 {
		ib.Add(inbox.Notification{Body: fmt.Sprintf("message %d", i)})
	}

	evt := <-latest.Events()

	if e, g := uint64(100), evt.Version; e != g {
		t.Errorf("evt.Version: expected %d, got %d", e, g)
	}

	if e, g := 100, len(evt.Snapshot); e != g {
		t.Errorf("len(evt.Snapshot): expected %d, got %d", e, g)
	}

	select {
	case evt := <-latest.Events():
		t.Errorf("unexpected pending event: version %d", evt.Version)
	default:
	}
}

func TestLatestEventOutOfOrder(t *testing.T) {
	latest := newLatestEvent()

	latest.Push(inbox.Event{Type: inbox.EventAdded, Version: 5, Snapshot: make([]inbox.Notification, 2)})
	latest.Push(inbox.Event{Type: inbox.EventCleared, Version: 3})

	evt := <-latest.Events()

	if e, g := uint64(5), evt.Version; e != g {
		t.Errorf("evt.Version: expected %d, got %d", e, g)
	}

	select {
	case evt := <-latest.Events():
		t.Errorf("unexpected pending event: version %d", evt.Version)
	default:
	}
}
