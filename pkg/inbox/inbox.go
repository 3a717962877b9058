package inbox

import (
	"iter"
	"slices"
	"sync"
	"time"

	"github.com/rs/xid"
)

// Inbox is a session-scoped, insertion-ordered store of notifications.
//
// Listeners are called synchronously, in subscription order, before the
// mutating call returns. They run outside of the inbox lock over a snapshot
// of the subscriptions, so they may themselves mutate the inbox or
// unsubscribe.
type Inbox struct {
	mutex         sync.RWMutex
	notifications []Notification
	version       uint64

	listenersMutex sync.Mutex
	listeners      []*subscription

	now func() time.Time
}

type subscription struct {
	listener Listener
}

type Options struct {
	Notifications []Notification
	Now           func() time.Time
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Notifications: make([]Notification, 0),
		Now:           time.Now,
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

// WithNotifications seeds the inbox without notifying anyone.
func WithNotifications(notifications ...Notification) OptionFunc {
	return func(opts *Options) {
		opts.Notifications = notifications
	}
}

func WithNow(now func() time.Time) OptionFunc {
	return func(opts *Options) {
		opts.Now = now
	}
}

func New(funcs ...OptionFunc) *Inbox {
	opts := NewOptions(funcs...)
	return &Inbox{
		notifications: slices.Clone(opts.Notifications),
		listeners:     make([]*subscription, 0),
		now:           opts.Now,
	}
}

// Add appends a notification. Missing id and creation date are generated.
func (i *Inbox) Add(n Notification) Notification {
	if n.ID == "" {
		n.ID = xid.New().String()
	}

	if n.CreatedAt.IsZero() {
		n.CreatedAt = i.now().UTC()
	}

	i.mutex.Lock()
	i.notifications = append(i.notifications, n)
	evt := i.event(EventAdded, n)
	i.mutex.Unlock()

	i.emit(evt)

	return n
}

// List yields the notifications present when iteration starts, in insertion
// order. Each iteration takes a new snapshot.
func (i *Inbox) List() iter.Seq[Notification] {
	return func(yield func(Notification) bool) {
		for _, n := range i.Snapshot() {
			if !yield(n) {
				return
			}
		}
	}
}

func (i *Inbox) Snapshot() []Notification {
	i.mutex.RLock()
	defer i.mutex.RUnlock()

	return slices.Clone(i.notifications)
}

// MarkRead flags the notification as read. Unknown or already read
// notifications are ignored.
func (i *Inbox) MarkRead(id string) {
	i.mutex.Lock()

	idx := i.indexOf(id)
	if idx == -1 || i.notifications[idx].Read {
		i.mutex.Unlock()
		return
	}

	i.notifications[idx].Read = true
	evt := i.event(EventRead, i.notifications[idx])

	i.mutex.Unlock()

	i.emit(evt)
}

// Remove deletes the notification. Unknown ids are ignored.
func (i *Inbox) Remove(id string) {
	i.mutex.Lock()

	idx := i.indexOf(id)
	if idx == -1 {
		i.mutex.Unlock()
		return
	}

	n := i.notifications[idx]
	i.notifications = slices.Delete(i.notifications, idx, idx+1)
	evt := i.event(EventRemoved, n)

	i.mutex.Unlock()

	i.emit(evt)
}

// ClearAll empties the inbox. Clearing an empty inbox does nothing.
func (i *Inbox) ClearAll() {
	i.mutex.Lock()

	if len(i.notifications) == 0 {
		i.mutex.Unlock()
		return
	}

	i.notifications = make([]Notification, 0)
	evt := i.event(EventCleared, Notification{})

	i.mutex.Unlock()

	i.emit(evt)
}

// Version returns the number of mutations applied to the inbox.
func (i *Inbox) Version() uint64 {
	i.mutex.RLock()
	defer i.mutex.RUnlock()

	return i.version
}

func (i *Inbox) Len() int {
	i.mutex.RLock()
	defer i.mutex.RUnlock()

	return len(i.notifications)
}

func (i *Inbox) UnreadCount() int {
	i.mutex.RLock()
	defer i.mutex.RUnlock()

	count := 0
	for _, n := range i.notifications {
		if !n.Read {
			count++
		}
	}

	return count
}

// Subscribe registers a listener and returns the function removing it.
// Calling the returned function more than once is harmless.
func (i *Inbox) Subscribe(listener Listener) (unsubscribe func()) {
	sub := &subscription{listener: listener}

	i.listenersMutex.Lock()
	i.listeners = append(i.listeners, sub)
	i.listenersMutex.Unlock()

	return func() {
		i.listenersMutex.Lock()
		defer i.listenersMutex.Unlock()

		i.listeners = slices.DeleteFunc(i.listeners, func(s *subscription) bool {
			return s == sub
		})
	}
}

// event must be called with the state lock held.
func (i *Inbox) event(typ EventType, n Notification) Event {
	i.version++

	return Event{
		Type:         typ,
		Notification: n,
		Snapshot:     slices.Clone(i.notifications),
		Version:      i.version,
	}
}

func (i *Inbox) emit(evt Event) {
	i.listenersMutex.Lock()
	listeners := slices.Clone(i.listeners)
	i.listenersMutex.Unlock()

	for _, sub := range listeners {
		sub.listener(Event{
			Type:         evt.Type,
			Notification: evt.Notification,
			Snapshot:     slices.Clone(evt.Snapshot),
			Version:      evt.Version,
		})
	}
}

func (i *Inbox) indexOf(id string) int {
	return slices.IndexFunc(i.notifications, func(n Notification) bool {
		return n.ID == id
	})
}
