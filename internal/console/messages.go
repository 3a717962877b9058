package console

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/bornholm/compass/internal/session"
	"github.com/bornholm/compass/pkg/inbox"
	"github.com/bornholm/compass/pkg/log"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const maxMessageSize = 64 << 10

type messagesResponse struct {
	Messages    []inbox.Notification `json:"messages"`
	UnreadCount int                  `json:"unreadCount"`
}

func newMessagesResponse(notifications []inbox.Notification) messagesResponse {
	res := messagesResponse{
		Messages: notifications,
	}

	for _, n := range notifications {
		if !n.Read {
			res.UnreadCount++
		}
	}

	return res
}

func (h *Handler) listMessages(w http.ResponseWriter, r *http.Request) {
	sess, err := session.ContextSession(r.Context())
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	writeJSON(w, r, http.StatusOK, newMessagesResponse(sess.Inbox.Snapshot()))
}

type addMessageRequest struct {
	Body string `json:"body"`
}

func (h *Handler) addMessage(w http.ResponseWriter, r *http.Request) {
	sess, err := session.ContextSession(r.Context())
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	var req addMessageRequest

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMessageSize)).Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Body) == "" {
		http.Error(w, "message body is required", http.StatusBadRequest)
		return
	}

	n := sess.Inbox.Add(inbox.Notification{Body: req.Body})

	writeJSON(w, r, http.StatusCreated, n)
}

// markMessageRead always succeeds, unknown messages are ignored.
func (h *Handler) markMessageRead(w http.ResponseWriter, r *http.Request) {
	nb, _, _, err := h.navbar(r)
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	nb.MarkRead(r.PathValue("id"))

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clearMessages(w http.ResponseWriter, r *http.Request) {
	nb, _, _, err := h.navbar(r)
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	nb.ClearMessages()

	w.WriteHeader(http.StatusNoContent)
}

// latestEvent hands the most recent inbox event to a possibly slow consumer.
// Pending events are replaced by newer ones so the consumer always ends up
// with the current inbox content.
type latestEvent struct {
	mutex   sync.Mutex
	version uint64
	events  chan inbox.Event
}

func newLatestEvent() *latestEvent {
	return &latestEvent{
		events: make(chan inbox.Event, 1),
	}
}

// Push implements inbox.Listener.
func (l *latestEvent) Push(evt inbox.Event) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if evt.Version <= l.version {
		return
	}

	l.version = evt.Version

	select {
	case <-l.events:
	default:
	}

	l.events <- evt
}

func (l *latestEvent) Events() <-chan inbox.Event {
	return l.events
}

// streamMessages pushes the inbox content to the client as server-sent
// events: once on connection, then after every change.
func (h *Handler) streamMessages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := session.ContextSession(ctx)
	if err != nil {
		h.handleError(w, r, errors.WithStack(err))
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	latest := newLatestEvent()

	unsubscribe := sess.Inbox.Subscribe(latest.Push)
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if err := writeEvent(w, sess.Inbox.Snapshot()); err != nil {
		slog.DebugContext(ctx, "could not write event", log.Error(errors.WithStack(err)))
		return
	}

	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-latest.Events():
			if err := writeEvent(w, evt.Snapshot); err != nil {
				slog.DebugContext(ctx, "could not write event", log.Error(errors.WithStack(err)))
				return
			}

			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, snapshot []inbox.Notification) error {
	data, err := json.Marshal(newMessagesResponse(snapshot))
	if err != nil {
		return errors.WithStack(err)
	}

	if _, err := fmt.Fprintf(w, "event: inbox\ndata: %s\n\n", data); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
