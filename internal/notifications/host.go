package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Host is the local notification capability of the platform the backend
// runs on.
type Host interface {
	// RequestPermission asks for permission to show notifications and
	// reports whether it is granted.
	RequestPermission(ctx context.Context) (bool, error)

	// Schedule stores a notification. An existing notification with the
	// same key is replaced. It returns the confirmation ID.
	Schedule(ctx context.Context, req Request, presentation Config) (string, error)

	// Cancel removes the pending notification with the key, if any.
	Cancel(ctx context.Context, key string) error

	// CancelAll removes all pending notifications.
	CancelAll(ctx context.Context) error

	// Scheduled lists all pending notifications.
	Scheduled(ctx context.Context) ([]Pending, error)

	// Delivered returns the channel fired notifications are sent on.
	Delivered() <-chan Delivery
}

type localEntry struct {
	pending Pending
	timer   *time.Timer
}

// LocalHost is an in-process Host. Pending notifications live in memory
// and are delivered on a buffered channel by timers.
//
// When the channel buffer is full, deliveries are dropped and logged.
type LocalHost struct {
	mu        sync.Mutex
	grant     bool
	granted   bool
	closed    bool
	entries   map[string]*localEntry
	delivered chan Delivery
	now       func() time.Time
}

// NewLocalHost creates a LocalHost. grant decides the answer to permission
// requests, buffer the capacity of the delivery channel.
func NewLocalHost(grant bool, buffer int) *LocalHost {
	return &LocalHost{
		grant:     grant,
		entries:   make(map[string]*localEntry),
		delivered: make(chan Delivery, buffer),
		now:       time.Now,
	}
}

func (h *LocalHost) RequestPermission(_ context.Context) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false, ErrHostClosed
	}

	h.granted = h.grant
	return h.granted, nil
}

func (h *LocalHost) Schedule(_ context.Context, req Request, presentation Config) (string, error) {
	if req.Key == "" {
		return "", ErrKeyEmpty
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return "", ErrHostClosed
	}

	if !h.granted {
		return "", ErrPermissionDenied
	}

	now := h.now()
	if !req.FireAt.After(now) {
		return "", fmt.Errorf("%w: %s is not after %s", ErrFireTimeNotFuture, req.FireAt.Format(time.RFC3339), now.Format(time.RFC3339))
	}

	if existing, ok := h.entries[req.Key]; ok {
		existing.timer.Stop()
	}

	id := uuid.NewString()
	entry := &localEntry{
		pending: Pending{
			Request:      req,
			ID:           id,
			Presentation: presentation,
			ScheduledAt:  now,
		},
	}
	entry.timer = time.AfterFunc(req.FireAt.Sub(now), func() {
		h.fire(req.Key, id)
	})
	h.entries[req.Key] = entry

	return id, nil
}

// fire delivers the notification if it is still the one scheduled for the key.
func (h *LocalHost) fire(key, id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entry, ok := h.entries[key]
	if !ok || entry.pending.ID != id || h.closed {
		return
	}
	delete(h.entries, key)

	select {
	case h.delivered <- Delivery{Pending: entry.pending, DeliveredAt: h.now()}:
	default:
		log.Warn().Str("key", key).Str("id", id).Msg("delivery channel full, dropping notification")
	}
}

func (h *LocalHost) Cancel(_ context.Context, key string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHostClosed
	}

	if entry, ok := h.entries[key]; ok {
		entry.timer.Stop()
		delete(h.entries, key)
	}

	return nil
}

func (h *LocalHost) CancelAll(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHostClosed
	}

	for key, entry := range h.entries {
		entry.timer.Stop()
		delete(h.entries, key)
	}

	return nil
}

func (h *LocalHost) Scheduled(_ context.Context) ([]Pending, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHostClosed
	}

	pending := make([]Pending, 0, len(h.entries))
	for _, entry := range h.entries {
		pending = append(pending, entry.pending)
	}

	return pending, nil
}

func (h *LocalHost) Delivered() <-chan Delivery {
	return h.delivered
}

// Close stops all timers and closes the delivery channel.
func (h *LocalHost) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true

	for key, entry := range h.entries {
		entry.timer.Stop()
		delete(h.entries, key)
	}

	close(h.delivered)
}
