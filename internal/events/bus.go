// Package events provides the in-process notification boundary: a
// fire-and-forget publish/subscribe bus injected into the core so lifecycle
// events fan out to role-targeted subscribers without a live transport.
package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/khanhng/orderflow/internal/domain/model"
)

// Type names a lifecycle event.
type Type string

const (
	TypeCreated         Type = "created"
	TypeUpdated         Type = "updated"
	TypeDeleted         Type = "deleted"
	TypeStatusChanged   Type = "status_changed"
	TypeDraftPending    Type = "draft_pending"
	TypeDraftApproved   Type = "draft_approved"
	TypeDraftRejected   Type = "draft_rejected"
	TypeReworkRequested Type = "rework_requested"
	TypePurged          Type = "purged"
)

// Event is one lifecycle notification. Roles limits delivery to subscribers
// holding at least one of them; an empty list broadcasts.
type Event struct {
	ID        string        `json:"id"`
	Type      Type          `json:"type"`
	OrderID   int64         `json:"orderId,omitempty"`
	OrderCode string        `json:"orderCode,omitempty"`
	Actor     string        `json:"actor,omitempty"`
	Message   string        `json:"message,omitempty"`
	Roles     model.RoleSet `json:"-"`
	At        time.Time     `json:"at"`
}

// Publisher is the narrow interface the core depends on.
type Publisher interface {
	Publish(event Event)
}

type subscriber struct {
	roles model.RoleSet
	ch    chan Event
}

// Bus dispatches events to subscribers from a single goroutine. Publishing
// never blocks the caller; a subscriber that cannot keep up has the event
// skipped rather than stalling the dispatcher.
type Bus struct {
	logger *slog.Logger

	in     chan Event
	subs   map[*subscriber]struct{}
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewBus constructs the bus with the given inbound buffer size.
func NewBus(buffer int, logger *slog.Logger) *Bus {
	if buffer <= 0 {
		buffer = 64
	}
	return &Bus{
		logger: logger,
		in:     make(chan Event, buffer),
		subs:   make(map[*subscriber]struct{}),
	}
}

// Start launches the dispatcher goroutine.
func (b *Bus) Start(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	b.cancel = cancel

	b.wg.Add(1)
	go b.dispatch(runCtx)
}

// Stop terminates dispatching and waits for the dispatcher to exit.
func (b *Bus) Stop() {
	b.mu.Lock()
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	b.mu.Unlock()

	b.wg.Wait()
}

// Publish enqueues the event without blocking. When the buffer is full the
// event is dropped: notification failure never affects committed state.
func (b *Bus) Publish(event Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.At.IsZero() {
		event.At = time.Now()
	}

	select {
	case b.in <- event:
	default:
		b.logger.Warn("event bus buffer full, dropping event",
			slog.String("type", string(event.Type)),
			slog.String("order", event.OrderCode),
		)
	}
}

// Subscribe registers a role-filtered subscriber and returns its channel
// plus a cancel function releasing it.
func (b *Bus) Subscribe(roles model.RoleSet, buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	sub := &subscriber{roles: roles, ch: make(chan Event, buffer)}

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, sub)
			b.mu.Unlock()
			close(sub.ch)
		})
	}
	return sub.ch, cancel
}

func (b *Bus) dispatch(ctx context.Context) {
	defer b.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-b.in:
			b.fanOut(event)
		}
	}
}

func (b *Bus) fanOut(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for sub := range b.subs {
		if !sub.roles.Intersects(event.Roles) {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			// Slow subscriber: skip, never block dispatch.
		}
	}
}
