package eventbus

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/philly/emitter/internal/platform/apperror"
	"github.com/philly/emitter/internal/platform/logger"
)

// DefaultMaxDepth bounds nested emission when Config.MaxDepth is not set.
const DefaultMaxDepth = 16

// ErrDepthExceeded is reported when a listener's nested emission goes past the configured depth.
var ErrDepthExceeded = apperror.New(
	apperror.CodeInternalError,
	apperror.BusinessCodeEmitDepthExceeded,
	"nested emission depth exceeded",
	http.StatusInternalServerError,
)

// ErrListenerFault is the category of every listener error or panic.
var ErrListenerFault = apperror.New(
	apperror.CodeInternalError,
	apperror.BusinessCodeListenerFault,
	"event listener failed",
	http.StatusInternalServerError,
)

// Config tunes a Bus.
type Config struct {
	MaxDepth int
}

type registration struct {
	id       uuid.UUID
	name     EventName
	listener Listener
}

type depthKey struct{}

// Bus maps event names to ordered listeners and dispatches synchronously.
type Bus struct {
	listeners map[EventName][]registration
	observers []registration
	mu        sync.RWMutex // Protects listeners and observers
	maxDepth  int
	inflight  sync.WaitGroup
	logger    logger.Logger
}

// NewBus creates an empty event bus.
func NewBus(logger logger.Logger, config Config) *Bus {
	maxDepth := config.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Bus{
		listeners: make(map[EventName][]registration),
		maxDepth:  maxDepth,
		logger:    logger,
	}
}

// Register appends listener to the ordered list for name. It always succeeds.
func (b *Bus) Register(name EventName, listener Listener) Subscription {
	reg := registration{id: uuid.New(), name: name, listener: listener}

	b.mu.Lock()
	b.listeners[name] = append(b.listeners[name], reg)
	b.mu.Unlock()

	b.logger.Debug(context.Background(), "listener registered",
		"event", name,
		"subscription_id", reg.id,
		"listener", fmt.Sprintf("%T", listener),
	)
	return Subscription{ID: reg.id, Name: name}
}

// On registers fn under name.
func (b *Bus) On(name EventName, fn func(ctx context.Context, event Event) error) Subscription {
	return b.Register(name, ListenerFunc(fn))
}

// Observe registers a listener that sees every event, after the named listeners have run.
// The returned subscription has an empty Name.
func (b *Bus) Observe(listener Listener) Subscription {
	reg := registration{id: uuid.New(), listener: listener}

	b.mu.Lock()
	b.observers = append(b.observers, reg)
	b.mu.Unlock()

	return Subscription{ID: reg.id}
}

// Unregister removes the registration identified by sub. It reports whether one was found.
func (b *Bus) Unregister(sub Subscription) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub.Name == "" {
		if kept, ok := without(b.observers, sub.ID); ok {
			b.observers = kept
			return true
		}
	}

	regs, found := b.listeners[sub.Name]
	if !found {
		return false
	}
	kept, ok := without(regs, sub.ID)
	if !ok {
		return false
	}
	if len(kept) == 0 {
		delete(b.listeners, sub.Name)
	} else {
		b.listeners[sub.Name] = kept
	}
	return true
}

// without returns a fresh slice lacking id so that snapshots held by running dispatches stay intact.
func without(regs []registration, id uuid.UUID) ([]registration, bool) {
	for i, reg := range regs {
		if reg.id == id {
			kept := make([]registration, 0, len(regs)-1)
			kept = append(kept, regs[:i]...)
			return append(kept, regs[i+1:]...), true
		}
	}
	return regs, false
}

// ListenerCount returns the number of registrations under name. Observers are not counted.
func (b *Bus) ListenerCount(name EventName) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[name])
}

// Names returns every event name with at least one listener, sorted.
func (b *Bus) Names() []EventName {
	b.mu.RLock()
	names := make([]EventName, 0, len(b.listeners))
	for name := range b.listeners {
		names = append(names, name)
	}
	b.mu.RUnlock()

	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Emit invokes every listener registered for name, in registration order,
// with payload. Emitting a name nobody listens to is a no-op.
func (b *Bus) Emit(ctx context.Context, name EventName, payload any) {
	_ = b.Dispatch(ctx, name, payload)
}

// Dispatch is Emit with a receipt describing what happened.
func (b *Bus) Dispatch(ctx context.Context, name EventName, payload any) Receipt {
	event := Event{
		ID:        uuid.New(),
		Name:      name,
		Payload:   payload,
		EmittedAt: time.Now().UTC(),
	}
	receipt := Receipt{EventID: event.ID, Name: name}

	depth, _ := ctx.Value(depthKey{}).(int)
	if depth >= b.maxDepth {
		receipt.Err = ErrDepthExceeded
		b.logger.Error(ctx, "event emission refused",
			"event", name,
			"event_id", event.ID,
			"depth", depth,
			"max_depth", b.maxDepth,
			"error", ErrDepthExceeded,
		)
		return receipt
	}

	// Snapshot under the read lock; listeners run unlocked so they can register or emit.
	b.mu.RLock()
	named := append([]registration(nil), b.listeners[name]...)
	observers := append([]registration(nil), b.observers...)
	b.mu.RUnlock()

	if len(named) == 0 && len(observers) == 0 {
		return receipt
	}

	ctx = context.WithValue(ctx, depthKey{}, depth+1)

	for _, reg := range named {
		if err := b.invoke(ctx, event, reg); err != nil {
			receipt.Failed++
			receipt.Faults = append(receipt.Faults, err)
			continue
		}
		receipt.Delivered++
	}
	for _, reg := range observers {
		if err := b.invoke(ctx, event, reg); err != nil {
			receipt.Faults = append(receipt.Faults, err)
		}
	}

	return receipt
}

// invoke runs one listener, converting an error or panic into a logged listener fault.
func (b *Bus) invoke(ctx context.Context, event Event, reg registration) (fault error) {
	defer func() {
		if r := recover(); r != nil {
			fault = b.reportFault(ctx, event, reg, &PanicError{Value: r, Stack: debug.Stack()})
		}
	}()

	if err := reg.listener.Handle(ctx, event); err != nil {
		return b.reportFault(ctx, event, reg, err)
	}
	return nil
}

func (b *Bus) reportFault(ctx context.Context, event Event, reg registration, cause error) error {
	fault := apperror.Wrap(
		cause,
		ErrListenerFault.Code,
		ErrListenerFault.BusinessCode,
		ErrListenerFault.Message,
		ErrListenerFault.HTTPStatus,
	).WithDetails(map[string]string{
		"event":           string(event.Name),
		"subscription_id": reg.id.String(),
	})

	args := []any{
		"event", event.Name,
		"event_id", event.ID,
		"subscription_id", reg.id,
		"listener", fmt.Sprintf("%T", reg.listener),
		"error", cause,
	}
	var panicErr *PanicError
	if errors.As(cause, &panicErr) {
		args = append(args, "stack", string(panicErr.Stack))
	}
	b.logger.Error(ctx, "event listener failed", args...)

	return fault
}

// Publish dispatches on a new goroutine (fire-and-forget). Listener order within
// the dispatch is preserved; Wait blocks until outstanding publishes complete.
func (b *Bus) Publish(ctx context.Context, name EventName, payload any) {
	ctx = context.WithoutCancel(ctx)

	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		b.Dispatch(ctx, name, payload)
	}()
}

// Wait blocks until every Publish has finished or ctx is done.
func (b *Bus) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		b.inflight.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
