// Package eventbus provides an in-process pub/sub bus for snippet events.
// Writers publish after the store commit; subscribers run asynchronously
// on a single consumer goroutine until the bus is stopped.
package eventbus

import (
	"context"
	"log"
	"sync"

	"github.com/matthewbaird/snippetchooser/internal/event"
)

// Handler processes a domain event.
type Handler interface {
	HandleEvent(ctx context.Context, evt event.DomainEvent) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, evt event.DomainEvent) error

func (f HandlerFunc) HandleEvent(ctx context.Context, evt event.DomainEvent) error {
	return f(ctx, evt)
}

// Bus dispatches events to every subscriber in publish order. Dispatch is
// serialised, so subscribers never see two events at once.
type Bus struct {
	mu          sync.RWMutex
	subscribers []namedHandler
	closed      bool
	events      chan event.DomainEvent
	done        chan struct{}
}

type namedHandler struct {
	name    string
	handler Handler
}

// New creates a Bus with the given channel buffer size.
func New(bufSize int) *Bus {
	if bufSize < 1 {
		bufSize = 256
	}
	return &Bus{
		events: make(chan event.DomainEvent, bufSize),
		done:   make(chan struct{}),
	}
}

// Subscribe registers a named handler. Must be called before Start.
func (b *Bus) Subscribe(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, namedHandler{name: name, handler: h})
}

// Publish enqueues evt without blocking. When the buffer is full or the bus
// is stopped the event is dropped and logged.
func (b *Bus) Publish(_ context.Context, evt event.DomainEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		log.Printf("eventbus: stopped, dropping %s", evt.Summary())
		return
	}
	select {
	case b.events <- evt:
	default:
		log.Printf("eventbus: buffer full, dropping %s (%s)", evt.Summary(), evt.ID)
	}
}

// Start runs the consumer goroutine until Stop is called. Cancelling ctx
// does not stop consumption; handlers receive ctx without its cancellation.
func (b *Bus) Start(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		defer close(b.done)
		for evt := range b.events {
			b.dispatch(ctx, evt)
		}
	}()
}

// Stop closes the bus, waits for the consumer to deliver every buffered
// event, and returns once it has finished.
func (b *Bus) Stop() {
	b.mu.Lock()
	if !b.closed {
		b.closed = true
		close(b.events)
	}
	b.mu.Unlock()
	<-b.done
}

func (b *Bus) dispatch(ctx context.Context, evt event.DomainEvent) {
	b.mu.RLock()
	subs := b.subscribers
	b.mu.RUnlock()

	for _, s := range subs {
		if err := s.handler.HandleEvent(ctx, evt); err != nil {
			log.Printf("eventbus: %s handler error for %s: %v", s.name, evt.EventType, err)
		}
	}
}
