// Package broadcast implements the fan-out hub between the lifecycle engine
// and its subscribers. The hub is transport-agnostic: it deals in
// ports.Event values, and the websocket adapter (or a test) drains each
// subscriber's channel however it likes.
//
// Guarantees:
//   - A subscriber receives one full-state snapshot as its first event, so
//     a late joiner never shows a partial or stale view.
//   - Per-subscriber delivery preserves the order events were published in;
//     a completion is never observed before its creation.
//   - Delivery never blocks the mutation path: a slow subscriber whose
//     buffer fills is dropped, not waited on.
//
// Membership is transient; there is no persisted subscriber identity.
// Reconnection is entirely the transport's business.
package broadcast

import (
	"context"
	"log/slog"

	"metrology/internal/core/ports"
)

// subscriberBuffer is the per-subscriber event backlog. A subscriber that
// falls this far behind is disconnected and expected to reattach for a
// fresh snapshot.
const subscriberBuffer = 256

// SnapshotSource supplies the full-state payload delivered to a subscriber
// on attach.
type SnapshotSource interface {
	Snapshot() ports.FullStatePayload
}

// Subscriber is one attached consumer. Drain Events until it is closed;
// the hub closes it on Detach or when the subscriber falls too far behind.
type Subscriber struct {
	events chan ports.Event
}

// Events returns the subscriber's ordered event stream.
func (s *Subscriber) Events() <-chan ports.Event {
	return s.events
}

// Hub maintains the subscriber set and fans published events out to every
// subscriber, including the one whose action caused the event. All
// membership changes and deliveries flow through one Run loop, which is
// what linearizes snapshot-on-attach against concurrent broadcasts.
//
// Hub implements ports.EventPublisher.
type Hub struct {
	source SnapshotSource

	register    chan *Subscriber
	unregister  chan *Subscriber
	broadcast   chan ports.Event
	subscribers map[*Subscriber]bool

	logger *slog.Logger
}

// NewHub creates a hub. BindSource must be called before Run.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		register:    make(chan *Subscriber),
		unregister:  make(chan *Subscriber),
		broadcast:   make(chan ports.Event, subscriberBuffer),
		subscribers: make(map[*Subscriber]bool),
		logger:      logger.With("component", "broadcast_hub"),
	}
}

// BindSource wires the snapshot source delivered to fresh subscribers.
// Split from the constructor because the hub is built before the engine
// (the engine publishes through the hub) and bound right after.
func (h *Hub) BindSource(source SnapshotSource) {
	h.source = source
}

// Run drains registration, deregistration, and broadcast requests until the
// context is canceled. Call it on its own goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case sub := <-h.register:
			h.attach(sub)

		case sub := <-h.unregister:
			h.detach(sub)

		case event := <-h.broadcast:
			h.fanOut(event)

		case <-ctx.Done():
			for sub := range h.subscribers {
				close(sub.events)
				delete(h.subscribers, sub)
			}
			h.logger.Info("Hub stopped")
			return
		}
	}
}

// Attach registers a new subscriber. Its first delivered event is the
// full-state snapshot taken at registration time; every event published
// afterwards follows in order.
func (h *Hub) Attach() *Subscriber {
	sub := &Subscriber{
		events: make(chan ports.Event, subscriberBuffer),
	}
	h.register <- sub
	return sub
}

// Detach deregisters the subscriber and closes its event stream. Safe to
// call for an already-dropped subscriber.
func (h *Hub) Detach(sub *Subscriber) {
	h.unregister <- sub
}

// Publish hands an event to the fan-out loop. It never blocks the caller:
// if the hub's intake is saturated the event is dropped with an error log,
// and clients converge through the next full-state resync.
func (h *Hub) Publish(event ports.Event) {
	select {
	case h.broadcast <- event:
	default:
		h.logger.Error("Broadcast intake saturated, event dropped", "type", string(event.Type))
	}
}

// attach delivers the snapshot into the fresh subscriber's empty buffer,
// then adds it to the set. Because attach and fanOut run on the same loop,
// nothing can slot an incremental event ahead of the snapshot.
func (h *Hub) attach(sub *Subscriber) {
	var snapshot ports.FullStatePayload
	if h.source != nil {
		snapshot = h.source.Snapshot()
	}

	sub.events <- ports.Event{Type: ports.EventFullState, Payload: snapshot}
	h.subscribers[sub] = true
	h.logger.Info("Subscriber attached", "subscribers", len(h.subscribers))
}

func (h *Hub) detach(sub *Subscriber) {
	if h.subscribers[sub] {
		delete(h.subscribers, sub)
		close(sub.events)
		h.logger.Info("Subscriber detached", "subscribers", len(h.subscribers))
	}
}

// fanOut delivers to every subscriber's buffer. A full buffer means the
// subscriber stopped draining; it is dropped so the loop never stalls.
func (h *Hub) fanOut(event ports.Event) {
	for sub := range h.subscribers {
		select {
		case sub.events <- event:
		default:
			delete(h.subscribers, sub)
			close(sub.events)
			h.logger.Warn("Slow subscriber dropped", "subscribers", len(h.subscribers))
		}
	}
}
