package broadcast_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"metrology/internal/broadcast"
	"metrology/internal/core/domain/model/order"
	"metrology/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	snap ports.FullStatePayload
}

func (s *stubSource) Snapshot() ports.FullStatePayload { return s.snap }

func newRunningHub(t *testing.T, source broadcast.SnapshotSource) *broadcast.Hub {
	t.Helper()
	hub := broadcast.NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	hub.BindSource(source)
	go hub.Run(t.Context())
	return hub
}

func receive(t *testing.T, sub *broadcast.Subscriber) ports.Event {
	t.Helper()
	select {
	case event, ok := <-sub.Events():
		require.True(t, ok, "subscriber stream closed unexpectedly")
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return ports.Event{}
	}
}

func TestHub_Attach(t *testing.T) {
	t.Run("should deliver the full-state snapshot first", func(t *testing.T) {
		source := &stubSource{snap: ports.FullStatePayload{
			Active:    []order.Doc{{ID: "A", Status: order.Active}},
			Archived:  []order.Doc{{ID: "B", Status: order.StatusOK}},
			Operators: []string{"Weber"},
		}}
		hub := newRunningHub(t, source)

		sub := hub.Attach()
		hub.Publish(ports.Event{Type: ports.EventOrderCreated})

		first := receive(t, sub)
		require.Equal(t, ports.EventFullState, first.Type)
		payload, ok := first.Payload.(ports.FullStatePayload)
		require.True(t, ok)
		assert.Equal(t, source.snap, payload)

		second := receive(t, sub)
		assert.Equal(t, ports.EventOrderCreated, second.Type)
	})

	t.Run("should send the snapshot only to the new subscriber", func(t *testing.T) {
		hub := newRunningHub(t, &stubSource{})
		veteran := hub.Attach()
		receive(t, veteran) // its own snapshot

		hub.Attach()
		hub.Publish(ports.Event{Type: ports.EventOrderCreated})

		event := receive(t, veteran)
		assert.Equal(t, ports.EventOrderCreated, event.Type, "veteran must not see the newcomer's snapshot")
	})
}

func TestHub_Publish(t *testing.T) {
	t.Run("should deliver to every subscriber in publish order", func(t *testing.T) {
		hub := newRunningHub(t, &stubSource{})
		subs := []*broadcast.Subscriber{hub.Attach(), hub.Attach(), hub.Attach()}
		for _, sub := range subs {
			receive(t, sub)
		}

		published := []ports.EventType{
			ports.EventOrderCreated,
			ports.EventActiveListChanged,
			ports.EventOrderCompleted,
			ports.EventActiveListChanged,
		}
		for _, eventType := range published {
			hub.Publish(ports.Event{Type: eventType})
		}

		for _, sub := range subs {
			for _, want := range published {
				assert.Equal(t, want, receive(t, sub).Type)
			}
		}
	})

	t.Run("should include the originator in the broadcast", func(t *testing.T) {
		// No differential treatment: the actor reacts to the same
		// canonical event as everyone else.
		hub := newRunningHub(t, &stubSource{})
		actor := hub.Attach()
		receive(t, actor)

		hub.Publish(ports.Event{Type: ports.EventOperatorsChanged})

		assert.Equal(t, ports.EventOperatorsChanged, receive(t, actor).Type)
	})
}

func TestHub_Detach(t *testing.T) {
	t.Run("should close the subscriber stream", func(t *testing.T) {
		hub := newRunningHub(t, &stubSource{})
		sub := hub.Attach()
		receive(t, sub)

		hub.Detach(sub)

		select {
		case _, ok := <-sub.Events():
			assert.False(t, ok, "stream must be closed")
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for close")
		}
	})

	t.Run("should keep other subscribers delivering", func(t *testing.T) {
		hub := newRunningHub(t, &stubSource{})
		leaving := hub.Attach()
		staying := hub.Attach()
		receive(t, leaving)
		receive(t, staying)

		hub.Detach(leaving)
		hub.Publish(ports.Event{Type: ports.EventOrderCreated})

		assert.Equal(t, ports.EventOrderCreated, receive(t, staying).Type)
	})
}
