package ports

import "metrology/internal/core/domain/model/order"

// EventType names the five outbound event kinds every subscriber reacts to.
// The string values travel unchanged to the wire, so clients switch on them
// directly.
type EventType string

const (
	// EventFullState carries both partitions plus the roster. Sent to a
	// subscriber on attach, broadcast after a reset, and rebroadcast
	// periodically so drifting clients converge.
	EventFullState EventType = "full-state"

	// EventOrderCreated carries the newly created order.
	EventOrderCreated EventType = "order-created"

	// EventOrderCompleted carries the archived order with its results,
	// serial number, controller, and completion timestamp.
	EventOrderCompleted EventType = "order-completed"

	// EventActiveListChanged carries the complete active partition after
	// any change to it.
	EventActiveListChanged EventType = "active-list-changed"

	// EventOperatorsChanged carries the replaced roster.
	EventOperatorsChanged EventType = "operators-changed"
)

// Event is one broadcast unit. Payload is one of the typed payload structs
// below, chosen by Type.
type Event struct {
	Type    EventType `json:"type"`
	Payload any       `json:"payload"`
}

// FullStatePayload is the payload of EventFullState.
type FullStatePayload struct {
	Active    []order.Doc `json:"active"`
	Archived  []order.Doc `json:"archived"`
	Operators []string    `json:"operators"`
}

// OrderPayload is the payload of EventOrderCreated and EventOrderCompleted.
type OrderPayload struct {
	Order order.Doc `json:"order"`
}

// ActiveListPayload is the payload of EventActiveListChanged.
type ActiveListPayload struct {
	Active []order.Doc `json:"active"`
}

// OperatorsPayload is the payload of EventOperatorsChanged.
type OperatorsPayload struct {
	Operators []string `json:"operators"`
}

// EventPublisher fans engine events out to every connected subscriber,
// including the one whose action caused the event. Delivery is best-effort
// and must never block the mutation path; per-subscriber delivery preserves
// the order events were published in.
type EventPublisher interface {
	Publish(event Event)
}
