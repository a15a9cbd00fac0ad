// Package ws exposes the broadcast stream and the mutation operations over
// a WebSocket connection. Measurement stations hold one long-lived
// connection each: state changes arrive as typed envelopes, and the same
// connection accepts inbound commands.
package ws

import (
	"encoding/json"
	"time"
)

// Inbound message types. The values travel on the wire; stations switch on
// them directly.
const (
	MessageCreateOrder       = "create-order"
	MessageSubmitMeasurement = "submit-measurement"
	MessageUpdateOperators   = "update-operators"
)

// Envelope is an inbound frame: a type tag plus a raw payload decoded per
// type. Timestamp is informational and not validated.
type Envelope struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// OutboundEnvelope is an outbound frame: a broadcast event stamped with the
// send time.
type OutboundEnvelope struct {
	Type      string    `json:"type"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

// CreateOrderPayload is the payload of a create-order message.
type CreateOrderPayload struct {
	ID            string `json:"id"`
	ArticleNumber string `json:"articleNumber"`
	DrawingNumber string `json:"drawingNumber"`
}

// MeasurementPayload is one measured feature inside a submission payload.
type MeasurementPayload struct {
	Feature string  `json:"feature"`
	Nominal float64 `json:"nominal"`
	Actual  float64 `json:"actual"`
	Status  string  `json:"status"`
}

// SubmitMeasurementPayload is the payload of a submit-measurement message.
type SubmitMeasurementPayload struct {
	OrderID    string               `json:"orderId"`
	Results    []MeasurementPayload `json:"results"`
	Controller string               `json:"controller"`
}

// UpdateOperatorsPayload is the payload of an update-operators message.
type UpdateOperatorsPayload struct {
	Operators []string `json:"operators"`
}
