package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"metrology/internal/broadcast"
	"metrology/internal/core/application/usecases/commands"
	"metrology/internal/core/domain/model/order"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// client is one connected measurement station.
type client struct {
	conn    *websocket.Conn
	sub     *broadcast.Subscriber
	handler *Handler
}

func newClient(conn *websocket.Conn, sub *broadcast.Subscriber, handler *Handler) *client {
	return &client{
		conn:    conn,
		sub:     sub,
		handler: handler,
	}
}

// readPump consumes inbound frames until the connection drops. Malformed
// frames are logged and skipped; a bad station must not take the stream
// down for everyone.
func (c *client) readPump() {
	defer func() {
		c.handler.hub.Detach(c.sub)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.handler.logger.Warn("Unexpected connection close", "error", err)
			}
			return
		}

		c.dispatch(message)
	}
}

// writePump forwards broadcast events to the connection and keeps it alive
// with pings. A closed event stream means the hub dropped this subscriber;
// the pump then closes the connection, which in turn ends the read pump.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.sub.Events():
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			envelope := OutboundEnvelope{
				Type:      string(event.Type),
				Payload:   event.Payload,
				Timestamp: time.Now().UTC(),
			}
			if err := c.conn.WriteJSON(envelope); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *client) dispatch(message []byte) {
	var envelope Envelope
	if err := json.Unmarshal(message, &envelope); err != nil {
		c.handler.logger.Warn("Dropping malformed frame", "error", err)
		return
	}

	// The connection outlives any single request, so commands run on a
	// background context rather than the upgraded request's.
	ctx := context.Background()

	switch envelope.Type {
	case MessageCreateOrder:
		c.handleCreateOrder(ctx, envelope.Payload)
	case MessageSubmitMeasurement:
		c.handleSubmitMeasurement(ctx, envelope.Payload)
	case MessageUpdateOperators:
		c.handleUpdateOperators(ctx, envelope.Payload)
	default:
		c.handler.logger.Warn("Dropping frame with unknown type", "type", envelope.Type)
	}
}

func (c *client) handleCreateOrder(ctx context.Context, raw json.RawMessage) {
	var payload CreateOrderPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.handler.logger.Warn("Dropping malformed create-order payload", "error", err)
		return
	}

	cmd, err := commands.NewCreateOrderCommand(payload.ID, payload.ArticleNumber, payload.DrawingNumber)
	if err != nil {
		c.handler.logger.Warn("Dropping invalid create-order payload", "error", err)
		return
	}

	if err = c.handler.createOrderHandler.Handle(ctx, cmd); err != nil {
		c.handler.logger.Error("Create order failed", "error", err)
	}
}

func (c *client) handleSubmitMeasurement(ctx context.Context, raw json.RawMessage) {
	var payload SubmitMeasurementPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.handler.logger.Warn("Dropping malformed submit-measurement payload", "error", err)
		return
	}

	results := make([]order.Measurement, len(payload.Results))
	for i, m := range payload.Results {
		results[i] = order.Measurement{
			Feature: m.Feature,
			Nominal: m.Nominal,
			Actual:  m.Actual,
			Status:  order.Status(m.Status),
		}
	}

	cmd, err := commands.NewSubmitMeasurementCommand(payload.OrderID, results, payload.Controller)
	if err != nil {
		c.handler.logger.Warn("Dropping invalid submit-measurement payload", "error", err)
		return
	}

	if err = c.handler.submitMeasurementHandler.Handle(ctx, cmd); err != nil {
		c.handler.logger.Error("Submit measurement failed", "error", err)
	}
}

func (c *client) handleUpdateOperators(ctx context.Context, raw json.RawMessage) {
	var payload UpdateOperatorsPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.handler.logger.Warn("Dropping malformed update-operators payload", "error", err)
		return
	}

	cmd, err := commands.NewUpdateOperatorsCommand(payload.Operators)
	if err != nil {
		c.handler.logger.Warn("Dropping invalid update-operators payload", "error", err)
		return
	}

	if err = c.handler.updateOperatorsHandler.Handle(ctx, cmd); err != nil {
		c.handler.logger.Error("Update operators failed", "error", err)
	}
}
