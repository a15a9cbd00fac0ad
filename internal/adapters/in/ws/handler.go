package ws

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"metrology/internal/broadcast"
	"metrology/internal/core/application/usecases/commands"
)

// Handler upgrades HTTP requests to WebSocket connections and wires each
// connection to the broadcast hub and the command handlers.
type Handler struct {
	hub                      *broadcast.Hub
	createOrderHandler       commands.CreateOrderCommandHandler
	submitMeasurementHandler commands.SubmitMeasurementCommandHandler
	updateOperatorsHandler   commands.UpdateOperatorsCommandHandler
	upgrader                 websocket.Upgrader
	logger                   *slog.Logger
}

// NewHandler creates a WebSocket handler. Origin checks are disabled: the
// server runs on a closed shop-floor network and stations connect from
// file:// or LAN origins.
func NewHandler(
	hub *broadcast.Hub,
	createOrderHandler commands.CreateOrderCommandHandler,
	submitMeasurementHandler commands.SubmitMeasurementCommandHandler,
	updateOperatorsHandler commands.UpdateOperatorsCommandHandler,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		hub:                      hub,
		createOrderHandler:       createOrderHandler,
		submitMeasurementHandler: submitMeasurementHandler,
		updateOperatorsHandler:   updateOperatorsHandler,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "ws_handler"),
	}
}

// Serve handles GET /ws - upgrades the connection, attaches a hub
// subscriber (which delivers the full-state snapshot as the first frame),
// and starts the read and write pumps.
func (h *Handler) Serve(ctx echo.Context) error {
	conn, err := h.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		h.logger.Warn("Upgrade failed", "error", err)
		return nil
	}

	sub := h.hub.Attach()
	client := newClient(conn, sub, h)

	go client.writePump()
	go client.readPump()

	return nil
}
