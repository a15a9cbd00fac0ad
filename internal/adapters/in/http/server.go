// Package http exposes the order lifecycle over a REST API. The handlers
// translate between transport DTOs and application commands/queries; all
// domain decisions stay behind the command handlers.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"metrology/internal/core/application/usecases/commands"
	"metrology/internal/core/application/usecases/queries"
)

// Server wires the REST routes to the application layer.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	submitMeasurementHandler commands.SubmitMeasurementCommandHandler
	updateOperatorsHandler   commands.UpdateOperatorsCommandHandler
	resetHandler             commands.ResetCommandHandler

	// Query handlers
	getBoardHandler   queries.GetBoardQueryHandler
	getArchiveHandler queries.GetArchiveQueryHandler

	validate   *validator.Validate
	resetToken string
	logger     *slog.Logger
}

// NewServer creates an HTTP server over the given command and query
// handlers. When resetToken is non-empty the reset endpoint requires it in
// the X-Reset-Token header; an empty token leaves the endpoint open, which
// is the expected shop-floor configuration.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	submitMeasurementHandler commands.SubmitMeasurementCommandHandler,
	updateOperatorsHandler commands.UpdateOperatorsCommandHandler,
	resetHandler commands.ResetCommandHandler,
	getBoardHandler queries.GetBoardQueryHandler,
	getArchiveHandler queries.GetArchiveQueryHandler,
	resetToken string,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		submitMeasurementHandler: submitMeasurementHandler,
		updateOperatorsHandler:   updateOperatorsHandler,
		resetHandler:             resetHandler,
		getBoardHandler:          getBoardHandler,
		getArchiveHandler:        getArchiveHandler,
		validate:                 validator.New(),
		resetToken:               resetToken,
		logger:                   logger.With("component", "http_server"),
	}
}

// RegisterRoutes mounts all REST routes on the given Echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/measurements", s.SubmitMeasurement)
	api.PUT("/operators", s.UpdateOperators)
	api.POST("/reset", s.Reset)
	api.GET("/board", s.GetBoard)
	api.GET("/archive", s.GetArchive)
	api.GET("/reports/orders.xlsx", s.DownloadOrdersReport)

	e.GET("/health", s.Health)
}

// CreateOrder handles POST /api/v1/orders - registers a new measurement order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(req.ID, req.ArticleNumber, req.DrawingNumber)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return internalError(ctx, "Failed to create order")
	}

	return ctx.NoContent(http.StatusCreated)
}

// SubmitMeasurement handles POST /api/v1/orders/:id/measurements - records
// measurement results and archives the order.
func (s *Server) SubmitMeasurement(ctx echo.Context) error {
	var req SubmitMeasurementRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	if err := s.validate.Struct(req); err != nil {
		return badRequest(ctx, "Invalid measurement data: "+err.Error())
	}

	cmd, err := commands.NewSubmitMeasurementCommand(ctx.Param("id"), req.toMeasurements(), req.Controller)
	if err != nil {
		return badRequest(ctx, "Invalid measurement data: "+err.Error())
	}

	if err = s.submitMeasurementHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return internalError(ctx, "Failed to submit measurement")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateOperators handles PUT /api/v1/operators - replaces the operator roster.
func (s *Server) UpdateOperators(ctx echo.Context) error {
	var req UpdateOperatorsRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateOperatorsCommand(req.Operators)
	if err != nil {
		return badRequest(ctx, "Invalid operator data: "+err.Error())
	}

	if err = s.updateOperatorsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return internalError(ctx, "Failed to update operators")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// Reset handles POST /api/v1/reset - clears all orders and serial counters.
func (s *Server) Reset(ctx echo.Context) error {
	if s.resetToken != "" && ctx.Request().Header.Get("X-Reset-Token") != s.resetToken {
		return ctx.JSON(http.StatusForbidden, ErrorResponse{
			Code:    http.StatusForbidden,
			Message: "Invalid reset token",
		})
	}

	if err := s.resetHandler.Handle(ctx.Request().Context(), commands.NewResetCommand()); err != nil {
		return internalError(ctx, "Failed to reset")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetBoard handles GET /api/v1/board - returns the full current state.
func (s *Server) GetBoard(ctx echo.Context) error {
	board, err := s.getBoardHandler.Handle(ctx.Request().Context(), queries.NewGetBoardQuery())
	if err != nil {
		return internalError(ctx, "Failed to retrieve board")
	}

	return ctx.JSON(http.StatusOK, board)
}

// GetArchive handles GET /api/v1/archive - returns archived orders,
// optionally filtered by the drawingNumber query parameter.
func (s *Server) GetArchive(ctx echo.Context) error {
	query := queries.NewGetArchiveQuery(ctx.QueryParam("drawingNumber"))

	archive, err := s.getArchiveHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve archive")
	}

	return ctx.JSON(http.StatusOK, archive)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}
