// Package lifecycle implements the Order Lifecycle & Synchronization Engine:
// the single owner of the in-memory order set and operator roster.
//
// All five mutating operations — create, submit measurement, replace
// operators, reset, plus the startup recovery — pass through one Engine and
// are serialized by its mutex, so no two operations ever interleave their
// read-modify-write of the shared state. Persistence happens inside the
// operation before its events are published; broadcast delivery is decoupled
// behind the EventPublisher port and never blocks a mutation.
//
// The engine has no fatal errors. Validation and lookup failures are logged
// no-ops, storage failures are logged while memory stays authoritative, and
// damaged persisted state degrades to an empty set that is immediately
// rewritten clean. Availability is traded for a bounded window of data-loss
// risk.
package lifecycle

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"metrology/internal/core/domain/model/kernel"
	"metrology/internal/core/domain/model/operator"
	"metrology/internal/core/domain/model/order"
	"metrology/internal/core/domain/services"
	"metrology/internal/core/ports"
)

// Engine owns the order set and roster and serializes every mutation.
// Construct it with NewEngine and call Start before accepting traffic.
type Engine struct {
	mu     sync.Mutex
	set    *order.Set
	roster operator.Roster

	store      ports.OrderStore
	publisher  ports.EventPublisher
	reconciler services.Reconciler
	serials    *services.SerialAllocator

	now    func() time.Time
	newID  func() kernel.OrderID
	logger *slog.Logger
}

// Option customizes an Engine. Used by tests to inject a deterministic
// clock and id source.
type Option func(*Engine)

// WithClock replaces the engine's time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithIDGenerator replaces the engine's id source for orders that arrive
// without one.
func WithIDGenerator(newID func() kernel.OrderID) Option {
	return func(e *Engine) {
		e.newID = newID
	}
}

// NewEngine creates an Engine over the given store and publisher. The engine
// starts empty; call Start to adopt persisted state.
func NewEngine(store ports.OrderStore, publisher ports.EventPublisher, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		set:        order.NewSet(),
		roster:     operator.DefaultRoster(),
		store:      store,
		publisher:  publisher,
		reconciler: services.NewReconciler(),
		now:        time.Now,
		newID:      kernel.NewOrderID,
		logger:     logger.With("component", "lifecycle_engine"),
	}

	e.serials = services.NewSerialAllocator(storeCounter{engine: e})

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Start loads persisted state, repairs it, and adopts it. When the repair
// changed either partition, or individual records had to be dropped as
// unrestorable, the cleaned state is persisted immediately so the store
// self-heals before any client connects.
//
// Start never fails: a missing, corrupt, or unreachable store degrades to an
// empty set, logged for operational visibility.
func (e *Engine) Start(ctx context.Context) {
	state, err := e.store.Load(ctx)
	if err != nil {
		e.logger.ErrorContext(ctx, "Loading persisted state failed, starting empty", "error", err)
		state = ports.StoreState{}
	}

	reconciled := e.reconciler.Reconcile(state.Active, state.Archived, state.Operators)
	repaired := reconciled.Repaired

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, doc := range reconciled.Active {
		if restoreErr := e.restoreActive(doc); restoreErr != nil {
			e.logger.WarnContext(ctx, "Dropping unrestorable active order",
				"order_id", doc.ID, "error", restoreErr)
			repaired = true
		}
	}

	for _, doc := range reconciled.Archived {
		if restoreErr := e.restoreArchived(doc); restoreErr != nil {
			e.logger.WarnContext(ctx, "Dropping unrestorable archived order",
				"order_id", doc.ID, "error", restoreErr)
			repaired = true
		}
	}

	e.roster = operator.NewRoster(reconciled.Operators)

	if repaired {
		e.logger.InfoContext(ctx, "Persisted state repaired",
			"active", e.set.ActiveLen(), "archived", e.set.ArchivedLen())
		e.persist(ctx)
	}

	e.logger.InfoContext(ctx, "Engine started",
		"active", e.set.ActiveLen(), "archived", e.set.ArchivedLen(), "operators", len(e.roster.Names()))
}

// restoreActive rebuilds one active-partition record. A record whose status
// is not ACTIVE is misfiled and rejected here rather than silently adopted.
func (e *Engine) restoreActive(doc order.Doc) error {
	o, err := order.RestoreOrder(doc)
	if err != nil {
		return err
	}
	return e.set.AddActive(o)
}

func (e *Engine) restoreArchived(doc order.Doc) error {
	o, err := order.RestoreOrder(doc)
	if err != nil {
		return err
	}
	return e.set.AddArchived(o)
}

// CreateOrder validates, dedups, and inserts a new active order.
//
// An empty id means the origin system assigned none; the engine generates a
// time-ordered id. A duplicate id in either partition is the primary defense
// against an upstream system retrying a request it believes failed: the
// submission is dropped with a logged warning and no state change, and the
// caller is not told — it converges through the broadcasts like everyone
// else.
//
// On success the order is persisted and an order-created event followed by
// an active-list-changed event are published.
func (e *Engine) CreateOrder(ctx context.Context, id, articleNumber, drawingNumber string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	orderID := e.resolveID(id)

	if e.set.Has(orderID.String()) {
		e.logger.WarnContext(ctx, "Duplicate order rejected", "order_id", orderID.String())
		return nil
	}

	o, err := order.NewOrder(orderID, articleNumber, drawingNumber, e.now())
	if err != nil {
		return err
	}

	if err = e.set.AddActive(o); err != nil {
		return err
	}

	e.persist(ctx)
	e.publisher.Publish(ports.Event{Type: ports.EventOrderCreated, Payload: ports.OrderPayload{Order: o.Doc()}})
	e.publishActiveList()

	e.logger.InfoContext(ctx, "Order created",
		"order_id", orderID.String(), "article", articleNumber, "drawing", drawingNumber)
	return nil
}

// SubmitMeasurement transitions an active order to its terminal status.
//
// An id that is unknown or already archived means the caller acted on a
// stale view of the active list; the submission is dropped with a logged
// warning, and the caller resynchronizes from a subsequent full-state
// broadcast. A second submission for the same id is therefore a no-op.
//
// The verdict is OK if every result entry passed, FAIL otherwise; the serial
// number is minted atomically per drawing. On success the archived order is
// persisted and an order-completed event followed by an active-list-changed
// event are published.
func (e *Engine) SubmitMeasurement(ctx context.Context, id string, results []order.Measurement, controller string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	o, ok := e.set.Active(id)
	if !ok {
		e.logger.WarnContext(ctx, "Measurement for unknown or archived order dropped", "order_id", id)
		return nil
	}

	serial := e.serials.Next(ctx, o.DrawingNumber())

	if err := o.Complete(results, controller, serial, e.now()); err != nil {
		return err
	}

	if err := e.set.MoveToArchived(id); err != nil {
		return err
	}

	e.persist(ctx)
	e.publisher.Publish(ports.Event{Type: ports.EventOrderCompleted, Payload: ports.OrderPayload{Order: o.Doc()}})
	e.publishActiveList()

	e.logger.InfoContext(ctx, "Order completed",
		"order_id", id, "serial", serial, "verdict", o.Status().String(), "controller", controller)
	return nil
}

// UpdateOperators replaces the roster wholesale. An empty roster is
// accepted; clients handle an empty operator list, not the engine. The new
// roster is persisted and an operators-changed event is published.
func (e *Engine) UpdateOperators(ctx context.Context, names []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.roster = operator.NewRoster(names)

	e.persist(ctx)
	e.publisher.Publish(ports.Event{
		Type:    ports.EventOperatorsChanged,
		Payload: ports.OperatorsPayload{Operators: e.roster.Names()},
	})

	e.logger.InfoContext(ctx, "Operator roster replaced", "operators", len(names))
	return nil
}

// Reset clears both partitions and the serial counters unconditionally. The
// roster survives. This is destructive and irreversible; gating who may
// invoke it is the transport boundary's job. The empty state is persisted
// and a full-state event reflecting it is published.
func (e *Engine) Reset(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.set.Clear()
	e.serials.Reset()

	e.persist(ctx)
	e.publisher.Publish(ports.Event{Type: ports.EventFullState, Payload: e.fullState()})

	e.logger.InfoContext(ctx, "All orders reset")
	return nil
}

// Snapshot returns a consistent copy of both partitions plus the roster.
// Late joiners, queries, and the periodic resync all read through here.
func (e *Engine) Snapshot() ports.FullStatePayload {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.fullState()
}

// fullState builds the full-state payload. Callers hold e.mu.
func (e *Engine) fullState() ports.FullStatePayload {
	return ports.FullStatePayload{
		Active:    e.set.ActiveDocs(),
		Archived:  e.set.ArchivedDocs(),
		Operators: e.roster.Names(),
	}
}

// publishActiveList emits the complete active partition. Callers hold e.mu.
func (e *Engine) publishActiveList() {
	e.publisher.Publish(ports.Event{
		Type:    ports.EventActiveListChanged,
		Payload: ports.ActiveListPayload{Active: e.set.ActiveDocs()},
	})
}

// persist rewrites the whole store. A failed write is logged and otherwise
// swallowed: the in-memory state remains authoritative for the running
// process and durability is lost for this write only. Callers hold e.mu.
func (e *Engine) persist(ctx context.Context) {
	state := ports.StoreState{
		Active:    e.set.ActiveDocs(),
		Archived:  e.set.ArchivedDocs(),
		Operators: e.roster.Names(),
	}

	if err := e.store.Save(ctx, state); err != nil {
		e.logger.ErrorContext(ctx, "State not persisted, serving from memory", "error", err)
	}
}

// resolveID adopts the origin system's id or generates one when absent.
func (e *Engine) resolveID(id string) kernel.OrderID {
	if id == "" {
		return e.newID()
	}

	orderID, err := kernel.OrderIDFromString(id)
	if err != nil {
		// unreachable: id is non-empty
		return e.newID()
	}
	return orderID
}

// storeCounter seeds the serial allocator from the store's archived-count
// query, falling back to the in-memory archive when the store is
// unavailable. It is only invoked from SubmitMeasurement while the engine
// mutex is held, so reading the set here is safe.
type storeCounter struct {
	engine *Engine
}

func (c storeCounter) ArchivedCountByDrawing(ctx context.Context, drawingNumber string) int {
	count, err := c.engine.store.CountArchivedByDrawing(ctx, drawingNumber)
	if err != nil {
		c.engine.logger.WarnContext(ctx, "Archived count query failed, seeding serials from memory",
			"drawing", drawingNumber, "error", err)
		return c.engine.set.CountArchivedByDrawing(drawingNumber)
	}
	return count
}
