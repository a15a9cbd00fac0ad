package order

import (
	"fmt"

	"metrology/internal/pkg/errs"
)

// Set is the aggregate holding every known order, partitioned into active
// and archived. Insertion order is preserved within each partition so that
// snapshots, broadcasts, and dedup semantics are stable across restarts.
//
// Set enforces the partition invariant: an id appears in at most one
// partition, and never twice within one. The Lifecycle Engine exclusively
// owns mutation of the Set; Set itself is not safe for concurrent use.
type Set struct {
	active   []*Order
	archived []*Order

	// index covers both partitions for O(1) dedup checks
	index map[string]*Order
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{
		index: make(map[string]*Order),
	}
}

// Has reports whether an order with the given id exists in either partition.
// This is the dedup check guarding against duplicate submissions from an
// upstream system retrying a request it believes failed.
func (s *Set) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Active returns the active order with the given id, or false if the id is
// unknown or already archived.
func (s *Set) Active(id string) (*Order, bool) {
	o, ok := s.index[id]
	if !ok || o.IsArchived() {
		return nil, false
	}
	return o, true
}

// AddActive inserts a newly created order into the active partition.
//
// Returns an error if the order is invalid, not in ACTIVE status, or its id
// already exists in either partition.
func (s *Set) AddActive(o *Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if o.IsArchived() {
		return errs.NewValueIsInvalidErrorWithCause("order status",
			fmt.Errorf("%s cannot enter the active partition", o.Status()))
	}

	if s.Has(o.ID().String()) {
		return errs.NewValueIsInvalidErrorWithCause("order id",
			fmt.Errorf("id %s already exists", o.ID()))
	}

	s.active = append(s.active, o)
	s.index[o.ID().String()] = o
	return nil
}

// AddArchived inserts an already-archived order into the archived partition.
// Used when restoring reconciled persisted state.
//
// Returns an error if the order is invalid, not in a terminal status, or its
// id already exists in either partition.
func (s *Set) AddArchived(o *Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	if !o.IsArchived() {
		return errs.NewValueIsInvalidErrorWithCause("order status",
			fmt.Errorf("%s cannot enter the archived partition", o.Status()))
	}

	if s.Has(o.ID().String()) {
		return errs.NewValueIsInvalidErrorWithCause("order id",
			fmt.Errorf("id %s already exists", o.ID()))
	}

	s.archived = append(s.archived, o)
	s.index[o.ID().String()] = o
	return nil
}

// MoveToArchived moves an order from the active to the archived partition.
// The order must already carry a terminal status: the caller completes the
// aggregate first, then moves it.
//
// Returns an error if the id is not in the active partition or the order is
// still ACTIVE.
func (s *Set) MoveToArchived(id string) error {
	o, ok := s.index[id]
	if !ok {
		return errs.NewObjectNotFoundError("order", id)
	}

	if !o.IsArchived() {
		return errs.NewValueIsInvalidErrorWithCause("order status",
			fmt.Errorf("order %s is still %s", id, o.Status()))
	}

	for i, active := range s.active {
		if active.ID().String() == id {
			s.active = append(s.active[:i], s.active[i+1:]...)
			s.archived = append(s.archived, o)
			return nil
		}
	}

	return errs.NewObjectNotFoundError("active order", id)
}

// CountArchivedByDrawing counts archived orders whose drawing number matches.
// This is the in-memory counterpart of the store query the Serial Allocator
// seeds from.
func (s *Set) CountArchivedByDrawing(drawingNumber string) int {
	count := 0
	for _, o := range s.archived {
		if o.DrawingNumber() == drawingNumber {
			count++
		}
	}
	return count
}

// ActiveDocs returns the active partition as canonical docs, in insertion
// order. The result is a fresh slice safe to hand across goroutines.
func (s *Set) ActiveDocs() []Doc {
	docs := make([]Doc, 0, len(s.active))
	for _, o := range s.active {
		docs = append(docs, o.Doc())
	}
	return docs
}

// ArchivedDocs returns the archived partition as canonical docs, in
// insertion order. The result is a fresh slice safe to hand across
// goroutines.
func (s *Set) ArchivedDocs() []Doc {
	docs := make([]Doc, 0, len(s.archived))
	for _, o := range s.archived {
		docs = append(docs, o.Doc())
	}
	return docs
}

// ActiveLen returns the number of active orders.
func (s *Set) ActiveLen() int {
	return len(s.active)
}

// ArchivedLen returns the number of archived orders.
func (s *Set) ArchivedLen() int {
	return len(s.archived)
}

// Clear removes every order from both partitions. This backs the explicit,
// operator-triggered full reset; there is no partial delete.
func (s *Set) Clear() {
	s.active = nil
	s.archived = nil
	s.index = make(map[string]*Order)
}
