package services

import (
	"context"
	"fmt"
	"sync"
)

// NoDrawingPlaceholder is substituted for the drawing number when an order
// carries none, so even drawing-less parts receive well-formed serials.
const NoDrawingPlaceholder = "NO-DRAWING"

// ArchivedCounter supplies the seed for a drawing's serial counter: the
// number of already-archived orders with that drawing number. It is
// consulted once per drawing, on the first allocation after startup or
// reset.
type ArchivedCounter interface {
	ArchivedCountByDrawing(ctx context.Context, drawingNumber string) int
}

// SerialAllocator is a domain service that mints per-drawing sequential
// serial numbers of the form M-{drawingNumber}-{NNN}, where NNN is the
// 1-based sequence zero-padded to three digits.
//
// Counting existing archived rows on every allocation is a known race:
// two concurrent archivals of the same drawing would both count N and both
// mint serial N+1. SerialAllocator closes it by keeping one monotonic
// counter per drawing behind a mutex. The counter is seeded lazily from the
// ArchivedCounter and only incremented afterwards, so serials for a fixed
// drawing are strictly increasing no matter how callers interleave.
//
// Example usage:
//
//	allocator := services.NewSerialAllocator(counter)
//	serial := allocator.Next(ctx, "DRW-100") // "M-DRW-100-001"
//	serial = allocator.Next(ctx, "DRW-100")  // "M-DRW-100-002"
type SerialAllocator struct {
	mu      sync.Mutex
	counter ArchivedCounter

	// counts holds the number of serials handed out per drawing,
	// including the seed
	counts map[string]int
}

// NewSerialAllocator creates a SerialAllocator seeding from the given
// counter.
func NewSerialAllocator(counter ArchivedCounter) *SerialAllocator {
	return &SerialAllocator{
		counter: counter,
		counts:  make(map[string]int),
	}
}

// Next mints the next serial number for the drawing. Counting is keyed by
// the raw drawing number, empty included, so drawing-less orders share one
// sequence; only the formatted serial substitutes NoDrawingPlaceholder.
//
// Next is safe for concurrent use; two calls can never return the same
// serial.
func (a *SerialAllocator) Next(ctx context.Context, drawingNumber string) string {
	a.mu.Lock()
	defer a.mu.Unlock()

	count, seeded := a.counts[drawingNumber]
	if !seeded {
		count = a.counter.ArchivedCountByDrawing(ctx, drawingNumber)
	}

	count++
	a.counts[drawingNumber] = count

	label := drawingNumber
	if label == "" {
		label = NoDrawingPlaceholder
	}

	return fmt.Sprintf("M-%s-%03d", label, count)
}

// Reset forgets all counters. The next allocation per drawing re-seeds from
// the ArchivedCounter. Used by the engine's full reset, which empties the
// archive the counters were derived from.
func (a *SerialAllocator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.counts = make(map[string]int)
}
