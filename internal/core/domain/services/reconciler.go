package services

import (
	"metrology/internal/core/domain/model/operator"
	"metrology/internal/core/domain/model/order"
)

// ReconciledState is the repaired persisted state the engine adopts at
// startup.
type ReconciledState struct {
	// Active and Archived are the cleaned partitions, order preserved.
	Active   []order.Doc
	Archived []order.Doc

	// Operators is the roster, defaulted when the persisted one was
	// missing or empty.
	Operators []string

	// Repaired reports whether either partition shrank during repair.
	// When true the engine persists the cleaned state immediately, so a
	// corrupted or double-written store self-heals durably before any
	// client connects.
	Repaired bool
}

// Reconciler is a domain service that repairs raw persisted state before the
// engine accepts traffic. Stores can diverge through partial writes and
// double submissions: the same id twice in one partition, or an id present
// in both.
//
// Repair algorithm:
//  1. Deduplicate the active and archived lists independently by id,
//     keeping the first occurrence of each (stable, order-preserving).
//  2. Apply archive-wins conflict resolution: drop from the active
//     partition any id that also exists in the archived partition. An
//     archived record proves the measurement happened; the active twin is
//     a leftover.
//  3. Substitute the default roster when the persisted one is missing or
//     empty.
//
// Entries without an id are unrecoverable and dropped during step 1.
type Reconciler struct{}

// NewReconciler creates a new Reconciler instance.
func NewReconciler() Reconciler {
	return Reconciler{}
}

// Reconcile repairs the raw loaded state. The inputs are taken as loaded,
// duplicates and all; the result is safe to restore into the in-memory Set.
func (r Reconciler) Reconcile(active, archived []order.Doc, operators []string) ReconciledState {
	cleanArchived := dedupByID(archived)

	archivedIDs := make(map[string]bool, len(cleanArchived))
	for _, doc := range cleanArchived {
		archivedIDs[doc.ID] = true
	}

	cleanActive := make([]order.Doc, 0, len(active))
	for _, doc := range dedupByID(active) {
		if archivedIDs[doc.ID] {
			continue
		}
		cleanActive = append(cleanActive, doc)
	}

	if len(operators) == 0 {
		operators = operator.DefaultNames()
	}

	return ReconciledState{
		Active:    cleanActive,
		Archived:  cleanArchived,
		Operators: operators,
		Repaired:  len(cleanActive) != len(active) || len(cleanArchived) != len(archived),
	}
}

// dedupByID keeps the first occurrence of each id, preserving order.
// Entries with an empty id are dropped.
func dedupByID(docs []order.Doc) []order.Doc {
	seen := make(map[string]bool, len(docs))
	deduped := make([]order.Doc, 0, len(docs))

	for _, doc := range docs {
		if doc.ID == "" || seen[doc.ID] {
			continue
		}
		seen[doc.ID] = true
		deduped = append(deduped, doc)
	}

	return deduped
}
