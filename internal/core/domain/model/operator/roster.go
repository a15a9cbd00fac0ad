// Package operator provides the operator roster for the metrology system.
// Operators are the humans who record measurement results at the stations;
// the roster is the globally shared, ordered list of their display names.
//
// The roster is a value object mutated only as a whole: callers replace it,
// never patch it. An empty roster is legal (clients must render an empty
// operator list gracefully), but a missing or malformed persisted roster is
// substituted by a non-empty default so a fresh installation always offers
// at least one selectable name.
package operator

// DefaultNames is the roster substituted when persisted state carries no
// usable roster.
func DefaultNames() []string {
	return []string{"Admin"}
}

// Roster is an ordered sequence of operator display names.
// The zero value is a valid, empty roster.
//
// Roster is immutable: constructors and accessors copy the underlying
// slice, so a Roster handed across goroutines can never be mutated
// through an aliased slice.
type Roster struct {
	names []string
}

// NewRoster creates a roster from the given display names, preserving order.
// No further validation is applied: empty rosters and duplicate names are
// accepted, since the roster is display data owned by the operators
// themselves.
func NewRoster(names []string) Roster {
	if len(names) == 0 {
		return Roster{}
	}

	copied := make([]string, len(names))
	copy(copied, names)
	return Roster{names: copied}
}

// DefaultRoster returns the non-empty fallback roster.
func DefaultRoster() Roster {
	return NewRoster(DefaultNames())
}

// Names returns a copy of the display names in roster order.
// Returns an empty (non-nil) slice for an empty roster so JSON encoders
// emit [] rather than null.
func (r Roster) Names() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// IsEmpty reports whether the roster contains no names.
func (r Roster) IsEmpty() bool {
	return len(r.names) == 0
}
