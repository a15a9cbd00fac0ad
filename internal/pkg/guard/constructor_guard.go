// Package guard provides a lightweight mechanism for enforcing that domain
// objects and commands are created through their constructors rather than by
// zero-value instantiation.
//
// A ConstructorGuard embedded in a struct is only "armed" when the struct was
// built via a constructor that called NewConstructorGuard. Validation of a
// zero-value struct then fails with a caller-supplied error, which keeps
// invalid objects out of the rest of the system without reflection or
// code generation.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guard is a zero
// value and the caller did not supply a more specific error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed. The zero value is
// intentionally invalid; only NewConstructorGuard produces an armed guard.
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard returns an armed guard. Constructors store it in the
// object they build; zero-value objects carry an unarmed guard instead.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns nil when the guard is armed. For a zero-value guard it
// returns notConstructed, or ErrDefaultConstructorGuard when notConstructed
// is nil.
func (g ConstructorGuard) Validate(notConstructed error) error {
	if g.constructed {
		return nil
	}
	if notConstructed == nil {
		return ErrDefaultConstructorGuard
	}
	return notConstructed
}
