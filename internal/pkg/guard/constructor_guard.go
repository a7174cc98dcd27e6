// Package guard provides a lightweight mechanism for enforcing that domain
// objects are created through their constructors rather than as zero values.
//
// A ConstructorGuard is embedded (by value) into commands and queries. The
// constructor sets the guard, and Validate reports the object-specific error
// for any instance that bypassed the constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no object-specific
// error is provided for an unconstructed instance.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed.
// The zero value is invalid; obtain one via NewConstructorGuard.
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard creates a guard marking its holder as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns nil for a properly constructed guard. For a zero-value
// guard it returns notConstructed, or ErrDefaultConstructorGuard when
// notConstructed is nil.
func (g ConstructorGuard) Validate(notConstructed error) error {
	if g.constructed {
		return nil
	}
	if notConstructed == nil {
		return ErrDefaultConstructorGuard
	}
	return notConstructed
}
