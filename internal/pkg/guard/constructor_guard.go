// Package guard provides ConstructorGuard, a marker embedded in value objects,
// entities and commands so that zero values built with a struct literal can be
// told apart from instances created by their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether its owner went through a constructor.
//
// Example usage:
//
//	var ErrSkuNotConstructed = errors.New("ProductSku must be created via NewProductSku")
//
//	type ProductSku struct {
//	    value string
//	    guard guard.ConstructorGuard
//	}
//
//	func (s ProductSku) Validate() error {
//	    return s.guard.Validate(ErrSkuNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed. Call it only from constructors.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the owner was not created through its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
