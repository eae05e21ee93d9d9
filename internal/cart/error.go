package cart

import "errors"

var (
	// -- Invariant violations (caller bugs, rejected rather than clamped) --
	ErrInvalidQuantity = errors.New("invalid cart quantity")
	ErrInvalidPrice    = errors.New("invalid unit price")
	ErrInvalidProduct  = errors.New("invalid product")

	// -- Resource state --
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrOutOfStock        = errors.New("product is out of stock")
	ErrInsufficientStock = errors.New("insufficient stock")

	// -- Persistence --
	ErrCorruptCart = errors.New("persisted cart is unreadable")
)
