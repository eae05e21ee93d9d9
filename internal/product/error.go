package product

import "errors"

var (
	// ErrLoadFailed is the "unable to load" signal. Callers must not treat it
	// as an empty catalog.
	ErrLoadFailed      = errors.New("unable to load products")
	ErrProductNotFound = errors.New("product not found")
)
