package assignment

import "errors"

var (
	// ErrLastRow rejects removing a product's only assignment row.
	ErrLastRow = errors.New("last row for product cannot be removed")

	ErrUnknownRow  = errors.New("assignment row not found")
	ErrUnknownItem = errors.New("order item not found")
	ErrBadStatus   = errors.New("invalid row status")
)
