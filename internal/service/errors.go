package service

import "errors"

var ErrNotFound = errors.New("not found")

var (
	// ErrNoSession means no live editing session exists for the order;
	// the caller must load the stage first.
	ErrNoSession = errors.New("no active session")

	// ErrStageOrder rejects submitting an order whose workflow has not
	// reached the delivery stage yet.
	ErrStageOrder = errors.New("order is not at the delivery stage")

	ErrDecode     = errors.New("decode")
	ErrValidation = errors.New("validation")
)
