package order

import "errors"

var (
	// -- Validation & Input --
	ErrMissingField  = errors.New("missing required order field")
	ErrUnknownStatus = errors.New("unknown order status")

	// -- Resource State --
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order status transition")

	// -- Authorization --
	ErrForbidden = errors.New("cannot access others' orders")
)
