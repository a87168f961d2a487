package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("invalid cart quantity")
	ErrMissingProduct  = errors.New("product id is required")

	// -- Persistence --
	ErrFailedLoadCart  = errors.New("failed to load cart")
	ErrFailedSaveCart  = errors.New("failed to save cart item")
	ErrFailedRemove    = errors.New("failed to remove cart item")
	ErrFailedClearCart = errors.New("failed to clear cart")
)
