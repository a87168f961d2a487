package wishlist

import "errors"

var (
	// ErrAlreadyInWishlist signals the set semantics of a wishlist: adding
	// a saved product again is an expected business outcome, not a system
	// failure.
	ErrAlreadyInWishlist = errors.New("item already in wishlist")

	ErrMissingProduct = errors.New("product id is required")

	ErrFailedLoad   = errors.New("failed to load wishlist")
	ErrFailedSave   = errors.New("failed to save wishlist item")
	ErrFailedRemove = errors.New("failed to remove wishlist item")
	ErrFailedClear  = errors.New("failed to clear wishlist")
)
