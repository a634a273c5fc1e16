package cart

import "errors"

var (
	// -- Resource State --
	ErrCartNotFound     = errors.New("cart not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrProductNotFound  = errors.New("product not found")

	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("invalid cart quantity")
)
