package checkout

import "errors"

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrCartEmpty    = errors.New("cart is empty")

	// ErrCheckoutFailed wraps a payment failure after the compensating
	// order delete has completed.
	ErrCheckoutFailed = errors.New("checkout failed")

	// ErrCompensationFailed means the order could not be deleted after a
	// payment failure: a PENDING order is stuck in the store. Surfaced
	// distinctly so operators can detect it.
	ErrCompensationFailed = errors.New("failed to roll back order after payment failure")
)
