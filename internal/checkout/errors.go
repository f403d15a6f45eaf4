package checkout

import "errors"

var (
	ErrUnauthenticated    = errors.New("sign in to place an order")
	ErrEmptyCart          = errors.New("cart is empty, nothing to checkout")
	ErrCheckoutInProgress = errors.New("checkout already in progress for this cart")
	ErrPaymentDeclined    = errors.New("payment declined")
	ErrPaymentUnavailable = errors.New("payment provider unavailable")
	ErrOrderWrite         = errors.New("failed to save order")
	ErrIllegalTransition  = errors.New("illegal transition of checkout state")

	// errAbandoned marks a charge cut short because the caller went away.
	errAbandoned = errors.New("checkout abandoned by caller")
)
