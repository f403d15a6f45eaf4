package cart

import "errors"

var (
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 99")
	ErrMalformedCart   = errors.New("malformed cart snapshot")
)
