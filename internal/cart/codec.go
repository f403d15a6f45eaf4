package cart

import (
	"encoding/json"
	"fmt"

	"github.com/fjod/storefront/internal/domain"
)

// Encode serializes lines in their current order.
func Encode(lines []domain.CartLine) ([]byte, error) {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("marshal cart failed: %w", err)
	}
	return data, nil
}

// Decode parses a persisted snapshot. A payload that parses but breaks the
// cart invariants is rejected as a whole.
func Decode(data []byte) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCart, err)
	}

	seen := make(map[int64]struct{}, len(lines))
	for _, l := range lines {
		if _, dup := seen[l.ProductID]; dup {
			return nil, fmt.Errorf("%w: duplicate product %d", ErrMalformedCart, l.ProductID)
		}
		seen[l.ProductID] = struct{}{}

		if l.Quantity < 1 {
			return nil, fmt.Errorf("%w: product %d has quantity %d", ErrMalformedCart, l.ProductID, l.Quantity)
		}
		if l.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: product %d has a negative price", ErrMalformedCart, l.ProductID)
		}
	}
	return lines, nil
}
