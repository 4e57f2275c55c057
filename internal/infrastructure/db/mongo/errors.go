package mongo

import (
	"fmt"

	"github.com/99minutos/auth-service/internal/core/domain"
)

// storeError wraps a driver failure as domain.ErrUnavailable so callers never
// confuse a timeout or lost connection with a missing document.
func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrUnavailable, err)
}
