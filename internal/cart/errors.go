package cart

import (
	"fmt"

	"github.com/utafrali/storefront/internal/domain"
)

// OperationError is returned when a cart operation could not be committed.
// Message is the text shown to the shopper.
type OperationError struct {
	Op        domain.CartOp
	ProductID int
	Message   string
	Err       error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("cart %s product %d: %v", e.Op, e.ProductID, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
