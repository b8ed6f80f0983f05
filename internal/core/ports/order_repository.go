package ports

import (
	"context"
	"time"

	"ordering/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Order details are stored and loaded together with their order.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists a changed order aggregate.
	// The write is accepted only if the stored row still carries aggregate.Version();
	// otherwise a VersionIsInvalidError is returned and nothing is written.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate with its persisted status, payment status and version.
	// Returns ObjectNotFoundError when no order has the given id.
	Get(ctx context.Context, id order.OrderID) (*order.Order, error)

	// ListByUser retrieves the orders of one customer, newest first.
	ListByUser(ctx context.Context, userID order.CustomerID) ([]*order.Order, error)

	// ListPendingUnpaidCreatedBefore retrieves at most limit orders that are still
	// PENDING with a PENDING payment and were created before cutoff, oldest first.
	ListPendingUnpaidCreatedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*order.Order, error)
}
