package ports

import (
	"context"

	"ordering/internal/core/domain/model/order"
)

// OrderSummaryCache stores order summaries keyed by order id.
// A miss is reported as (Summary{}, false, nil).
type OrderSummaryCache interface {
	GetSummary(ctx context.Context, orderID string) (order.Summary, bool, error)
	SetSummary(ctx context.Context, summary order.Summary) error
}
