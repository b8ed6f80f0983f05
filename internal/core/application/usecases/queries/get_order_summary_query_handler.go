package queries

import (
	"context"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderSummaryQueryHandler reads an order summary through the summary cache.
// A cache miss or cache failure falls back to the database, and the loaded
// summary is written back to the cache.
//
// Example:
//
//	handler := NewGetOrderSummaryQueryHandler(db, redisCache)
//	summary, err := handler.Handle(ctx, query)
type GetOrderSummaryQueryHandler struct {
	db    *gorm.DB
	cache ports.OrderSummaryCache
}

// NewGetOrderSummaryQueryHandler creates the handler. cache may be nil.
func NewGetOrderSummaryQueryHandler(db *gorm.DB, cache ports.OrderSummaryCache) GetOrderSummaryQueryHandler {
	return GetOrderSummaryQueryHandler{db: db, cache: cache}
}

// Handle returns the summary or an ObjectNotFoundError.
func (h GetOrderSummaryQueryHandler) Handle(ctx context.Context, query GetOrderSummaryQuery) (order.Summary, error) {
	if err := query.Validate(); err != nil {
		return order.Summary{}, err
	}

	id := query.OrderID().String()
	if h.cache != nil {
		if cached, ok, err := h.cache.GetSummary(ctx, id); err == nil && ok {
			return cached, nil
		}
	}

	rows, err := h.db.WithContext(ctx).Raw(summarySelect+`
		WHERE o.id = ?
		GROUP BY o.id
	`, id).Rows()
	if err != nil {
		return order.Summary{}, err
	}
	defer rows.Close()

	summaries, err := scanSummaries(rows)
	if err != nil {
		return order.Summary{}, err
	}

	if len(summaries) == 0 {
		return order.Summary{}, errs.NewObjectNotFoundError("order", id)
	}

	if h.cache != nil {
		_ = h.cache.SetSummary(ctx, summaries[0])
	}

	return summaries[0], nil
}
