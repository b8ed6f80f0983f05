// Package queries contains read-only operations of the ordering service.
// Handlers read the orders tables directly with SQL and return order.Summary projections.
package queries

import (
	"errors"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var (
	ErrGetOrderSummaryQueryIsNotConstructed = errors.New(
		"GetOrderSummaryQuery must be created via NewGetOrderSummaryQuery constructor",
	)
)

// GetOrderSummaryQuery retrieves the summary of one order.
//
// Example:
//
//	query, err := NewGetOrderSummaryQuery("3f2504e0-4f89-41d3-9a0c-0305e82c3301")
//	if err != nil {
//	    return err
//	}
//
//	summary, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get order summary: %w", err)
//	}
//	fmt.Printf("%s: %s, %s\n", summary.Code, summary.Status, summary.TotalAmount)
type GetOrderSummaryQuery struct {
	orderID order.OrderID
	guard   guard.ConstructorGuard
}

// NewGetOrderSummaryQuery parses orderID and creates the query.
func NewGetOrderSummaryQuery(orderID string) (GetOrderSummaryQuery, error) {
	id, err := order.OrderIDFromString(orderID)
	if err != nil {
		return GetOrderSummaryQuery{}, err
	}

	return GetOrderSummaryQuery{
		orderID: id,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderSummaryQuery) OrderID() order.OrderID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
func (q GetOrderSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderSummaryQueryIsNotConstructed)
}
