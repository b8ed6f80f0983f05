package queries

import (
	"errors"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/guard"
)

var (
	ErrListUserOrdersQueryIsNotConstructed = errors.New(
		"ListUserOrdersQuery must be created via NewListUserOrdersQuery constructor",
	)
)

// ListUserOrdersQuery retrieves the summaries of every order placed by one customer.
type ListUserOrdersQuery struct {
	userID order.CustomerID
	guard  guard.ConstructorGuard
}

func NewListUserOrdersQuery(userID string) (ListUserOrdersQuery, error) {
	id, err := order.NewCustomerID(userID)
	if err != nil {
		return ListUserOrdersQuery{}, err
	}

	return ListUserOrdersQuery{
		userID: id,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListUserOrdersQuery) UserID() order.CustomerID {
	return q.userID
}

func (q ListUserOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListUserOrdersQueryIsNotConstructed)
}
