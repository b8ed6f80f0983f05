package commands

import (
	"context"
)

// ExpirePendingOrdersCommandHandler cancels a batch of stale unpaid orders in one transaction.
type ExpirePendingOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewExpirePendingOrdersCommandHandler(uowFactory OrderUoWFactory) ExpirePendingOrdersCommandHandler {
	return ExpirePendingOrdersCommandHandler{uowFactory: uowFactory}
}

// Handle returns the number of cancelled orders.
func (h *ExpirePendingOrdersCommandHandler) Handle(ctx context.Context, cmd ExpirePendingOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	stale, err := repo.ListPendingUnpaidCreatedBefore(ctx, cmd.Cutoff(), cmd.Limit())
	if err != nil {
		return 0, err
	}

	if len(stale) == 0 {
		return 0, nil
	}

	for _, current := range stale {
		cancelled, cancelErr := current.Cancel()
		if cancelErr != nil {
			return 0, cancelErr
		}

		if err = repo.Update(ctx, cancelled); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(stale), nil
}
