package commands

import (
	"errors"
	"time"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

const MaxExpireBatchSize = 500

var (
	ErrExpirePendingOrdersCommandIsNotConstructed = errors.New(
		"ExpirePendingOrdersCommand must be created via NewExpirePendingOrdersCommand constructor",
	)
)

// ExpirePendingOrdersCommand cancels orders that stayed PENDING and unpaid since before cutoff.
// It is issued periodically by the pending order expiry job.
type ExpirePendingOrdersCommand struct { //nolint:recvcheck //using for validation
	cutoff time.Time
	limit  int

	guard guard.ConstructorGuard
}

func NewExpirePendingOrdersCommand(cutoff time.Time, limit int) (ExpirePendingOrdersCommand, error) {
	cmd := ExpirePendingOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(cmd.setCutoff(cutoff), cmd.setLimit(limit)); err != nil {
		return ExpirePendingOrdersCommand{}, err
	}

	return cmd, nil
}

func (c ExpirePendingOrdersCommand) Validate() error {
	return c.guard.Validate(ErrExpirePendingOrdersCommandIsNotConstructed)
}

func (c ExpirePendingOrdersCommand) Cutoff() time.Time { return c.cutoff }
func (c ExpirePendingOrdersCommand) Limit() int        { return c.limit }

func (c *ExpirePendingOrdersCommand) setCutoff(cutoff time.Time) error {
	if cutoff.IsZero() {
		return errs.NewValueIsRequiredError("cutoff")
	}
	c.cutoff = cutoff.UTC()
	return nil
}

func (c *ExpirePendingOrdersCommand) setLimit(limit int) error {
	if limit < 1 || limit > MaxExpireBatchSize {
		return errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxExpireBatchSize)
	}
	c.limit = limit
	return nil
}
