package commands

import (
	"errors"
	"fmt"
	"strings"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var (
	ErrTransitionOrderCommandIsNotConstructed = errors.New(
		"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
	)
)

// Action names a lifecycle step of an order.
type Action string

const (
	ActionConfirm           Action = "confirm"
	ActionShip              Action = "ship"
	ActionDeliver           Action = "deliver"
	ActionCancel            Action = "cancel"
	ActionMarkPaid          Action = "mark_paid"
	ActionMarkPaymentFailed Action = "mark_payment_failed"
)

// Actions lists every supported action.
func Actions() []Action {
	return []Action{
		ActionConfirm, ActionShip, ActionDeliver, ActionCancel, ActionMarkPaid, ActionMarkPaymentFailed,
	}
}

// ParseAction converts a raw action name, case-insensitively.
func ParseAction(raw string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(raw)))
	if _, err := a.mutation(); err != nil {
		return "", err
	}
	return a, nil
}

func (a Action) String() string { return string(a) }

// mutation maps the action to the Order lifecycle method it drives.
func (a Action) mutation() (orderMutation, error) {
	switch a {
	case ActionConfirm:
		return (*order.Order).Confirm, nil
	case ActionShip:
		return (*order.Order).Ship, nil
	case ActionDeliver:
		return (*order.Order).Deliver, nil
	case ActionCancel:
		return (*order.Order).Cancel, nil
	case ActionMarkPaid:
		return (*order.Order).MarkAsPaid, nil
	case ActionMarkPaymentFailed:
		return (*order.Order).MarkPaymentAsFailed, nil
	}
	return nil, errs.NewValueIsInvalidErrorWithCause("action", fmt.Errorf("%q is not a supported action", string(a)))
}

// TransitionOrderCommand asks for one lifecycle step on an existing order.
//
// Example:
//
//	cmd, err := NewTransitionOrderCommand(orderID, ActionConfirm)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID order.OrderID
	action  Action

	guard guard.ConstructorGuard
}

func NewTransitionOrderCommand(orderID order.OrderID, action Action) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAction(action),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) OrderID() order.OrderID { return c.orderID }
func (c TransitionOrderCommand) Action() Action         { return c.action }

func (c *TransitionOrderCommand) setOrderID(orderID order.OrderID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setAction(action Action) error {
	if _, err := action.mutation(); err != nil {
		return err
	}
	c.action = action
	return nil
}
