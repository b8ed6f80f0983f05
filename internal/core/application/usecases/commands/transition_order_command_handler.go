package commands

import (
	"context"
)

// TransitionObserver is told about every attempted lifecycle step and its outcome.
type TransitionObserver interface {
	ObserveTransition(action string, err error)
}

type noopTransitionObserver struct{}

func (noopTransitionObserver) ObserveTransition(string, error) {}

// TransitionOrderCommandHandler applies lifecycle steps to stored orders.
// Business guards live in the Order aggregate; the handler only loads, applies and saves.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	observer   TransitionObserver
}

// NewTransitionOrderCommandHandler creates the handler. observer may be nil.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	observer TransitionObserver,
) TransitionOrderCommandHandler {
	if observer == nil {
		observer = noopTransitionObserver{}
	}
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		observer:   observer,
	}
}

func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	mutate, err := cmd.Action().mutation()
	if err != nil {
		return err
	}

	err = modifyOrder(ctx, h.uowFactory, cmd.OrderID(), mutate)
	h.observer.ObserveTransition(cmd.Action().String(), err)
	return err
}
