// Package postgres provides the GORM-based Unit of Work used by order command handlers.
//
// Each UnitOfWork wraps one database transaction. Orders added or updated through
// its repository are tracked and, once the transaction commits, handed to every
// registered ports.OrderChangeListener (summary cache, event publisher).
//
// Basic usage:
//
//	factory := NewGormUnitOfWorkFactory(db, listeners, logger)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.OrderRepository().Add(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// A UnitOfWork is not safe for concurrent use; create one per command.
package postgres

import (
	"context"
	"log/slog"

	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an order written during the unit of work.
type trackedAggregate struct {
	ID        order.OrderID
	Aggregate *order.Order
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool
// and one set of change listeners.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	listeners []ports.OrderChangeListener
	logger    *slog.Logger
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// listeners may be empty; logger defaults to slog.Default().
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, []ports.OrderChangeListener{cache, publisher}, logger)
func NewGormUnitOfWorkFactory(
	db *gorm.DB,
	listeners []ports.OrderChangeListener,
	logger *slog.Logger,
) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = slog.Default()
	}

	return &GormUnitOfWorkFactory{
		db:        db,
		listeners: listeners,
		logger:    logger,
	}
}

// Create produces a new UnitOfWork with its own transaction state and tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		listeners:         f.listeners,
		logger:            f.logger,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and remembers the orders
// written inside it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	listeners         []ports.OrderChangeListener
	logger            *slog.Logger
	trackedAggregates []trackedAggregate
}

// Begin starts a transaction. Calling Begin on an active unit of work is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit commits the transaction and then notifies listeners about every tracked order.
// Listener failures are logged and never turn a successful commit into an error.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	uow.notify(ctx)
	return nil
}

// Rollback discards the transaction and forgets tracked orders.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// OrderRepository returns a repository bound to the active transaction,
// or to the plain connection when no transaction was begun.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db, uow)
}

// TrackAggregate registers an order written within this unit of work.
// A later write of the same order replaces the earlier one.
func (uow *GormUnitOfWork) TrackAggregate(id order.OrderID, aggregate *order.Order) {
	for i, tracked := range uow.trackedAggregates {
		if tracked.ID.IsEqual(id) {
			uow.trackedAggregates[i].Aggregate = aggregate
			return
		}
	}

	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) notify(ctx context.Context) {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)

	for _, t := range tracked {
		for _, listener := range uow.listeners {
			if err := listener.OrderChanged(ctx, t.Aggregate); err != nil {
				uow.logger.WarnContext(ctx, "order change listener failed",
					slog.String("order_id", t.ID.String()),
					slog.Any("error", err))
			}
		}
	}
}
