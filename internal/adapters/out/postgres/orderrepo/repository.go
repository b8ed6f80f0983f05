package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id order.OrderID, aggregate *order.Order)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order together with its details.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewValueIsDuplicateError("order", aggregate.Code().String())
		}
		return fmt.Errorf("insert order %s: %w", aggregate.ID(), err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the order row guarded by its version and replaces its details.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":                  dto.Status,
			"payment_status":          dto.PaymentStatus,
			"total_amount":            dto.Total.Amount,
			"total_currency":          dto.Total.Currency,
			"shipping_fee_amount":     dto.ShippingFee.Amount,
			"shipping_fee_currency":   dto.ShippingFee.Currency,
			"discount_amount":         dto.DiscountAmount,
			"discount_currency":       dto.DiscountCurrency,
			"receiver_name":           dto.ReceiverName,
			"receiver_phone":          dto.ReceiverPhone,
			"shipping_receiver_name":  dto.Address.ReceiverName,
			"shipping_receiver_phone": dto.Address.ReceiverPhone,
			"shipping_street":         dto.Address.Street,
			"shipping_ward":           dto.Address.Ward,
			"shipping_district":       dto.Address.District,
			"shipping_city":           dto.Address.City,
			"note":                    dto.Note,
			"updated_at":              dto.UpdatedAt,
			"version":                 gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return fmt.Errorf("update order %s: %w", aggregate.ID(), result.Error)
	}

	if result.RowsAffected == 0 {
		return r.conflictOrMissing(ctx, aggregate)
	}

	if err = db.Where("order_id = ?", dto.ID).Delete(&OrderDetailDTO{}).Error; err != nil {
		return fmt.Errorf("delete details of order %s: %w", aggregate.ID(), err)
	}
	if err = db.Create(&dto.Details).Error; err != nil {
		return fmt.Errorf("insert details of order %s: %w", aggregate.ID(), err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID with its details.
func (r *GormOrderRepository) Get(ctx context.Context, id order.OrderID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withDetails(ctx).First(&dto, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListByUser retrieves the orders of one customer, newest first.
func (r *GormOrderRepository) ListByUser(ctx context.Context, userID order.CustomerID) ([]*order.Order, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	if err := r.withDetails(ctx).
		Where("user_id = ?", userID.String()).
		Order("created_at DESC, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// ListPendingUnpaidCreatedBefore retrieves stale PENDING orders with a PENDING payment, oldest first.
func (r *GormOrderRepository) ListPendingUnpaidCreatedBefore(
	ctx context.Context,
	cutoff time.Time,
	limit int,
) ([]*order.Order, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}

	var dtos []OrderDTO
	if err := r.withDetails(ctx).
		Where("status = ? AND payment_status = ? AND created_at < ?",
			order.StatusPending.String(), order.PaymentStatusPending.String(), cutoff).
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func (r *GormOrderRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Details", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at, id")
	})
}

// conflictOrMissing tells a stale version apart from a deleted row after an update matched nothing.
func (r *GormOrderRepository) conflictOrMissing(ctx context.Context, aggregate *order.Order) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", aggregate.ID().String()).
		Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return errs.NewVersionIsInvalidError("order", aggregate.Version())
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
