// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order aggregate, handling
// the conversion between domain entities and the orders / order_details tables.
package orderrepo

import (
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Statuses are stored by name; totalAmount is stored for reporting but always
// recomputed when the aggregate is rebuilt.
type OrderDTO struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID           string           `gorm:"size:50;not null;index"`
	Code             string           `gorm:"size:50;not null;uniqueIndex"`
	Status           string           `gorm:"size:20;not null;index:idx_orders_status_payment"`
	PaymentStatus    string           `gorm:"size:20;not null;index:idx_orders_status_payment"`
	Total            MoneyDTO         `gorm:"embedded;embeddedPrefix:total_"`
	ShippingFee      MoneyDTO         `gorm:"embedded;embeddedPrefix:shipping_fee_"`
	DiscountAmount   *decimal.Decimal `gorm:"type:numeric"`
	DiscountCurrency *string          `gorm:"type:char(3)"`
	ReceiverName     string           `gorm:"size:255;not null"`
	ReceiverPhone    string           `gorm:"size:20;not null"`
	Address          AddressDTO       `gorm:"embedded;embeddedPrefix:shipping_"`
	Note             string           `gorm:"type:text"`
	CreatedAt        time.Time        `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt        time.Time        `gorm:"not null;autoUpdateTime:false"`
	Version          int              `gorm:"not null;default:0"`
	Details          []OrderDetailDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderDetailDTO is one row of order_details.
type OrderDetailDTO struct {
	ID        string     `gorm:"size:50;primaryKey"`
	OrderID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	SkuID     string     `gorm:"size:50;not null"`
	Quantity  int        `gorm:"not null"`
	UnitPrice MoneyDTO   `gorm:"embedded;embeddedPrefix:unit_price_"`
	Product   ProductDTO `gorm:"embedded;embeddedPrefix:product_"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt time.Time  `gorm:"not null;autoUpdateTime:false"`
}

func (OrderDetailDTO) TableName() string {
	return "order_details"
}

// MoneyDTO stores a Money value as a fixed-point amount plus its currency code.
type MoneyDTO struct {
	Amount   decimal.Decimal `gorm:"type:numeric;not null"`
	Currency string          `gorm:"type:char(3);not null"`
}

type AddressDTO struct {
	ReceiverName  string `gorm:"size:255"`
	ReceiverPhone string `gorm:"size:20"`
	Street        string `gorm:"size:255"`
	Ward          string `gorm:"size:100"`
	District      string `gorm:"size:100"`
	City          string `gorm:"size:100"`
}

type ProductDTO struct {
	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"size:1000"`
	Category    string `gorm:"size:100"`
	Brand       string `gorm:"size:100"`
	Image       string `gorm:"size:500"`
	Sku         string `gorm:"size:50"`
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	id, err := uuid.Parse(aggregate.ID().String())
	if err != nil {
		return OrderDTO{}, err
	}

	details := aggregate.OrderDetails()
	detailDTOs := make([]OrderDetailDTO, 0, len(details))
	for _, d := range details {
		detailDTOs = append(detailDTOs, OrderDetailDTO{
			ID:        d.ID().String(),
			OrderID:   id,
			SkuID:     d.SkuID().String(),
			Quantity:  d.Quantity(),
			UnitPrice: moneyFromDomain(d.UnitPrice()),
			Product: ProductDTO{
				Name:        d.ProductDetail().Name(),
				Description: d.ProductDetail().Description(),
				Category:    d.ProductDetail().Category(),
				Brand:       d.ProductDetail().Brand(),
				Image:       d.ProductDetail().Image(),
				Sku:         d.ProductDetail().Sku(),
			},
			CreatedAt: d.CreatedAt(),
			UpdatedAt: d.UpdatedAt(),
		})
	}

	dto := OrderDTO{
		ID:            id,
		UserID:        aggregate.UserID().String(),
		Code:          aggregate.Code().String(),
		Status:        aggregate.Status().String(),
		PaymentStatus: aggregate.PaymentStatus().String(),
		Total:         moneyFromDomain(aggregate.TotalAmount()),
		ShippingFee:   moneyFromDomain(aggregate.ShippingFee()),
		ReceiverName:  aggregate.ReceiverName(),
		ReceiverPhone: aggregate.ReceiverPhone(),
		Address: AddressDTO{
			ReceiverName:  aggregate.ShippingAddress().ReceiverName(),
			ReceiverPhone: aggregate.ShippingAddress().ReceiverPhone(),
			Street:        aggregate.ShippingAddress().Street(),
			Ward:          aggregate.ShippingAddress().Ward(),
			District:      aggregate.ShippingAddress().District(),
			City:          aggregate.ShippingAddress().City(),
		},
		Note:      aggregate.Note(),
		CreatedAt: aggregate.CreatedAt(),
		UpdatedAt: aggregate.UpdatedAt(),
		Version:   aggregate.Version(),
		Details:   detailDTOs,
	}

	if discount := aggregate.Discount(); discount != nil {
		amount := discount.Amount()
		currency := discount.Currency().String()
		dto.DiscountAmount = &amount
		dto.DiscountCurrency = &currency
	}

	return dto, nil
}

// toDomain rebuilds the aggregate with its persisted lifecycle state using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := order.OrderIDFromString(dto.ID.String())
	if err != nil {
		return nil, err
	}

	status, statusErr := order.ParseStatus(dto.Status)
	paymentStatus, paymentErr := order.ParsePaymentStatus(dto.PaymentStatus)
	shippingFee, feeErr := moneyToDomain(dto.ShippingFee)
	address, addressErr := order.NewShippingAddress(
		dto.Address.ReceiverName, dto.Address.ReceiverPhone,
		dto.Address.Street, dto.Address.City, dto.Address.District, dto.Address.Ward,
	)
	if err = errors.Join(statusErr, paymentErr, feeErr, addressErr); err != nil {
		return nil, err
	}

	var discount *kernel.Money
	if dto.DiscountAmount != nil && dto.DiscountCurrency != nil {
		d, discountErr := kernel.NewMoney(*dto.DiscountAmount, *dto.DiscountCurrency)
		if discountErr != nil {
			return nil, discountErr
		}
		discount = &d
	}

	details := make([]order.OrderDetail, 0, len(dto.Details))
	for _, d := range dto.Details {
		detail, detailErr := detailToDomain(d)
		if detailErr != nil {
			return nil, detailErr
		}
		details = append(details, detail)
	}

	return order.RestoreOrder(order.RestoreParams{
		ID:              id,
		UserID:          dto.UserID,
		Code:            dto.Code,
		Status:          status,
		PaymentStatus:   paymentStatus,
		ShippingAddress: address,
		ReceiverName:    dto.ReceiverName,
		ReceiverPhone:   dto.ReceiverPhone,
		OrderDetails:    details,
		ShippingFee:     shippingFee,
		Discount:        discount,
		Note:            dto.Note,
		CreatedAt:       dto.CreatedAt.UTC(),
		UpdatedAt:       dto.UpdatedAt.UTC(),
		Version:         dto.Version,
	})
}

func detailToDomain(dto OrderDetailDTO) (order.OrderDetail, error) {
	id, err := order.OrderDetailIDFromString(dto.ID)
	if err != nil {
		return order.OrderDetail{}, err
	}

	unitPrice, err := moneyToDomain(dto.UnitPrice)
	if err != nil {
		return order.OrderDetail{}, err
	}

	product, err := order.NewProductDetail(order.ProductDetailParams{
		Name:        dto.Product.Name,
		Description: dto.Product.Description,
		Category:    dto.Product.Category,
		Brand:       dto.Product.Brand,
		Image:       dto.Product.Image,
		Sku:         dto.Product.Sku,
	})
	if err != nil {
		return order.OrderDetail{}, err
	}

	return order.RestoreOrderDetail(
		id, dto.OrderID.String(), dto.SkuID, dto.Quantity, unitPrice, product,
		dto.CreatedAt.UTC(), dto.UpdatedAt.UTC(),
	)
}

func moneyFromDomain(m kernel.Money) MoneyDTO {
	return MoneyDTO{Amount: m.Amount(), Currency: m.Currency().String()}
}

func moneyToDomain(dto MoneyDTO) (kernel.Money, error) {
	return kernel.NewMoney(dto.Amount, dto.Currency)
}
