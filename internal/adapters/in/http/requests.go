package http

import (
	"errors"

	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type MoneyRequest struct {
	Amount   *decimal.Decimal `json:"amount"   validate:"required"`
	Currency string           `json:"currency" validate:"required,currency"`
}

type AddressRequest struct {
	ReceiverName  string `json:"receiverName"  validate:"required,max=255"`
	ReceiverPhone string `json:"receiverPhone" validate:"required"`
	Street        string `json:"street"        validate:"required"`
	Ward          string `json:"ward"          validate:"required"`
	District      string `json:"district"      validate:"required"`
	City          string `json:"city"          validate:"required"`
}

type ProductRequest struct {
	Name        string `json:"name"        validate:"required,max=255"`
	Description string `json:"description" validate:"max=1000"`
	Category    string `json:"category"`
	Brand       string `json:"brand"`
	Image       string `json:"image"`
	Sku         string `json:"sku"`
}

type ItemRequest struct {
	SkuID     string         `json:"skuId"     validate:"required,max=50"`
	Quantity  int            `json:"quantity"  validate:"required,min=1,max=1000"`
	UnitPrice MoneyRequest   `json:"unitPrice"`
	Product   ProductRequest `json:"product"`
}

type CreateOrderRequest struct {
	UserID          string         `json:"userId"          validate:"required,max=50"`
	Code            string         `json:"code"            validate:"required,max=50"`
	ReceiverName    string         `json:"receiverName"    validate:"required"`
	ReceiverPhone   string         `json:"receiverPhone"   validate:"required"`
	ShippingAddress AddressRequest `json:"shippingAddress"`
	Items           []ItemRequest  `json:"items"           validate:"required,min=1,dive"`
	ShippingFee     MoneyRequest   `json:"shippingFee"`
	Discount        *MoneyRequest  `json:"discount"        validate:"omitempty"`
	Note            string         `json:"note"`
}

type UpdateShippingRequest struct {
	ShippingAddress *AddressRequest `json:"shippingAddress" validate:"omitempty"`
	ShippingFee     *MoneyRequest   `json:"shippingFee"     validate:"omitempty"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1,max=1000"`
}

type CreatedOrderResponse struct {
	OrderID string `json:"orderId"`
}

type CreatedOrderDetailResponse struct {
	OrderDetailID string `json:"orderDetailId"`
}

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RequestValidator adapts validator/v10 to echo.Validator.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		_, err := kernel.ParseCurrency(fl.Field().String())
		return err == nil
	})
	return &RequestValidator{validate: v}
}

func (v *RequestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

func (r MoneyRequest) toDomain() (kernel.Money, error) {
	if r.Amount == nil {
		return kernel.Money{}, errs.NewValueIsRequiredError("amount")
	}
	return kernel.NewMoney(*r.Amount, r.Currency)
}

func (r AddressRequest) toDomain() (order.ShippingAddress, error) {
	return order.NewShippingAddress(r.ReceiverName, r.ReceiverPhone, r.Street, r.City, r.District, r.Ward)
}

func (r ItemRequest) toDomain() (commands.OrderItem, error) {
	price, priceErr := r.UnitPrice.toDomain()
	product, productErr := order.NewProductDetail(order.ProductDetailParams{
		Name:        r.Product.Name,
		Description: r.Product.Description,
		Category:    r.Product.Category,
		Brand:       r.Product.Brand,
		Image:       r.Product.Image,
		Sku:         r.Product.Sku,
	})
	if err := errors.Join(priceErr, productErr); err != nil {
		return commands.OrderItem{}, err
	}

	return commands.NewOrderItem(r.SkuID, r.Quantity, price, product)
}

func (r CreateOrderRequest) toCommand() (commands.CreateOrderCommand, error) {
	address, addressErr := r.ShippingAddress.toDomain()
	fee, feeErr := r.ShippingFee.toDomain()

	items := make([]commands.OrderItem, 0, len(r.Items))
	var itemsErr error
	for _, raw := range r.Items {
		item, err := raw.toDomain()
		if err != nil {
			itemsErr = errors.Join(itemsErr, err)
			continue
		}
		items = append(items, item)
	}

	var (
		discount    *kernel.Money
		discountErr error
	)
	if r.Discount != nil {
		d, err := r.Discount.toDomain()
		discount, discountErr = &d, err
	}

	if err := errors.Join(addressErr, feeErr, itemsErr, discountErr); err != nil {
		return commands.CreateOrderCommand{}, err
	}

	return commands.NewCreateOrderCommand(commands.CreateOrderParams{
		UserID:          r.UserID,
		Code:            r.Code,
		ReceiverName:    r.ReceiverName,
		ReceiverPhone:   r.ReceiverPhone,
		ShippingAddress: address,
		Items:           items,
		ShippingFee:     fee,
		Discount:        discount,
		Note:            r.Note,
	})
}

func (r UpdateShippingRequest) toCommand(orderID order.OrderID) (commands.UpdateShippingCommand, error) {
	var (
		address *order.ShippingAddress
		fee     *kernel.Money
	)

	if r.ShippingAddress != nil {
		a, err := r.ShippingAddress.toDomain()
		if err != nil {
			return commands.UpdateShippingCommand{}, err
		}
		address = &a
	}

	if r.ShippingFee != nil {
		f, err := r.ShippingFee.toDomain()
		if err != nil {
			return commands.UpdateShippingCommand{}, err
		}
		fee = &f
	}

	return commands.NewUpdateShippingCommand(orderID, address, fee)
}
