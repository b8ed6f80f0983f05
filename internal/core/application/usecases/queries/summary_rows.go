package queries

import (
	"database/sql"
	"errors"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// summarySelect aggregates line totals in SQL; the subtotal currency follows
// the shipping fee currency, as in the aggregate.
const summarySelect = `
	SELECT
		o.id,
		o.user_id,
		o.code,
		o.status,
		o.payment_status,
		o.shipping_fee_amount,
		o.shipping_fee_currency,
		o.receiver_name,
		o.receiver_phone,
		o.created_at,
		COALESCE(SUM(d.unit_price_amount * d.quantity), 0) AS subtotal,
		COUNT(d.id) AS item_count
	FROM orders o
	LEFT JOIN order_details d ON d.order_id = o.id
`

func scanSummaries(rows *sql.Rows) ([]order.Summary, error) {
	summaries := make([]order.Summary, 0)

	for rows.Next() {
		var (
			id                  uuid.UUID
			s                   order.Summary
			feeAmount, subtotal decimal.Decimal
			feeCurrency         string
			createdAt           time.Time
		)

		err := rows.Scan(
			&id,
			&s.UserID,
			&s.Code,
			&s.Status,
			&s.PaymentStatus,
			&feeAmount,
			&feeCurrency,
			&s.ReceiverName,
			&s.ReceiverPhone,
			&createdAt,
			&subtotal,
			&s.ItemCount,
		)
		if err != nil {
			return nil, err
		}

		fee, feeErr := kernel.NewMoney(feeAmount, feeCurrency)
		sub, subErr := kernel.NewMoney(subtotal, feeCurrency)
		if err = errors.Join(feeErr, subErr); err != nil {
			return nil, err
		}

		total, totalErr := sub.Add(fee)
		if totalErr != nil {
			return nil, totalErr
		}

		s.OrderID = id.String()
		s.ShippingFee = fee.String()
		s.Subtotal = sub.String()
		s.TotalAmount = total.String()
		s.CreatedAt = createdAt.UTC()
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
