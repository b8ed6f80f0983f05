// Package order provides the Order aggregate of the ordering service together
// with its line items, value objects and state machines.
//
// The package includes:
//   - Order: the aggregate root owning the OrderDetail collection and the lifecycle
//   - OrderDetail: a line item, compared by id, matched by SKU
//   - Status and PaymentStatus: closed enums with their transition tables
//   - ShippingAddress and ProductDetail: immutable value objects
//   - OrderID, OrderDetailID, CustomerID, ProductSku, OrderNumber: identity wrappers
//   - Summary: the flat projection consumed by queries, caches and events
//
// Key business rules:
//   - an order always has at least one line item and SKUs are unique per order
//   - totalAmount is the sum of line totals plus the shipping fee, recomputed on every change
//   - line items and the shipping fee change only while the order is PENDING
//   - shipping requires a CONFIRMED and PAID order
//   - cancellation is allowed from any status except DELIVERED and CANCELLED
//
// Lifecycle methods never mutate the receiver; they return a new *Order.
package order
