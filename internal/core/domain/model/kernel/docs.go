// Package kernel provides the shared monetary primitives of the ordering domain.
//
// The package includes:
//   - Currency: an ISO-4217 code restricted to a closed allow-list
//   - Money: an immutable, non-negative decimal amount with currency-safe arithmetic
//
// Money is built on github.com/shopspring/decimal so that prices and totals never
// suffer binary floating point rounding. Values are immutable; every operation
// returns a new instance and is safe for concurrent use.
package kernel
