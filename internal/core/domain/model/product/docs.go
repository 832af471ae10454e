// Package product contains the Product aggregate: a store-owned catalog
// entry whose stock is reserved at order placement and released on
// cancellation. Reservations are capped per order; releases are not.
package product
