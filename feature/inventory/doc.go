// Package inventory implements batch (lot) tracking and stock aggregation.
//
// Physical stock is a set of batches per product, each with its own quantity
// and expiry date. Batches come from manual admin entry or from purchase-order
// receiving and are never merged or auto-deleted: stock summaries derive
// on-hand and expired quantities at read time.
package inventory
