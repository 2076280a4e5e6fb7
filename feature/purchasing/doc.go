// Package purchasing implements purchase orders and the receiving engine.
//
// Receiving reconciles supplier-reported delivery quantities against the
// ordered quantities: received amounts accumulate (never regress), may never
// exceed the ordered quantity, and every received line produces its own
// inventory batch. Order status is derived purely from the items
// (complete/partial) and follows the state machine
//
//	draft → sent → {partial ⇄ partial, complete}
//	sent → cancelled ; partial → cancelled
//
// with complete and cancelled terminal. External callers can only drive
// draft→sent and the cancellations; partial/complete belong to receiving.
//
// ReceiveItems runs as one store transaction, so a rejected or failed receipt
// leaves the order and all products untouched and the request can be retried
// as-is.
package purchasing
