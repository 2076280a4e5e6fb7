// Package orders backs the customer orders collection.
//
// The order workflow (checkout, fulfilment) lives in an external service; this
// feature only exposes the collection's keyed CRUD and its user_id/status
// index scans, minting order codes on creation.
package orders
