package store

import "fmt"

// NotFoundError reports a missing record key.
type NotFoundError struct {
	Collection string
	Key        string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("record %q not found in collection %q", e.Key, e.Collection)
}

// DuplicateKeyError reports a create against an existing primary key
// (or a violated unique index).
type DuplicateKeyError struct {
	Collection string
	Key        string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key %q in collection %q", e.Key, e.Collection)
}

// CollectionNotFoundError reports an operation against a collection that was
// never created by a migration.
type CollectionNotFoundError struct {
	Collection string
}

func (e *CollectionNotFoundError) Error() string {
	return fmt.Sprintf("collection %q not found", e.Collection)
}

// IndexNotFoundError reports a lookup against an undeclared index.
type IndexNotFoundError struct {
	Collection string
	Index      string
}

func (e *IndexNotFoundError) Error() string {
	return fmt.Sprintf("index %q not found on collection %q", e.Index, e.Collection)
}

// ValidationError rejects an operation whose input violates a domain rule.
// The whole operation fails with no partial mutation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Reason
}

// MigrationError is fatal at open time; the caller receives no usable handle.
// The store is left at the last successfully-applied version.
type MigrationError struct {
	Version int
	Err     error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration to version %d failed: %v", e.Version, e.Err)
}

func (e *MigrationError) Unwrap() error { return e.Err }

// TransactionAbortedError reports a conflict or I/O failure from the
// underlying medium. The logical operation committed nothing and is safe to
// retry as a whole.
type TransactionAbortedError struct {
	Err error
}

func (e *TransactionAbortedError) Error() string {
	return fmt.Sprintf("transaction aborted: %v", e.Err)
}

func (e *TransactionAbortedError) Unwrap() error { return e.Err }
