// Package store implements the embedded, schema-versioned object store.
//
// It wraps GORM (Go Object Relational Mapping) to provide named collections with
// declared secondary indexes, a versioned migrator, generic CRUD accessors and
// monotonic code sequences. SQLite is the default (embedded) medium; MySQL is
// supported for server deployments via the same Config.
//
// # Lifecycle
//
// A Store is an explicit handle with an Open/Close lifecycle. Open connects,
// brings the schema to the current version (running every pending migration
// step exactly once) and validates collection presence. There is no implicit
// package-level connection.
//
//	st, err := store.Open(cfg, schema.Current())
//	if err != nil {
//	    log.Fatal("store open failed", err)
//	}
//	defer st.Close()
//
// # Accessors
//
// Collections are accessed through type-parameterized functions (Create, Upsert,
// Get, Delete, ListAll, ListByIndex) over any registered Record type. Every
// successful write is committed before the call returns. Multi-step operations
// use Store.Transaction, which makes the commit/abort boundary explicit.
//
// # Errors
//
// All failures surface as the typed errors in errors.go (NotFoundError,
// DuplicateKeyError, MigrationError, ...); nothing is logged-and-swallowed.
package store
