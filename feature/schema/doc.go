// Package schema defines the pharmacy store schema.
//
// It assembles the collection registry (names, models, declared indexes) and
// the ordered migration list the store converges through on open. Migration
// steps are idempotent: a replay after a crash between "step applied" and
// "version persisted" is harmless.
//
// The package also owns the sequence names and seed values used to mint
// human-readable codes (products start at 1000, orders at 5000, ...).
package schema
