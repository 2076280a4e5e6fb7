package store

import (
	"sort"

	"gorm.io/gorm"
)

// Index declares a secondary lookup path on a collection. Indexes are declared
// at collection creation time only; adding one later requires a migration step.
type Index struct {
	// Name is the logical index name used by ListByIndex.
	Name string
	// Column is the backing column.
	Column string
	// Unique marks the index as a uniqueness constraint.
	Unique bool
}

// Collection describes a named, independently keyed record set.
type Collection struct {
	// Name is the collection (table) name.
	Name string
	// Model is a pointer to the zero record struct, used for DDL.
	Model any
	// PrimaryKey is the primary key column (defaults to "id").
	PrimaryKey string
	// Indexes are the declared secondary indexes.
	Indexes []Index
}

func (c Collection) primaryKey() string {
	if c.PrimaryKey == "" {
		return "id"
	}
	return c.PrimaryKey
}

func (c Collection) index(name string) (Index, bool) {
	for _, idx := range c.Indexes {
		if idx.Name == name {
			return idx, true
		}
	}
	return Index{}, false
}

// Migration is one schema version step. Apply must be idempotent: a crash
// between "step applied" and "version persisted" causes a replay on the next
// open, so creation must be check-then-create.
type Migration struct {
	// Version is the target schema version of this step.
	Version int
	// Name describes the step for logs and errors.
	Name string
	// Apply runs the step inside a transaction.
	Apply func(tx *gorm.DB) error
}

// Schema is the ordered migration list plus the collection registry the
// migrations converge on.
type Schema struct {
	Collections []Collection
	Migrations  []Migration
}

// Version returns the highest migration version, i.e. the current schema
// version a fresh open converges to.
func (s Schema) Version() int {
	v := 0
	for _, m := range s.Migrations {
		if m.Version > v {
			v = m.Version
		}
	}
	return v
}

func (s Schema) sortedMigrations() []Migration {
	out := make([]Migration, len(s.Migrations))
	copy(out, s.Migrations)
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out
}

// EnsureCollection creates the collection's table and declared indexes if
// absent. Safe to call from replayed migration steps.
func EnsureCollection(tx *gorm.DB, c Collection) error {
	m := tx.Migrator()
	if !m.HasTable(c.Model) {
		if err := m.CreateTable(c.Model); err != nil {
			return err
		}
	}
	for _, idx := range c.Indexes {
		if !m.HasIndex(c.Model, idx.Column) {
			if err := m.CreateIndex(c.Model, idx.Column); err != nil {
				return err
			}
		}
	}
	return nil
}
