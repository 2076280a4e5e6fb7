package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// schemaVersion is the single bookkeeping row recording the applied version.
type schemaVersion struct {
	ID        int       `gorm:"column:id;primaryKey"`
	Version   int       `gorm:"column:version"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (schemaVersion) TableName() string { return "schema_versions" }

// migrate brings the store from its persisted version to the schema's current
// version, applying each pending step exactly once. Each step runs in its own
// transaction together with its version bump, so a failure leaves the store at
// the last successfully-applied version.
func (s *Store) migrate(schema Schema) (int, error) {
	m := s.db.Migrator()
	if !m.HasTable(&schemaVersion{}) {
		if err := m.CreateTable(&schemaVersion{}); err != nil {
			return 0, &MigrationError{Err: fmt.Errorf("create version table: %w", err)}
		}
	}

	stored, err := s.storedVersion()
	if err != nil {
		return 0, &MigrationError{Err: err}
	}

	target := schema.Version()
	if stored > target {
		return 0, &MigrationError{Version: stored, Err: fmt.Errorf("store version %d is newer than schema version %d", stored, target)}
	}

	if stored == target {
		// Already current: validate collection presence, write nothing.
		if err := s.validateCollections(schema); err != nil {
			return 0, err
		}
		return stored, nil
	}

	for _, step := range schema.sortedMigrations() {
		if step.Version <= stored {
			continue
		}
		step := step
		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := step.Apply(tx); err != nil {
				return err
			}
			return persistVersion(tx, step.Version)
		})
		if err != nil {
			return 0, &MigrationError{Version: step.Version, Err: err}
		}
	}

	if err := s.validateCollections(schema); err != nil {
		return 0, err
	}
	return target, nil
}

// storedVersion reads the persisted schema version; 0 for a fresh store.
func (s *Store) storedVersion() (int, error) {
	var row schemaVersion
	err := s.db.Where("id = ?", 1).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return row.Version, nil
}

// persistVersion upserts the bookkeeping row to version v.
func persistVersion(tx *gorm.DB, v int) error {
	var row schemaVersion
	err := tx.Where("id = ?", 1).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return tx.Create(&schemaVersion{ID: 1, Version: v, UpdatedAt: time.Now()}).Error
	}
	if err != nil {
		return err
	}
	return tx.Model(&schemaVersion{}).Where("id = ?", 1).
		Updates(map[string]any{"version": v, "updated_at": time.Now()}).Error
}

// validateCollections checks that every registered collection exists.
func (s *Store) validateCollections(schema Schema) error {
	m := s.db.Migrator()
	for _, c := range schema.Collections {
		if !m.HasTable(c.Model) {
			return &MigrationError{Err: fmt.Errorf("collection %q missing after migration", c.Name)}
		}
	}
	return nil
}
