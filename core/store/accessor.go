package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is implemented by every struct stored in a collection. TableName
// names the collection (GORM convention); RecordKey returns the primary key
// value.
type Record interface {
	TableName() string
	RecordKey() string
}

// Create inserts rec, failing with DuplicateKeyError if the primary key (or a
// unique index value) already exists.
func Create[T Record](s *Store, rec *T) error {
	var zero T
	c, err := s.collection(zero.TableName())
	if err != nil {
		return err
	}
	if err := s.db.Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &DuplicateKeyError{Collection: c.Name, Key: (*rec).RecordKey()}
		}
		return &TransactionAbortedError{Err: err}
	}
	return nil
}

// Upsert inserts rec or replaces the existing record with the same primary
// key. It never fails on existence.
func Upsert[T Record](s *Store, rec *T) error {
	var zero T
	if _, err := s.collection(zero.TableName()); err != nil {
		return err
	}
	if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(rec).Error; err != nil {
		return &TransactionAbortedError{Err: err}
	}
	return nil
}

// Get returns the record with the given primary key, or NotFoundError.
func Get[T Record](s *Store, key string) (*T, error) {
	var rec T
	c, err := s.collection(rec.TableName())
	if err != nil {
		return nil, err
	}
	err = s.db.Where(fmt.Sprintf("%s = ?", c.primaryKey()), key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Collection: c.Name, Key: key}
	}
	if err != nil {
		return nil, &TransactionAbortedError{Err: err}
	}
	return &rec, nil
}

// Delete removes the record with the given primary key. Deleting a missing
// key succeeds (idempotent delete).
func Delete[T Record](s *Store, key string) error {
	var rec T
	c, err := s.collection(rec.TableName())
	if err != nil {
		return err
	}
	if err := s.db.Where(fmt.Sprintf("%s = ?", c.primaryKey()), key).Delete(&rec).Error; err != nil {
		return &TransactionAbortedError{Err: err}
	}
	return nil
}

// ListAll returns every record in the collection. Order is unspecified.
func ListAll[T Record](s *Store) ([]T, error) {
	var zero T
	if _, err := s.collection(zero.TableName()); err != nil {
		return nil, err
	}
	var out []T
	if err := s.db.Find(&out).Error; err != nil {
		return nil, &TransactionAbortedError{Err: err}
	}
	return out, nil
}

// ListByIndex returns every record whose declared secondary index matches
// value. Unknown index names fail with IndexNotFoundError.
func ListByIndex[T Record](s *Store, index string, value any) ([]T, error) {
	var zero T
	c, err := s.collection(zero.TableName())
	if err != nil {
		return nil, err
	}
	idx, ok := c.index(index)
	if !ok {
		return nil, &IndexNotFoundError{Collection: c.Name, Index: index}
	}
	var out []T
	if err := s.db.Where(fmt.Sprintf("%s = ?", idx.Column), value).Find(&out).Error; err != nil {
		return nil, &TransactionAbortedError{Err: err}
	}
	return out, nil
}
