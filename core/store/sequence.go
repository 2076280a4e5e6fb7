package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sequence is a named monotonic counter used to mint human-readable codes.
// Rows live in the store-owned "sequences" collection; they are created lazily
// on first allocation or pre-seeded by a migration step.
type Sequence struct {
	Name  string `gorm:"column:name;primaryKey" json:"name"`
	Value int64  `gorm:"column:value" json:"value"`
}

func (Sequence) TableName() string { return "sequences" }

// RecordKey returns the sequence name.
func (s Sequence) RecordKey() string { return s.Name }

// codeDigits is the zero-padded width of formatted codes.
const codeDigits = 6

// FormatCode renders an allocated value as a zero-padded decimal code.
func FormatCode(v int64) string {
	return fmt.Sprintf("%0*d", codeDigits, v)
}

// NextCode allocates the next value of the named sequence and returns it
// formatted. The read-increment-write is one transaction: two calls with the
// same name never return the same code, even under concurrent invocation, and
// a failed persist hands out no code.
func (s *Store) NextCode(name string) (string, error) {
	var code string
	err := s.Transaction(func(tx *Store) error {
		q := tx.db.Where("name = ?", name)
		if tx.driver == DriverMySQL {
			// Row lock; sqlite serializes writers via its immediate
			// transaction instead (FOR UPDATE is not sqlite syntax).
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var seq Sequence
		err := q.First(&seq).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			seq = Sequence{Name: name, Value: 1}
			if err := tx.db.Create(&seq).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			seq.Value++
			res := tx.db.Model(&Sequence{}).Where("name = ?", name).Update("value", seq.Value)
			if res.Error != nil {
				return res.Error
			}
		}

		code = FormatCode(seq.Value)
		return nil
	})
	if err != nil {
		return "", err
	}
	return code, nil
}

// SeedSequence creates the named sequence at a starting value if it does not
// exist yet. Intended for migration steps; replays are harmless.
func SeedSequence(tx *gorm.DB, name string, value int64) error {
	var existing Sequence
	err := tx.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return tx.Create(&Sequence{Name: name, Value: value}).Error
}
