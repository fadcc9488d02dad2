package models

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

// Stash is a named savings bucket. Its current balance is never written by
// hand, it is always recomputed from the non-deleted transactions.
type Stash struct {
	DefaultModel
	User           User      `json:"-"`
	UserID         uuid.UUID `gorm:"uniqueIndex:stash_user_id_name"`
	Name           string    `gorm:"uniqueIndex:stash_user_id_name,where:deleted_at IS NULL"`
	Note           string
	CurrentBalance decimal.Decimal `gorm:"type:DECIMAL(20,2)"` // Sum of non-deleted deposits minus non-deleted withdrawals
}

var (
	ErrStashNameNotUnique = errors.New("you already have a stash with this name")
	ErrStashNameInvalid   = errors.New("the stash name must be between 1 and 100 characters")
)

// BeforeSave normalizes the name to NFC so that two visually identical
// names cannot slip past the uniqueness constraint.
func (s *Stash) BeforeSave(_ *gorm.DB) error {
	s.Name = norm.NFC.String(strings.TrimSpace(s.Name))
	s.Note = strings.TrimSpace(s.Note)

	if s.Name == "" || utf8.RuneCountInString(s.Name) > 100 {
		return ErrStashNameInvalid
	}

	return nil
}

// BeforeUpdate validates the values an update writes. BeforeSave only sees
// the loaded model, the new values are in the statement destination.
func (s *Stash) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(Stash)

	if tx.Statement.Changed("Name") {
		name := norm.NFC.String(strings.TrimSpace(toSave.Name))
		if name == "" || utf8.RuneCountInString(name) > 100 {
			return ErrStashNameInvalid
		}

		tx.Statement.SetColumn("Name", name)
	}

	if tx.Statement.Changed("Note") {
		tx.Statement.SetColumn("Note", strings.TrimSpace(toSave.Note))
	}

	return nil
}
