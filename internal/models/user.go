package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// User owns every other resource in the tracker except the expense
// categories. The password is only ever stored as a bcrypt hash.
type User struct {
	DefaultModel
	Email        string `gorm:"uniqueIndex:user_email,where:deleted_at IS NULL"`
	PasswordHash string `json:"-"`
	Name         string
}

var (
	ErrUserEmailNotUnique = errors.New("a user with this email address already exists")
	ErrUserEmailInvalid   = errors.New("the email address is not valid")
)

// BeforeSave normalizes the email address so that lookups and the
// uniqueness constraint are case insensitive.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Name = strings.TrimSpace(u.Name)

	if !strings.Contains(u.Email, "@") {
		return ErrUserEmailInvalid
	}

	return nil
}
