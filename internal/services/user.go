package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/michdebow/stash-tracker/internal/auth"
	"github.com/michdebow/stash-tracker/internal/models"
)

const minPasswordLength = 8

// bcrypt operates on at most 72 bytes, longer passwords must be rejected
// instead of being silently truncated.
const maxPasswordBytes = 72

// RegisterUser creates a user account. The password is stored as a bcrypt
// hash, never in plain text.
func (s *Service) RegisterUser(ctx context.Context, email, password, name string) (models.User, error) {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return models.User{}, ErrPasswordTooShort
	}

	if len(password) > maxPasswordBytes {
		return models.User{}, ErrPasswordTooLong
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Error().Msgf("%T: %v", err, err)
		return models.User{}, models.ErrGeneral
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
	}

	err = s.db.WithContext(ctx).Create(&user).Error
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// User returns the user with the given ID.
func (s *Service) User(ctx context.Context, id uuid.UUID) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// AuthenticateUser verifies the credentials and returns the matching user.
// It does not reveal whether the email or the password was wrong.
func (s *Service) AuthenticateUser(ctx context.Context, email, password string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		if errors.Is(err, models.ErrResourceNotFound) {
			return models.User{}, ErrLoginFailed
		}

		return models.User{}, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return models.User{}, ErrLoginFailed
	}

	return user, nil
}
