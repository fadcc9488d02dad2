package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/michdebow/stash-tracker/internal/models"
	"gorm.io/gorm"
)

// StashFilter narrows the stash listing.
type StashFilter struct {
	Name string
}

// Stashes returns the user's stashes ordered by name.
func (s *Service) Stashes(ctx context.Context, userID uuid.UUID, filter StashFilter) ([]models.Stash, error) {
	q := s.db.WithContext(ctx).Order("stashes.name ASC").Where(&models.Stash{UserID: userID})

	if filter.Name != "" {
		q = q.Where("stashes.name LIKE ?", fmt.Sprintf("%%%s%%", filter.Name))
	}

	var stashes []models.Stash
	err := q.Find(&stashes).Error
	if err != nil {
		return nil, err
	}

	return stashes, nil
}

// Stash returns one of the user's stashes.
func (s *Service) Stash(ctx context.Context, userID, id uuid.UUID) (models.Stash, error) {
	var stash models.Stash
	err := s.db.WithContext(ctx).First(&stash, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return models.Stash{}, err
	}

	return stash, nil
}

// CreateStash creates a stash with a balance of zero. The name must be
// unique among the user's live stashes; the pre-check keeps the common case
// friendly and the partial unique index catches the race.
func (s *Service) CreateStash(ctx context.Context, userID uuid.UUID, name, note string) (models.Stash, error) {
	db := s.db.WithContext(ctx)

	taken, err := s.stashNameTaken(db, userID, name, uuid.Nil)
	if err != nil {
		return models.Stash{}, err
	}
	if taken {
		return models.Stash{}, models.ErrStashNameNotUnique
	}

	stash := models.Stash{
		UserID: userID,
		Name:   name,
		Note:   note,
	}

	err = db.Create(&stash).Error
	if err != nil {
		return models.Stash{}, err
	}

	return stash, nil
}

// RenameStash changes the name of a stash. Everything else, the note
// included, stays as it is.
func (s *Service) RenameStash(ctx context.Context, userID, id uuid.UUID, name string) (models.Stash, error) {
	db := s.db.WithContext(ctx)

	var stash models.Stash
	err := db.First(&stash, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return models.Stash{}, err
	}

	taken, err := s.stashNameTaken(db, userID, name, stash.ID)
	if err != nil {
		return models.Stash{}, err
	}
	if taken {
		return models.Stash{}, models.ErrStashNameNotUnique
	}

	err = db.Model(&stash).Select("Name").Updates(models.Stash{Name: name}).Error
	if err != nil {
		return models.Stash{}, err
	}

	return stash, nil
}

// DeleteStash soft-deletes a stash. Its transactions are kept as they are so
// that the ledger stays intact.
func (s *Service) DeleteStash(ctx context.Context, userID, id uuid.UUID) error {
	db := s.db.WithContext(ctx)

	var stash models.Stash
	err := db.First(&stash, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return err
	}

	return db.Delete(&stash).Error
}

// stashNameTaken reports whether another live stash of the user already uses
// the name. It compares the normalized form the model hook stores.
func (s *Service) stashNameTaken(db *gorm.DB, userID uuid.UUID, name string, exclude uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&models.Stash{}).
		Where("user_id = ? AND name = ? AND id != ?", userID, norm.NFC.String(strings.TrimSpace(name)), exclude).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
