// Package services implements the operations of the stash tracker. Every
// operation is scoped to the owner passed as the first argument after the
// context; mutations run inside a single database transaction so that a
// ledger write and the derived balance it changes commit together.
package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/michdebow/stash-tracker/internal/events"
	"gorm.io/gorm"
)

type Service struct {
	db     *gorm.DB
	events events.Publisher
}

func New(db *gorm.DB, publisher events.Publisher) *Service {
	return &Service{
		db:     db,
		events: publisher,
	}
}

// paginationLimit resolves the limit for a list. Zero applies the default of
// 50, negative values disable the limit.
func paginationLimit(limit int) int {
	if limit == 0 {
		return 50
	}

	return limit
}

// Publishing is best effort, failures must never fail the operation whose
// balance is being announced.
func (s *Service) publishStashBalance(ctx context.Context, message events.StashBalanceMessage) {
	if err := s.events.StashBalanceUpdated(ctx, message); err != nil {
		log.Warn().Err(err).Str("stash", message.StashID.String()).Msg("could not publish stash balance")
	}
}

func (s *Service) publishMonthBalance(ctx context.Context, message events.MonthBalanceMessage) {
	if err := s.events.MonthBalanceUpdated(ctx, message); err != nil {
		log.Warn().Err(err).Str("month", message.Month.String()).Msg("could not publish month balance")
	}
}
