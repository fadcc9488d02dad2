// Package events notifies downstream consumers about balance changes.
//
// Publishing is best effort. The database is the source of truth for every
// balance, so callers log failed publishes and carry on.
package events

import "context"

type Publisher interface {
	StashBalanceUpdated(ctx context.Context, message StashBalanceMessage) error
	MonthBalanceUpdated(ctx context.Context, message MonthBalanceMessage) error
	Close() error
}

// NopPublisher drops every message. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) StashBalanceUpdated(context.Context, StashBalanceMessage) error {
	return nil
}

func (NopPublisher) MonthBalanceUpdated(context.Context, MonthBalanceMessage) error {
	return nil
}

func (NopPublisher) Close() error {
	return nil
}
