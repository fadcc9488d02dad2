package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/michdebow/stash-tracker/internal/types"
)

// StashBalanceMessage is published after the balance of a stash has been
// recomputed. It carries the new balance so that consumers do not need to
// read the database.
type StashBalanceMessage struct {
	StashID   uuid.UUID       `json:"stashId"`
	UserID    uuid.UUID       `json:"userId"`
	Balance   decimal.Decimal `json:"balance"`
	Timestamp time.Time       `json:"timestamp"`
}

func NewStashBalanceMessage(stashID, userID uuid.UUID, balance decimal.Decimal) StashBalanceMessage {
	return StashBalanceMessage{
		StashID:   stashID,
		UserID:    userID,
		Balance:   balance,
		Timestamp: time.Now(),
	}
}

func (m StashBalanceMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func StashBalanceMessageFromJSON(data []byte) (StashBalanceMessage, error) {
	var msg StashBalanceMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return StashBalanceMessage{}, err
	}
	return msg, nil
}

// MonthBalanceMessage is published after the remaining balance of a monthly
// budget has been recomputed.
type MonthBalanceMessage struct {
	UserID    uuid.UUID       `json:"userId"`
	Month     types.Month     `json:"month"`
	Balance   decimal.Decimal `json:"balance"`
	Timestamp time.Time       `json:"timestamp"`
}

func NewMonthBalanceMessage(userID uuid.UUID, month types.Month, balance decimal.Decimal) MonthBalanceMessage {
	return MonthBalanceMessage{
		UserID:    userID,
		Month:     month,
		Balance:   balance,
		Timestamp: time.Now(),
	}
}

func (m MonthBalanceMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func MonthBalanceMessageFromJSON(data []byte) (MonthBalanceMessage, error) {
	var msg MonthBalanceMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return MonthBalanceMessage{}, err
	}
	return msg, nil
}
