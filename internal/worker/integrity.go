// Package worker audits the derived balances against their ledgers.
//
// Every mutation recomputes its balance inside the mutating transaction, so
// drift means a bug or an out-of-band write to the database. The auditor
// only detects, it never repairs: a silent fix would hide the bug that
// caused the drift.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/michdebow/stash-tracker/internal/models"
)

var driftCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "balance_drift_total",
		Help: "How many balance audits found a derived balance that does not match its ledger, partitioned by resource.",
	},
	[]string{"resource"},
)

// RegisterMetrics registers the audit metrics with the default registry.
func RegisterMetrics() error {
	if err := prometheus.Register(driftCount); err != nil {
		return fmt.Errorf("could not register collector with Prometheus: %w", err)
	}

	return nil
}

// UnregisterMetrics unregisters the audit metrics. This is needed so that
// tests can set up a fresh registry.
func UnregisterMetrics() bool {
	return prometheus.Unregister(driftCount)
}

// Auditor periodically recomputes every live balance from its ledger and
// reports mismatches.
type Auditor struct {
	db       *gorm.DB
	interval time.Duration
}

func NewAuditor(db *gorm.DB, interval time.Duration) *Auditor {
	return &Auditor{
		db:       db,
		interval: interval,
	}
}

// Run audits on every tick until the context is canceled. It returns the
// context error so that an errgroup managing it shuts down cleanly.
func (a *Auditor) Run(ctx context.Context) error {
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := a.Audit(ctx); err != nil {
				log.Error().Err(err).Msg("balance audit failed")
			}
		}
	}
}

// Audit runs a single audit pass over all live stashes and month budgets.
// It returns the first database error, a found drift is not an error.
func (a *Auditor) Audit(ctx context.Context) error {
	db := a.db.WithContext(ctx)

	var stashes []models.Stash
	if err := db.Find(&stashes).Error; err != nil {
		return err
	}

	for _, stash := range stashes {
		balance, err := models.StashBalance(db, stash.ID)
		if err != nil {
			return err
		}

		if !balance.Equal(stash.CurrentBalance) {
			driftCount.WithLabelValues("stash").Inc()
			log.Warn().
				Str("stash", stash.ID.String()).
				Str("stored", stash.CurrentBalance.String()).
				Str("computed", balance.String()).
				Msg("stash balance does not match its ledger")
		}
	}

	var budgets []models.MonthBudget
	if err := db.Find(&budgets).Error; err != nil {
		return err
	}

	for _, budget := range budgets {
		total, err := models.ExpenseTotal(db, budget.UserID, budget.Month)
		if err != nil {
			return err
		}

		balance := budget.BudgetSet.Sub(total)
		if !balance.Equal(budget.CurrentBalance) {
			driftCount.WithLabelValues("month_budget").Inc()
			log.Warn().
				Str("user", budget.UserID.String()).
				Str("month", budget.Month.String()).
				Str("stored", budget.CurrentBalance.String()).
				Str("computed", balance.String()).
				Msg("month budget balance does not match its ledger")
		}
	}

	return nil
}
