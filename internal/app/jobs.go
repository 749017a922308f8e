/**
 * @description
 * Scheduled job implementations. The delivery advance job walks active
 * subscriptions whose next delivery date has passed and moves the date
 * forward by the subscription's plan.
 */
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/roastline/commerce-service/internal/domain"
	"github.com/roastline/commerce-service/internal/store"
)

// Jobs contains the logic for all scheduled tasks.
type Jobs struct {
	repo   store.Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewJobs creates a new Jobs runner.
func NewJobs(repo store.Repository, logger *slog.Logger) *Jobs {
	return &Jobs{repo: repo, logger: logger, now: time.Now}
}

// ProcessDueDeliveries advances the next delivery date of every due active
// subscription. Failures on one subscription do not stop the rest.
func (j *Jobs) ProcessDueDeliveries() {
	j.logger.Info("starting delivery advance job")
	ctx := context.Background()

	now := j.now()
	subs, err := j.repo.FindDueSubscriptions(ctx, now)
	if err != nil {
		j.logger.Error("failed to load due subscriptions", "error", err)
		return
	}
	if len(subs) == 0 {
		j.logger.Info("no due deliveries to process")
		return
	}

	j.logger.Info("found due deliveries", "count", len(subs))

	for _, sub := range subs {
		// Advance from the stored date, not from now, so the delivery anchor
		// does not drift with the job's lateness. A subscription overdue by
		// several cycles catches up to the first future date in one run.
		next := domain.NextDelivery(sub.Plan, sub.NextDelivery)
		for !next.After(now) {
			next = domain.NextDelivery(sub.Plan, next)
		}
		if err := j.repo.AdvanceNextDelivery(ctx, sub.ID, next); err != nil {
			j.logger.Error("failed to advance delivery", "subscription_id", sub.ID, "error", err)
			continue
		}
		j.logger.Info("advanced delivery", "subscription_id", sub.ID, "plan", sub.Plan, "next_delivery", next)
	}

	j.logger.Info("delivery advance job finished")
}
