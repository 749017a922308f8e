package app

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/roastline/commerce-service/internal/domain"
	"github.com/roastline/commerce-service/internal/store"
)

type jobsRepoStub struct {
	store.Repository

	due        []domain.Subscription
	advanced   map[uuid.UUID]time.Time
	advanceErr map[uuid.UUID]error
}

func (s *jobsRepoStub) FindDueSubscriptions(ctx context.Context, now time.Time) ([]domain.Subscription, error) {
	return s.due, nil
}

func (s *jobsRepoStub) AdvanceNextDelivery(ctx context.Context, id uuid.UUID, next time.Time) error {
	if err := s.advanceErr[id]; err != nil {
		return err
	}
	if s.advanced == nil {
		s.advanced = make(map[uuid.UUID]time.Time)
	}
	s.advanced[id] = next
	return nil
}

func TestProcessDueDeliveries_AdvancesByPlan(t *testing.T) {
	now := time.Date(2025, time.July, 1, 6, 0, 0, 0, time.UTC)
	due := now.Add(-2 * time.Hour)
	weekly := domain.Subscription{ID: uuid.New(), Plan: domain.PlanWeekly, NextDelivery: due}
	legacy := domain.Subscription{ID: uuid.New(), Plan: "Seasonal", NextDelivery: due}
	repo := &jobsRepoStub{due: []domain.Subscription{weekly, legacy}}

	jobs := NewJobs(repo, slog.Default())
	jobs.now = func() time.Time { return now }
	jobs.ProcessDueDeliveries()

	if got := repo.advanced[weekly.ID]; !got.Equal(due.AddDate(0, 0, 7)) {
		t.Fatalf("weekly advanced to %v, want stored date +7 days", got)
	}
	// Unknown stored plans fall back to the quarterly offset.
	if got := repo.advanced[legacy.ID]; !got.Equal(due.AddDate(0, 3, 0)) {
		t.Fatalf("legacy advanced to %v, want stored date +3 months", got)
	}
}

func TestProcessDueDeliveries_AnchorSurvivesLateRuns(t *testing.T) {
	// The job ran a day and a half late; the next date still lines up with
	// the original delivery anchor, not with the run time.
	anchor := time.Date(2025, time.July, 1, 6, 0, 0, 0, time.UTC)
	now := anchor.Add(36 * time.Hour)
	sub := domain.Subscription{ID: uuid.New(), Plan: domain.PlanWeekly, NextDelivery: anchor}
	repo := &jobsRepoStub{due: []domain.Subscription{sub}}

	jobs := NewJobs(repo, slog.Default())
	jobs.now = func() time.Time { return now }
	jobs.ProcessDueDeliveries()

	if got := repo.advanced[sub.ID]; !got.Equal(anchor.AddDate(0, 0, 7)) {
		t.Fatalf("advanced to %v, want anchor +7 days", got)
	}
}

func TestProcessDueDeliveries_CatchesUpMissedCycles(t *testing.T) {
	// Three weekly cycles were missed; one run skips ahead to the first
	// future date on the anchor's grid.
	anchor := time.Date(2025, time.June, 1, 6, 0, 0, 0, time.UTC)
	now := anchor.AddDate(0, 0, 23)
	sub := domain.Subscription{ID: uuid.New(), Plan: domain.PlanWeekly, NextDelivery: anchor}
	repo := &jobsRepoStub{due: []domain.Subscription{sub}}

	jobs := NewJobs(repo, slog.Default())
	jobs.now = func() time.Time { return now }
	jobs.ProcessDueDeliveries()

	if got := repo.advanced[sub.ID]; !got.Equal(anchor.AddDate(0, 0, 28)) {
		t.Fatalf("advanced to %v, want anchor +28 days", got)
	}
}

func TestProcessDueDeliveries_FailureDoesNotStopTheRest(t *testing.T) {
	now := time.Date(2025, time.July, 1, 6, 0, 0, 0, time.UTC)
	broken := domain.Subscription{ID: uuid.New(), Plan: domain.PlanMonthly}
	healthy := domain.Subscription{ID: uuid.New(), Plan: domain.PlanMonthly}
	repo := &jobsRepoStub{
		due:        []domain.Subscription{broken, healthy},
		advanceErr: map[uuid.UUID]error{broken.ID: errors.New("row gone")},
	}

	jobs := NewJobs(repo, slog.Default())
	jobs.now = func() time.Time { return now }
	jobs.ProcessDueDeliveries()

	if _, ok := repo.advanced[healthy.ID]; !ok {
		t.Fatal("expected healthy subscription to be advanced despite earlier failure")
	}
}
