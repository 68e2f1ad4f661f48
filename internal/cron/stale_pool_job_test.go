package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ocampodev/supplyline-backend/internal/shippingpool"
	"github.com/ocampodev/supplyline-backend/pkg/logger"
)

func TestStalePoolJobUsesConfiguredMaxAge(t *testing.T) {
	now := time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC)
	repo := &fakeStalePoolRepo{
		rows: []shippingpool.StaleStoreCount{
			{StoreID: uuid.New(), StoreName: "Apex", EntryCount: 3, OldestAt: now.Add(-100 * time.Hour)},
		},
	}
	job := newStalePoolJob(t, repo, 48*time.Hour)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	expectedCutoff := now.UTC().Add(-48 * time.Hour)
	if !repo.lastCutoff.Equal(expectedCutoff) {
		t.Fatalf("expected cutoff %s, got %s", expectedCutoff, repo.lastCutoff)
	}
}

func TestStalePoolJobDefaultsMaxAge(t *testing.T) {
	repo := &fakeStalePoolRepo{}
	job := newStalePoolJob(t, repo, 0)

	if job.maxAge != defaultStalePoolAge {
		t.Fatalf("maxAge = %s, want %s", job.maxAge, defaultStalePoolAge)
	}
}

func TestStalePoolJobPropagatesErrors(t *testing.T) {
	repo := &fakeStalePoolRepo{err: errors.New("boom")}
	job := newStalePoolJob(t, repo, time.Hour)

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func newStalePoolJob(t *testing.T, repo *fakeStalePoolRepo, maxAge time.Duration) *stalePoolJob {
	t.Helper()
	jobIface, err := NewStalePoolJob(StalePoolJobParams{
		Logger:     logger.New(logger.Options{ServiceName: "test"}),
		Repository: repo,
		MaxAge:     maxAge,
	})
	if err != nil {
		t.Fatalf("NewStalePoolJob: %v", err)
	}
	job, ok := jobIface.(*stalePoolJob)
	if !ok {
		t.Fatalf("expected stalePoolJob, got %T", jobIface)
	}
	return job
}

type fakeStalePoolRepo struct {
	rows       []shippingpool.StaleStoreCount
	lastCutoff time.Time
	err        error
}

func (f *fakeStalePoolRepo) StaleEntryCounts(ctx context.Context, cutoff time.Time) ([]shippingpool.StaleStoreCount, error) {
	f.lastCutoff = cutoff
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}
