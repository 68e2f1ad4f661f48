package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/ocampodev/supplyline-backend/internal/shippingpool"
	"github.com/ocampodev/supplyline-backend/pkg/logger"
)

const defaultStalePoolAge = 72 * time.Hour

type StalePoolJobParams struct {
	Logger     *logger.Logger
	Repository stalePoolRepo
	MaxAge     time.Duration
}

type stalePoolRepo interface {
	StaleEntryCounts(ctx context.Context, cutoff time.Time) ([]shippingpool.StaleStoreCount, error)
}

// NewStalePoolJob reports pool entries that have been staged but never
// committed. It only warns; operators decide whether to commit or remove.
func NewStalePoolJob(params StalePoolJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("shipping pool repository required")
	}
	maxAge := params.MaxAge
	if maxAge <= 0 {
		maxAge = defaultStalePoolAge
	}
	return &stalePoolJob{
		logg:   params.Logger,
		repo:   params.Repository,
		maxAge: maxAge,
		now:    time.Now,
	}, nil
}

type stalePoolJob struct {
	logg   *logger.Logger
	repo   stalePoolRepo
	maxAge time.Duration
	now    func() time.Time
}

func (j *stalePoolJob) Name() string { return "stale-pool-report" }

func (j *stalePoolJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.maxAge)
	rows, err := j.repo.StaleEntryCounts(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("stale pool report: %w", err)
	}
	if len(rows) == 0 {
		j.logg.Info(ctx, "no stale pool entries")
		return nil
	}
	for _, row := range rows {
		logCtx := j.logg.WithFields(ctx, map[string]any{
			"store_id":    row.StoreID.String(),
			"store_name":  row.StoreName,
			"entry_count": row.EntryCount,
			"oldest_at":   row.OldestAt,
			"max_age":     j.maxAge.String(),
		})
		j.logg.Warn(logCtx, "pool entries staged past max age")
	}
	return nil
}
