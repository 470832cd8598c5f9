package cron

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"tariffscout/internal/metrics"
	"tariffscout/internal/storage"
	"tariffscout/internal/tariff"
)

const (
	jobName = "maintenance"
	lockKey = int64(7342)
)

// advisoryLocker is satisfied by the SQL backends; the in-memory backend
// runs without locking (single process).
type advisoryLocker interface {
	AcquireAdvisoryLock(ctx context.Context, key int64) (bool, error)
	ReleaseAdvisoryLock(ctx context.Context, key int64) (bool, error)
}

// Worker periodically reloads the plan catalog from disk and prunes old
// usage snapshots. A Postgres advisory lock keeps multi-instance
// deployments from running the job concurrently.
type Worker struct {
	store         storage.Storage
	catalog       *tariff.Store
	retentionDays int
}

func NewWorker(store storage.Storage, catalog *tariff.Store, retentionDays int) *Worker {
	return &Worker{store: store, catalog: catalog, retentionDays: retentionDays}
}

// Run blocks until ctx is cancelled. The interval comes from the given
// default (seconds), overridable at runtime through the
// "maintenance_interval" setting, which accepts integer seconds or a
// standard cron expression.
func (w *Worker) Run(ctx context.Context, intervalSeconds int) error {
	if intervalSeconds <= 0 {
		intervalSeconds = 3600
	}
	intervalSetting := strconv.Itoa(intervalSeconds)

	if val, err := w.store.GetSetting(ctx, "maintenance_interval"); err == nil && val != "" {
		intervalSetting = val
	}

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	getNextRun := func(setting string, lastRun time.Time) time.Time {
		if v, err := strconv.Atoi(setting); err == nil && v > 0 {
			return lastRun.Add(time.Duration(v) * time.Second)
		}
		if sched, err := cron.ParseStandard(setting); err == nil {
			return sched.Next(lastRun)
		}
		return lastRun.Add(time.Hour)
	}

	nextRun := time.Now()

	log.Printf("cron worker starting, interval=%q retention=%dd", intervalSetting, w.retentionDays)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if val, err := w.store.GetSetting(ctx, "maintenance_interval"); err == nil && val != "" && val != intervalSetting {
				log.Printf("cron: interval updated from %q to %q", intervalSetting, val)
				intervalSetting = val
				nextRun = getNextRun(intervalSetting, time.Now())
			}

			if time.Now().Before(nextRun) {
				continue
			}

			started := time.Now()
			runErr := w.runOnce(ctx)

			metrics.UpdateJobMetrics(jobName, started, runErr)
			dur := time.Since(started)
			errMsg := ""
			if runErr != nil {
				errMsg = runErr.Error()
			}
			if err := w.store.UpdateScheduledJob(ctx, jobName, started, dur, runErr == nil, errMsg); err != nil {
				log.Printf("cron: update scheduled_jobs failed: %v", err)
			}

			if runErr != nil {
				log.Printf("cron: job %s completed with error: %v (duration=%s)", jobName, runErr, dur)
			} else {
				log.Printf("cron: job %s completed successfully (duration=%s)", jobName, dur)
			}

			nextRun = getNextRun(intervalSetting, time.Now())
		}
	}
}

func (w *Worker) runOnce(ctx context.Context) error {
	if locker, ok := w.store.(advisoryLocker); ok {
		held, err := locker.AcquireAdvisoryLock(ctx, lockKey)
		if err != nil {
			return fmt.Errorf("acquire advisory lock: %w", err)
		}
		if !held {
			log.Printf("cron: advisory lock held by another worker, skipping run")
			return nil
		}
		defer func() {
			if _, err := locker.ReleaseAdvisoryLock(ctx, lockKey); err != nil {
				log.Printf("cron: release advisory lock failed: %v", err)
			}
		}()
	}

	var firstErr error

	if err := w.catalog.Reload(); err != nil {
		log.Printf("cron: catalog reload failed: %v", err)
		firstErr = err
	}

	if w.retentionDays > 0 {
		cutoff := time.Now().AddDate(0, 0, -w.retentionDays)
		n, err := w.store.DeleteUsageSnapshotsBefore(ctx, cutoff)
		if err != nil {
			log.Printf("cron: snapshot retention sweep failed: %v", err)
			if firstErr == nil {
				firstErr = err
			}
		} else if n > 0 {
			log.Printf("cron: pruned %d usage snapshots older than %s", n, cutoff.Format(time.RFC3339))
		}
	}

	return firstErr
}
