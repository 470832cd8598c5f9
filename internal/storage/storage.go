package storage

import (
	"context"
	"time"
)

// Storage abstracts persistence for uploaded usage snapshots and service
// settings. The calculation core never touches it; snapshots exist so a
// host can re-run a comparison without re-uploading the file.
type Storage interface {
	// Usage snapshots
	SaveUsageSnapshot(ctx context.Context, snap UsageSnapshot) error
	GetUsageSnapshot(ctx context.Context, id string) (*UsageSnapshot, error)
	ListUsageSnapshots(ctx context.Context) ([]UsageSnapshot, error)
	DeleteUsageSnapshotsBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// Settings
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error

	// Email notification config
	GetEmailConfig(ctx context.Context) (*EmailConfig, error)
	SaveEmailConfig(ctx context.Context, cfg EmailConfig) error

	// Background job bookkeeping
	UpdateScheduledJob(ctx context.Context, name string, started time.Time, dur time.Duration, success bool, errMsg string) error

	Ping(ctx context.Context) error

	// Close releases any resources (no-op for in-memory).
	Close() error
}
