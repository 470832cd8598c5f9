package storage

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStorage is an in-memory Storage implementation, useful for tests
// and simple single-process deployments.
type MemoryStorage struct {
	mu          sync.RWMutex
	snaps       map[string]UsageSnapshot
	settings    map[string]string
	jobs        map[string]ScheduledJob
	emailConfig *EmailConfig
}

func NewMemory() *MemoryStorage {
	return &MemoryStorage{
		snaps:    make(map[string]UsageSnapshot),
		settings: make(map[string]string),
		jobs:     make(map[string]ScheduledJob),
	}
}

func (m *MemoryStorage) Close() error { return nil }

func (m *MemoryStorage) Ping(ctx context.Context) error { return nil }

func (m *MemoryStorage) SaveUsageSnapshot(ctx context.Context, snap UsageSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if snap.UploadedAt.IsZero() {
		snap.UploadedAt = time.Now()
	}
	m.snaps[snap.ID] = snap
	return nil
}

func (m *MemoryStorage) GetUsageSnapshot(ctx context.Context, id string) (*UsageSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.snaps[id]
	if !ok {
		return nil, nil
	}
	cp := s
	return &cp, nil
}

func (m *MemoryStorage) ListUsageSnapshots(ctx context.Context) ([]UsageSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]UsageSnapshot, 0, len(m.snaps))
	for _, s := range m.snaps {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (m *MemoryStorage) DeleteUsageSnapshotsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, s := range m.snaps {
		if s.UploadedAt.Before(cutoff) {
			delete(m.snaps, id)
			n++
		}
	}
	return n, nil
}

func (m *MemoryStorage) GetSetting(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings[key], nil
}

func (m *MemoryStorage) SetSetting(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[key] = value
	return nil
}

func (m *MemoryStorage) GetEmailConfig(ctx context.Context) (*EmailConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.emailConfig == nil {
		return nil, nil
	}
	cfg := *m.emailConfig
	return &cfg, nil
}

func (m *MemoryStorage) SaveEmailConfig(ctx context.Context, cfg EmailConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.emailConfig = &cfg
	return nil
}

func (m *MemoryStorage) UpdateScheduledJob(ctx context.Context, name string, started time.Time, dur time.Duration, success bool, errMsg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ok := 0
	if success {
		ok = 1
	}
	m.jobs[name] = ScheduledJob{
		Name:           name,
		LastRunAt:      started,
		LastDurationMs: dur.Milliseconds(),
		LastSuccess:    ok,
		LastError:      errMsg,
	}
	return nil
}
