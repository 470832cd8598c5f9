package storage

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresPoolStorage struct {
	pool *pgxpool.Pool
}

func OpenPostgresPool(ctx context.Context, dsn string) (*PostgresPoolStorage, error) {
	if dsn == "" {
		dsn = "postgres://localhost:5432/tariffscout?sslmode=disable"
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &PostgresPoolStorage{pool: pool}, nil
}

func (s *PostgresPoolStorage) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresPoolStorage) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresPoolStorage) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS usage_snapshots (
			id TEXT PRIMARY KEY,
			customer_name TEXT,
			meter_number TEXT,
			start_date TIMESTAMPTZ,
			end_date TIMESTAMPTZ,
			total_kwh DOUBLE PRECISION NOT NULL DEFAULT 0,
			record_count INTEGER NOT NULL DEFAULT 0,
			payload BYTEA NOT NULL,
			uploaded_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT,
			updated_at TIMESTAMPTZ
		);`,
		`CREATE TABLE IF NOT EXISTS email_configs (
			id TEXT PRIMARY KEY,
			provider TEXT,
			host TEXT,
			port INTEGER,
			username TEXT,
			password TEXT,
			encryption TEXT,
			from_address TEXT,
			from_name TEXT,
			api_key TEXT,
			enabled BOOLEAN NOT NULL DEFAULT FALSE,
			updated_at TIMESTAMPTZ
		);`,
		`CREATE TABLE IF NOT EXISTS scheduled_jobs (
			name TEXT PRIMARY KEY,
			last_run_at TIMESTAMPTZ,
			last_duration_ms BIGINT,
			last_success INTEGER,
			last_error TEXT
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Usage snapshots

func (s *PostgresPoolStorage) SaveUsageSnapshot(ctx context.Context, snap UsageSnapshot) error {
	if snap.UploadedAt.IsZero() {
		snap.UploadedAt = time.Now()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO usage_snapshots (id, customer_name, meter_number, start_date, end_date, total_kwh, record_count, payload, uploaded_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET
			customer_name=EXCLUDED.customer_name,
			meter_number=EXCLUDED.meter_number,
			start_date=EXCLUDED.start_date,
			end_date=EXCLUDED.end_date,
			total_kwh=EXCLUDED.total_kwh,
			record_count=EXCLUDED.record_count,
			payload=EXCLUDED.payload,
			uploaded_at=EXCLUDED.uploaded_at
	`, snap.ID, snap.CustomerName, snap.MeterNumber, snap.StartDate, snap.EndDate, snap.TotalKwh, snap.RecordCount, snap.Payload, snap.UploadedAt)
	return err
}

func (s *PostgresPoolStorage) GetUsageSnapshot(ctx context.Context, id string) (*UsageSnapshot, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, customer_name, meter_number, start_date, end_date, total_kwh, record_count, payload, uploaded_at
		FROM usage_snapshots
		WHERE id=$1
	`, id)
	var snap UsageSnapshot
	err := row.Scan(&snap.ID, &snap.CustomerName, &snap.MeterNumber, &snap.StartDate, &snap.EndDate, &snap.TotalKwh, &snap.RecordCount, &snap.Payload, &snap.UploadedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &snap, nil
}

func (s *PostgresPoolStorage) ListUsageSnapshots(ctx context.Context) ([]UsageSnapshot, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, customer_name, meter_number, start_date, end_date, total_kwh, record_count, payload, uploaded_at
		FROM usage_snapshots
		ORDER BY uploaded_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UsageSnapshot
	for rows.Next() {
		var snap UsageSnapshot
		if err := rows.Scan(&snap.ID, &snap.CustomerName, &snap.MeterNumber, &snap.StartDate, &snap.EndDate, &snap.TotalKwh, &snap.RecordCount, &snap.Payload, &snap.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

func (s *PostgresPoolStorage) DeleteUsageSnapshotsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM usage_snapshots WHERE uploaded_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Settings

func (s *PostgresPoolStorage) GetSetting(ctx context.Context, key string) (string, error) {
	row := s.pool.QueryRow(ctx, `SELECT value FROM settings WHERE key=$1`, key)
	var value string
	if err := row.Scan(&value); err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

func (s *PostgresPoolStorage) SetSetting(ctx context.Context, key, value string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1,$2,$3)
		ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=EXCLUDED.updated_at
	`, key, value, time.Now())
	return err
}

// Email Config

func (s *PostgresPoolStorage) GetEmailConfig(ctx context.Context) (*EmailConfig, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, provider, host, port, username, password, encryption, from_address, from_name, api_key, enabled, updated_at
		FROM email_configs
		LIMIT 1
	`)
	var cfg EmailConfig
	err := row.Scan(&cfg.ID, &cfg.Provider, &cfg.Host, &cfg.Port, &cfg.Username, &cfg.Password, &cfg.Encryption, &cfg.FromAddress, &cfg.FromName, &cfg.APIKey, &cfg.Enabled, &cfg.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

func (s *PostgresPoolStorage) SaveEmailConfig(ctx context.Context, cfg EmailConfig) error {
	if cfg.ID == "" {
		cfg.ID = "default"
	}
	cfg.UpdatedAt = time.Now()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO email_configs (id, provider, host, port, username, password, encryption, from_address, from_name, api_key, enabled, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (id) DO UPDATE SET
			provider=EXCLUDED.provider,
			host=EXCLUDED.host,
			port=EXCLUDED.port,
			username=EXCLUDED.username,
			password=EXCLUDED.password,
			encryption=EXCLUDED.encryption,
			from_address=EXCLUDED.from_address,
			from_name=EXCLUDED.from_name,
			api_key=EXCLUDED.api_key,
			enabled=EXCLUDED.enabled,
			updated_at=EXCLUDED.updated_at
	`, cfg.ID, cfg.Provider, cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Encryption, cfg.FromAddress, cfg.FromName, cfg.APIKey, cfg.Enabled, cfg.UpdatedAt)
	return err
}

// Scheduled Jobs & Locking

func (s *PostgresPoolStorage) AcquireAdvisoryLock(ctx context.Context, key int64) (bool, error) {
	var ok bool
	err := s.pool.QueryRow(ctx, `SELECT pg_try_advisory_lock($1)`, key).Scan(&ok)
	return ok, err
}

func (s *PostgresPoolStorage) ReleaseAdvisoryLock(ctx context.Context, key int64) (bool, error) {
	var ok bool
	err := s.pool.QueryRow(ctx, `SELECT pg_advisory_unlock($1)`, key).Scan(&ok)
	return ok, err
}

func (s *PostgresPoolStorage) UpdateScheduledJob(ctx context.Context, name string, started time.Time, dur time.Duration, success bool, errMsg string) error {
	status := 0
	if success {
		status = 1
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO scheduled_jobs (name, last_run_at, last_duration_ms, last_success, last_error)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (name) DO UPDATE SET
			last_run_at=EXCLUDED.last_run_at,
			last_duration_ms=EXCLUDED.last_duration_ms,
			last_success=EXCLUDED.last_success,
			last_error=EXCLUDED.last_error
	`, name, started, dur.Milliseconds(), status, errMsg)
	return err
}
