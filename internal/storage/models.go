package storage

import "time"

// UsageSnapshot stores one uploaded data set: searchable metadata columns
// plus the full ParsedUsageData JSON payload (dates as ISO-8601 strings)
// so any backend round-trips it unchanged.
type UsageSnapshot struct {
	ID           string    `json:"id" gorm:"primaryKey;column:id"`
	CustomerName string    `json:"customerName" gorm:"column:customer_name"`
	MeterNumber  string    `json:"meterNumber" gorm:"column:meter_number"`
	StartDate    time.Time `json:"startDate" gorm:"column:start_date"`
	EndDate      time.Time `json:"endDate" gorm:"column:end_date"`
	TotalKwh     float64   `json:"totalKwh" gorm:"column:total_kwh"`
	RecordCount  int       `json:"recordCount" gorm:"column:record_count"`
	Payload      []byte    `json:"-" gorm:"column:payload"`
	UploadedAt   time.Time `json:"uploadedAt" gorm:"column:uploaded_at"`
}

// Setting is a key/value pair for runtime-tunable behavior.
type Setting struct {
	Key       string    `gorm:"primaryKey;column:key"`
	Value     string    `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// ScheduledJob records the last outcome of a background job.
type ScheduledJob struct {
	Name           string    `gorm:"primaryKey;column:name"`
	LastRunAt      time.Time `gorm:"column:last_run_at"`
	LastDurationMs int64     `gorm:"column:last_duration_ms"`
	LastSuccess    int       `gorm:"column:last_success"`
	LastError      string    `gorm:"column:last_error"`
}

// EmailConfig holds configuration for savings-report emails.
type EmailConfig struct {
	ID          string    `json:"id" gorm:"primaryKey;column:id"`
	Provider    string    `json:"provider" gorm:"column:provider"` // "smtp", "sendgrid", "resend"
	Host        string    `json:"host,omitempty" gorm:"column:host"`
	Port        int       `json:"port,omitempty" gorm:"column:port"`
	Username    string    `json:"username,omitempty" gorm:"column:username"`
	Password    string    `json:"password,omitempty" gorm:"column:password"`
	Encryption  string    `json:"encryption,omitempty" gorm:"column:encryption"` // "ssl", "tls", or ""
	FromAddress string    `json:"from_address" gorm:"column:from_address"`
	FromName    string    `json:"from_name" gorm:"column:from_name"`
	APIKey      string    `json:"api_key,omitempty" gorm:"column:api_key"`
	Enabled     bool      `json:"enabled" gorm:"column:enabled"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}
