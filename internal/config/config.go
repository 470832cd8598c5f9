package config

import (
	"log"
	"os"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Listen struct {
		BindIP string `yaml:"bind_ip" env:"TARIFFSCOUT_BIND_IP" env-default:"0.0.0.0"`
		Port   string `yaml:"port" env:"TARIFFSCOUT_PORT" env-default:"8000"`
	} `yaml:"listen"`

	Storage struct {
		Driver string `yaml:"driver" env:"TARIFFSCOUT_DB_DRIVER" env-default:"memory"`
		DSN    string `yaml:"dsn" env:"TARIFFSCOUT_DB_DSN" env-default:"tariffscout.db"`
	} `yaml:"storage"`

	Catalog struct {
		// Path points at a JSON catalog override; empty uses the built-in
		// plan catalog.
		Path     string  `yaml:"path" env:"TARIFFSCOUT_CATALOG_PATH" env-default:""`
		BaseRate float64 `yaml:"base_rate" env:"TARIFFSCOUT_BASE_RATE" env-default:"0"`
		VATRate  float64 `yaml:"vat_rate" env:"TARIFFSCOUT_VAT_RATE" env-default:"0"`
	} `yaml:"catalog"`

	Cron struct {
		IntervalSeconds int `yaml:"interval_seconds" env:"TARIFFSCOUT_CRON_INTERVAL_SECONDS" env-default:"3600"`
		RetentionDays   int `yaml:"retention_days" env:"TARIFFSCOUT_SNAPSHOT_RETENTION_DAYS" env-default:"90"`
	} `yaml:"cron"`

	AutoMigrate bool `yaml:"auto_migrate" env:"TARIFFSCOUT_AUTO_MIGRATE" env-default:"false"`
}

var (
	instance *Config
	once     sync.Once
)

// GetConfig reads config.yml once, falling back to environment variables
// when no file is present.
func GetConfig() (*Config, error) {
	var err error
	once.Do(func() {
		instance = &Config{}
		if _, statErr := os.Stat("config.yml"); statErr == nil {
			err = cleanenv.ReadConfig("config.yml", instance)
		} else {
			err = cleanenv.ReadEnv(instance)
		}
		if err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			log.Println(desc)
			instance = nil
		}
	})
	return instance, err
}
