package config

import "fmt"

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	Path            string `mapstructure:"path"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

func (d *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// BillingConfig holds the tax and invoicing knobs.
type BillingConfig struct {
	DefaultCountry   string `mapstructure:"default_country"`
	DunningGraceDays int    `mapstructure:"dunning_grace_days"`
}

// SchedulerConfig holds the daily batch trigger times as cron expressions
// evaluated in the business timezone.
type SchedulerConfig struct {
	Timezone       string `mapstructure:"timezone"`
	RenewalCron    string `mapstructure:"renewal_cron"`
	ExpirationCron string `mapstructure:"expiration_cron"`
	DunningCron    string `mapstructure:"dunning_cron"`
}
