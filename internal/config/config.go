// Package config loads the process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/gabapcia/validatorwatch/internal/pkg/validator"

	"github.com/kelseyhightower/envconfig"
)

// Prefix of every environment variable, e.g. VALIDATORWATCH_CHAIN_ENDPOINT.
const Prefix = "VALIDATORWATCH"

type Telemetry struct {
	Enabled     bool   `envconfig:"ENABLED" default:"false"`
	ServiceName string `envconfig:"SERVICE_NAME" default:"validatorwatch" validate:"required"`
}

type Chain struct {
	Endpoint       string        `envconfig:"ENDPOINT" required:"true" validate:"required,url"`
	SS58Prefix     uint16        `envconfig:"SS58_PREFIX" default:"42"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s" validate:"gt=0"`
	RetryMax       int           `envconfig:"RETRY_MAX" default:"2" validate:"gte=0"`
}

type Scan struct {
	BatchSize      int           `envconfig:"BATCH_SIZE" default:"50" validate:"gt=0,lte=500"`
	MaxWindow      int           `envconfig:"MAX_WINDOW" default:"1000" validate:"gt=0,lte=100000"`
	MaxConcurrency int           `envconfig:"MAX_CONCURRENCY" default:"50" validate:"gt=0"`
	BlockTimeout   time.Duration `envconfig:"BLOCK_TIMEOUT" default:"10s" validate:"gt=0"`
	DeadlineMargin time.Duration `envconfig:"DEADLINE_MARGIN" default:"2s" validate:"gte=0"`
}

type HTTP struct {
	Addr           string        `envconfig:"ADDR" default:":8080" validate:"required"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"25s" validate:"gt=0"`
}

type Redis struct {
	Enabled         bool          `envconfig:"ENABLED" default:"false"`
	Addr            string        `envconfig:"ADDR" default:"localhost:6379" validate:"required_if=Enabled true"`
	Username        string        `envconfig:"USERNAME"`
	Password        string        `envconfig:"PASSWORD"`
	DB              int           `envconfig:"DB" default:"0" validate:"gte=0"`
	KeyOwnerTTL     time.Duration `envconfig:"KEY_OWNER_TTL" default:"24h" validate:"gt=0"`
	ReportStreamLen int64         `envconfig:"REPORT_STREAM_LEN" default:"10000" validate:"gt=0"`
}

type Follow struct {
	Network     string        `envconfig:"NETWORK" default:"polkadot" validate:"required"`
	Schedule    string        `envconfig:"SCHEDULE" default:"@every 30s" validate:"required"`
	StartBlock  int64         `envconfig:"START_BLOCK" default:"0" validate:"gte=0"`
	ScanTimeout time.Duration `envconfig:"SCAN_TIMEOUT" default:"25s" validate:"gt=0"`
}

type Config struct {
	LogLevel  string    `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Telemetry Telemetry `envconfig:"TELEMETRY"`
	Chain     Chain     `envconfig:"CHAIN"`
	Scan      Scan      `envconfig:"SCAN"`
	HTTP      HTTP      `envconfig:"HTTP"`
	Redis     Redis     `envconfig:"REDIS"`
	Follow    Follow    `envconfig:"FOLLOW"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if err := validator.Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
