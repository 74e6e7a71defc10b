// Package config loads the configuration of the verichain binary from the
// embedded defaults, an optional YAML file, VERICHAIN_* environment variables
// and command line flags, in increasing order of precedence.
package config

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/verichain/verichain/client"
	"github.com/verichain/verichain/engine/access/rest"
	"github.com/verichain/verichain/engine/orchestrator"
)

// EnvPrefix prefixes the environment variables overriding configuration keys.
// Nested keys are joined with underscores, ie. VERICHAIN_LEDGER_URL.
const EnvPrefix = "VERICHAIN"

//go:embed default-config.yml
var defaultConfig string

// Config is the configuration of the verichain binary.
type Config struct {
	LogLevel     string             `validate:"oneof=trace debug info warn error" mapstructure:"log-level"`
	Ledger       LedgerConfig       `mapstructure:"ledger"`
	Orchestrator OrchestratorConfig `mapstructure:"orchestrator"`
	Metrics      MetricsConfig      `mapstructure:"metrics"`
	Emulator     EmulatorConfig     `mapstructure:"emulator"`
}

// LedgerConfig configures the connection to the ledger REST API.
type LedgerConfig struct {
	URL             string        `validate:"required,url" mapstructure:"url"`
	Contract        string        `validate:"omitempty,hexadecimal" mapstructure:"contract"`
	Timeout         time.Duration `validate:"gt=0" mapstructure:"timeout"`
	BreakerFailures uint32        `validate:"gt=0" mapstructure:"breaker-failures"`
	BreakerTimeout  time.Duration `validate:"gt=0" mapstructure:"breaker-timeout"`
}

// OrchestratorConfig configures the retries of registry operations.
type OrchestratorConfig struct {
	MaxAttempts        uint          `validate:"gte=1" mapstructure:"max-attempts"`
	RetryBase          time.Duration `validate:"gt=0" mapstructure:"retry-base"`
	RetryMax           time.Duration `validate:"gtefield=RetryBase" mapstructure:"retry-max"`
	RetryJitterPercent uint64        `validate:"lte=100" mapstructure:"retry-jitter-percent"`
}

// MetricsConfig configures the prometheus endpoint of the CLI.
type MetricsConfig struct {
	Address string `validate:"omitempty,hostname_port" mapstructure:"address"`
}

// EmulatorConfig configures the emulated ledger server.
type EmulatorConfig struct {
	Listen                string  `validate:"required,hostname_port" mapstructure:"listen"`
	DataDir               string  `mapstructure:"datadir"`
	ReceiptCacheSize      int     `validate:"gt=0" mapstructure:"receipt-cache-size"`
	EventBufferSize       int     `validate:"gt=0" mapstructure:"event-buffer-size"`
	MaxEventSubscriptions uint64  `mapstructure:"max-event-subscriptions"`
	MaxEventsPerSecond    float64 `validate:"gte=0" mapstructure:"max-events-per-second"`
}

// flagAliases maps command line flags to the configuration keys they override.
var flagAliases = map[string]string{
	"log-level":    "log-level",
	"ledger-url":   "ledger.url",
	"contract":     "ledger.contract",
	"timeout":      "ledger.timeout",
	"max-attempts": "orchestrator.max-attempts",
	"metrics":      "metrics.address",
	"listen":       "emulator.listen",
	"datadir":      "emulator.datadir",
}

// Load builds the configuration. file is an optional YAML file merged over the
// defaults. Flags of the set that match a configuration key override it once
// they have been changed.
func Load(file string, flags *pflag.FlagSet) (*Config, error) {
	conf := viper.New()
	conf.SetConfigType("yaml")
	if err := conf.ReadConfig(strings.NewReader(defaultConfig)); err != nil {
		return nil, fmt.Errorf("failed to read default config: %w", err)
	}

	if file != "" {
		conf.SetConfigFile(file)
		if err := conf.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	conf.SetEnvPrefix(EnvPrefix)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	conf.AutomaticEnv()

	if flags != nil {
		if err := bindFlags(conf, flags); err != nil {
			return nil, err
		}
	}

	var c Config
	err := conf.Unmarshal(&c, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// bindFlags binds every flag of the set that has a configuration key.
func bindFlags(conf *viper.Viper, flags *pflag.FlagSet) error {
	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		key, ok := flagAliases[f.Name]
		if !ok || bindErr != nil {
			return
		}
		if err := conf.BindPFlag(key, f); err != nil {
			bindErr = fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}

// Validate checks every configuration value.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func (c *Config) ClientConfig() client.Config {
	return client.Config{
		URL:             c.Ledger.URL,
		Timeout:         c.Ledger.Timeout,
		BreakerFailures: c.Ledger.BreakerFailures,
		BreakerTimeout:  c.Ledger.BreakerTimeout,
	}
}

func (c *Config) OrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		MaxAttempts:        c.Orchestrator.MaxAttempts,
		RetryBase:          c.Orchestrator.RetryBase,
		RetryMax:           c.Orchestrator.RetryMax,
		RetryJitterPercent: c.Orchestrator.RetryJitterPercent,
	}
}

func (c *Config) RestConfig() rest.Config {
	config := rest.DefaultConfig()
	config.ListenAddress = c.Emulator.Listen
	config.MaxEventSubscriptions = c.Emulator.MaxEventSubscriptions
	config.MaxEventsPerSecond = c.Emulator.MaxEventsPerSecond
	return config
}
