// Package config loads the viewer's settings. Sources, lowest precedence
// first: struct defaults and the environment (SMS_*), an optional YAML file
// named by --config, then command-line flags that were actually set.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// BaseAddress of the message store. Left empty, the store is discovered
	// through etcd instead.
	BaseAddress string `env:"SMS_BASE_ADDRESS" yaml:"base_address" validate:"omitempty,url"`
	Identity    string `env:"SMS_IDENTITY" yaml:"identity" validate:"required"`
	Secret      string `env:"SMS_SECRET" yaml:"secret"`

	PollInterval   time.Duration `env:"SMS_POLL_INTERVAL,default=250ms" yaml:"poll_interval" validate:"gt=0"`
	RequestTimeout time.Duration `env:"SMS_REQUEST_TIMEOUT,default=5s" yaml:"request_timeout" validate:"gt=0"`

	// Client-side throttle on sends, in sends per second.
	SendRate  float64 `env:"SMS_SEND_RATE,default=2" yaml:"send_rate" validate:"gt=0"`
	SendBurst int     `env:"SMS_SEND_BURST,default=4" yaml:"send_burst" validate:"gt=0"`

	// Comma-separated etcd endpoints used for store discovery and intents.
	EtcdEndpoints string `env:"SMS_ETCD_ENDPOINTS" yaml:"etcd_endpoints"`
	ServiceName   string `env:"SMS_SERVICE_NAME,default=sms-store" yaml:"service_name" validate:"required"`
	Balancer      string `env:"SMS_BALANCER,default=consistent-hash" yaml:"balancer" validate:"oneof=round-robin weighted-random consistent-hash"`

	LogLevel string `env:"SMS_LOG_LEVEL,default=INFO" yaml:"log_level"`
	LogFile  string `env:"SMS_LOG_FILE,default=sms-viewer.log" yaml:"log_file"`

	// Container subscribes to host intents over etcd.
	Container bool `env:"SMS_CONTAINER,default=false" yaml:"container"`
}

// Etcd returns the configured etcd endpoints, empty entries dropped.
func (c Config) Etcd() []string {
	return lo.FilterMap(strings.Split(c.EtcdEndpoints, ","), func(s string, _ int) (string, bool) {
		s = strings.TrimSpace(s)
		return s, s != ""
	})
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(validateEtcdUse, Config{})
	return v
}

// validateEtcdUse checks the settings that depend on etcd against the parsed
// endpoint list, so a value like "," counts as no etcd at all.
func validateEtcdUse(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(Config)
	if len(cfg.Etcd()) > 0 {
		return
	}
	if cfg.BaseAddress == "" {
		sl.ReportError(cfg.BaseAddress, "BaseAddress", "BaseAddress", "required_without_etcd", "")
	}
	if cfg.Container {
		sl.ReportError(cfg.Container, "Container", "Container", "requires_etcd", "")
	}
}

// Load builds the Config from environ (os.Environ() layout) and args
// (without the program name).
func Load(args []string, environ []string) (Config, error) {
	var flags Config
	var configFile string

	fs := pflag.NewFlagSet("sms-viewer", pflag.ContinueOnError)
	fs.StringVar(&configFile, "config", "", "YAML config file")
	fs.StringVar(&flags.BaseAddress, "base-address", "", "message store base address, e.g. http://localhost:8080")
	fs.StringVar(&flags.Identity, "identity", "", "agent name to log in as")
	fs.StringVar(&flags.Secret, "secret", "", "password for --identity")
	fs.DurationVar(&flags.PollInterval, "poll-interval", 0, "how often to fetch the message log")
	fs.DurationVar(&flags.RequestTimeout, "request-timeout", 0, "per-request timeout")
	fs.Float64Var(&flags.SendRate, "send-rate", 0, "sends allowed per second")
	fs.IntVar(&flags.SendBurst, "send-burst", 0, "sends allowed in a burst")
	fs.StringVar(&flags.EtcdEndpoints, "etcd", "", "comma-separated etcd endpoints for store discovery")
	fs.StringVar(&flags.ServiceName, "service", "", "service name the stores register under")
	fs.StringVar(&flags.Balancer, "balancer", "", "round-robin, weighted-random or consistent-hash")
	fs.StringVar(&flags.LogLevel, "log-level", "", "DEBUG, INFO, WARN or ERROR")
	fs.StringVar(&flags.LogFile, "log-file", "", "file the log is written to")
	fs.BoolVar(&flags.Container, "container", false, "receive host intents over etcd")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	var cfg Config
	es, err := env.EnvironToEnvSet(environ)
	if err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	if err := env.Unmarshal(es, &cfg); err != nil {
		return Config{}, fmt.Errorf("environment: %w", err)
	}

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", configFile, err)
		}
	}

	fs.Visit(func(f *pflag.Flag) {
		overrideFromFlag(&cfg, &flags, f.Name)
	})

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func overrideFromFlag(cfg, flags *Config, name string) {
	switch name {
	case "base-address":
		cfg.BaseAddress = flags.BaseAddress
	case "identity":
		cfg.Identity = flags.Identity
	case "secret":
		cfg.Secret = flags.Secret
	case "poll-interval":
		cfg.PollInterval = flags.PollInterval
	case "request-timeout":
		cfg.RequestTimeout = flags.RequestTimeout
	case "send-rate":
		cfg.SendRate = flags.SendRate
	case "send-burst":
		cfg.SendBurst = flags.SendBurst
	case "etcd":
		cfg.EtcdEndpoints = flags.EtcdEndpoints
	case "service":
		cfg.ServiceName = flags.ServiceName
	case "balancer":
		cfg.Balancer = flags.Balancer
	case "log-level":
		cfg.LogLevel = flags.LogLevel
	case "log-file":
		cfg.LogFile = flags.LogFile
	case "container":
		cfg.Container = flags.Container
	}
}
