package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort       = 3000
	DefaultQueueName  = "journey-uploads"
	DefaultSummaryTTL = time.Hour
	DefaultStatusTTL  = 24 * time.Hour
)

// Config is the global application configuration
var Config AppConfig

var searchPaths = []string{"config.yml", "/etc/tfl-wrapped/config.yml"}

// LoadAppConfig loads config.yml from CONFIG_PATH or the first search path
// that exists, and stores it in Config.
func LoadAppConfig() error {
	paths := searchPaths
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		paths = []string{p}
	}

	var err error
	for _, p := range paths {
		var cfg *AppConfig
		cfg, err = Load(p)
		if err == nil {
			Config = *cfg
			return nil
		}
		if !os.IsNotExist(err) {
			return err
		}
	}
	return err
}

// Load reads and validates a single config file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Queue.Name == "" {
		cfg.Queue.Name = DefaultQueueName
	}
	if cfg.Cache.SummaryTTL == 0 {
		cfg.Cache.SummaryTTL = DefaultSummaryTTL
	}
	if cfg.Cache.StatusTTL == 0 {
		cfg.Cache.StatusTTL = DefaultStatusTTL
	}
}
