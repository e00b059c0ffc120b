package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "network:\n  path: tube_network.json\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != DefaultPort {
		t.Errorf("expected port %d, got %d", DefaultPort, cfg.Server.Port)
	}
	if cfg.Queue.Name != DefaultQueueName {
		t.Errorf("expected queue %q, got %q", DefaultQueueName, cfg.Queue.Name)
	}
	if cfg.Cache.SummaryTTL != time.Hour || cfg.Cache.StatusTTL != 24*time.Hour {
		t.Errorf("unexpected cache defaults %+v", cfg.Cache)
	}
	if cfg.Inference.Workers != 0 || cfg.Inference.MemoSize != 0 {
		t.Errorf("inference should default to sequential without memo, got %+v", cfg.Inference)
	}
}

func TestLoad_AllFields(t *testing.T) {
	body := `server:
  port: 8080
network:
  path: /data/tube_network.json
  strict: true
inference:
  workers: 4
  memo_size: 2048
cache:
  summary_ttl: 15m
  status_ttl: 2h
queue:
  name: uploads
`
	cfg, err := Load(writeConfig(t, body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := AppConfig{
		Server:    ServerConfig{Port: 8080},
		Network:   NetworkConfig{Path: "/data/tube_network.json", Strict: true},
		Inference: InferenceConfig{Workers: 4, MemoSize: 2048},
		Cache:     CacheConfig{SummaryTTL: 15 * time.Minute, StatusTTL: 2 * time.Hour},
		Queue:     QueueConfig{Name: "uploads"},
	}
	if *cfg != expected {
		t.Errorf("expected %+v, got %+v", expected, *cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing network path", "server:\n  port: 8080\n", "Path"},
		{"negative port", "server:\n  port: -1\nnetwork:\n  path: n.json\n", "Port"},
		{"negative workers", "network:\n  path: n.json\ninference:\n  workers: -2\n", "Workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected validation errors, got %v", err)
			}
			if verrs[0].Field() != tt.field {
				t.Errorf("expected failure on %s, got %s", tt.field, verrs[0].Field())
			}
		})
	}
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "network: [unterminated\n"))
	if err == nil || !strings.Contains(err.Error(), "parsing config") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestLoadAppConfig_ConfigPath(t *testing.T) {
	orig := Config
	defer func() { Config = orig }()

	t.Setenv("CONFIG_PATH", writeConfig(t, "network:\n  path: from-env.json\n"))

	if err := LoadAppConfig(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Config.Network.Path != "from-env.json" {
		t.Errorf("expected path from CONFIG_PATH, got %q", Config.Network.Path)
	}
}

func TestLoadAppConfig_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yml"))

	if err := LoadAppConfig(); !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
