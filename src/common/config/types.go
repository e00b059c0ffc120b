package config

import "time"

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// NetworkConfig points at the station/line network file
type NetworkConfig struct {
	Path string `yaml:"path" validate:"required"`
	// Strict turns soft network inconsistencies into a startup failure
	Strict bool `yaml:"strict"`
}

// InferenceConfig tunes line inference
type InferenceConfig struct {
	Workers  int `yaml:"workers" validate:"gte=0"`
	MemoSize int `yaml:"memo_size" validate:"gte=0"`
}

// CacheConfig contains redis expiry settings
type CacheConfig struct {
	SummaryTTL time.Duration `yaml:"summary_ttl" validate:"gte=0"`
	StatusTTL  time.Duration `yaml:"status_ttl" validate:"gte=0"`
}

// QueueConfig names the upload queue
type QueueConfig struct {
	Name string `yaml:"name" validate:"required"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server    ServerConfig    `yaml:"server"`
	Network   NetworkConfig   `yaml:"network"`
	Inference InferenceConfig `yaml:"inference"`
	Cache     CacheConfig     `yaml:"cache"`
	Queue     QueueConfig     `yaml:"queue"`
}
