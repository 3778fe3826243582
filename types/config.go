package types

import "time"

type ConfigManager interface {
	GetConfig() *FrameworkConfig
}

type FrameworkConfig struct {
	Logger      *LoggerConfig      `yaml:"logger" validate:"required"`
	Cache       *CacheConfig       `yaml:"cache"`
	Metrics     *MetricsConfig     `yaml:"metrics"`
	Middlewares *MiddlewaresConfig `yaml:"middlewares"`
}

type LoggerConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error fatal"`
	Format string `yaml:"format" validate:"omitempty,oneof=console json"`
	Output string `yaml:"output" validate:"omitempty,oneof=stdout stderr file"`
	File   string `yaml:"file"`
}

type CacheConfig struct {
	Enabled    bool                   `yaml:"enabled"`
	Type       string                 `yaml:"type" validate:"omitempty,oneof=memory redis"`
	DefaultTTL time.Duration          `yaml:"default_ttl"`
	Config     map[string]interface{} `yaml:"config"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type MiddlewaresConfig struct {
	Logging     *MiddlewareItemConfig `yaml:"logging"`
	Compression *MiddlewareItemConfig `yaml:"compression"`
	Auth        *MiddlewareItemConfig `yaml:"auth"`
	Cache       *MiddlewareItemConfig `yaml:"cache"`
}

type MiddlewareItemConfig struct {
	Enabled bool                   `yaml:"enabled"`
	Params  map[string]interface{} `yaml:"params"`
}
