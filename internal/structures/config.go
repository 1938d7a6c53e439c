package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

// StorageConfig selects the key-value backend behind the record store.
// DSN is a file path for bolt and sqlite and a connection string for postgres.
type StorageConfig struct {
	Backend string `yaml:"backend" validate:"required|in:memory,file,bolt,sqlite,postgres"`
	DSN     string `yaml:"dsn"`
}

type SyncConfig struct {
	Enabled   bool   `yaml:"enabled"`
	RedisAddr string `yaml:"redisAddr"`
	Channel   string `yaml:"channel"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
	// TTL in seconds for cached query results; 0 keeps them until invalidated.
	TTL int `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	WebServer   Server        `yaml:"webServer"`
	Storage     StorageConfig `yaml:"storage"`
	Persistence Persistence   `yaml:"persistence"`
	Sync        SyncConfig    `yaml:"sync"`
	Logger      LoggerConfig  `yaml:"logger"`
	Cache       CacheConfig   `yaml:"cache"`
	Metrics     MetricsConfig `yaml:"metrics"`
}
