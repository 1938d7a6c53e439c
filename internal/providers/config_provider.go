package providers

import (
	"elevate/internal/structures"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const defaultSyncChannel = "elevate:changes"

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.SetDefault("storage.backend", "file")
	viper.SetDefault("sync.channel", defaultSyncChannel)

	viper.BindEnv("logger.level", "ELEVATE_LOG_LEVEL")
	viper.BindEnv("storage.backend", "ELEVATE_STORAGE_BACKEND")
	viper.BindEnv("storage.dsn", "ELEVATE_STORAGE_DSN")
	viper.BindEnv("persistence.saveInterval", "ELEVATE_SAVE_INTERVAL")
	viper.BindEnv("sync.enabled", "ELEVATE_SYNC_ENABLED")
	viper.BindEnv("sync.redisAddr", "ELEVATE_REDIS_ADDR")
	viper.BindEnv("cache.enabled", "ELEVATE_CACHE_ENABLED")
	viper.BindEnv("cache.size", "ELEVATE_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "ElevateInternSync"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
