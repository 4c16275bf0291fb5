package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		Server     ServerConfig     `mapstructure:"server"`
		Database   DatabaseConfig   `mapstructure:"database"`
		Redis      RedisConfig      `mapstructure:"redis"`
		Auth       AuthConfig       `mapstructure:"auth"`
		Suggestion SuggestionConfig `mapstructure:"suggestion"`
		Log        LogConfig        `mapstructure:"log"`
	}

	ServerConfig struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`
	}

	DatabaseConfig struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		DBName   string `mapstructure:"dbname"`
		SSLMode  string `mapstructure:"sslmode"`
	}

	RedisConfig struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	}

	AuthConfig struct {
		JWTSecret      string `mapstructure:"jwt_secret"`
		TokenTTLMinute int    `mapstructure:"token_ttl_minute"`
	}

	SuggestionConfig struct {
		BaseURL     string `mapstructure:"base_url"`
		APIKey      string `mapstructure:"api_key"`
		CacheTTLMin int    `mapstructure:"cache_ttl_min"`
	}

	LogConfig struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	}
)

var (
	instance *Config
	mu       sync.RWMutex
)

// Load reads .env (if present) and environment variables into the config.
// Environment keys use underscores, e.g. SERVER_PORT, DATABASE_HOST, AUTH_JWT_SECRET.
func Load() (*Config, error) {
	// .env is optional; env vars always win
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var cfg Config
	// Bind each leaf explicitly so AutomaticEnv can see them
	for _, key := range []string{
		"server.host", "server.port",
		"database.host", "database.port", "database.user", "database.password",
		"database.dbname", "database.sslmode",
		"redis.addr", "redis.password", "redis.db",
		"auth.jwt_secret", "auth.token_ttl_minute",
		"suggestion.base_url", "suggestion.api_key", "suggestion.cache_ttl_min",
		"log.level", "log.format",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	mu.Lock()
	instance = &cfg
	mu.Unlock()

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 7070)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "globetrotter")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("auth.token_ttl_minute", 1440)
	v.SetDefault("suggestion.cache_ttl_min", 15)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Get returns the loaded config, panicking if Load was never called.
func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		panic("config: Get called before Load")
	}
	return instance
}

// GetSafe returns the loaded config and whether it is initialized.
func GetSafe() (*Config, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return instance, instance != nil
}
