package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Environment string `json:"environment"`
	LogLevel    string `json:"log_level"`

	// CORS
	CORSOrigins []string `json:"cors_origins"`

	// Rate Limiting
	RateLimitPerMinute int `json:"rate_limit_per_minute"`

	// Database
	DatabaseURL    string `json:"database_url"`
	DBMaxOpenConns int    `json:"db_max_open_conns"`
	DBMaxIdleConns int    `json:"db_max_idle_conns"`

	// Chat completion service
	ChatURL            string  `json:"chat_url"`
	ChatModel          string  `json:"chat_model"`
	ChatTimeoutSeconds int     `json:"chat_timeout_seconds"`
	SQLGenTemperature  float64 `json:"sql_gen_temperature"`
	SQLGenMaxTokens    int     `json:"sql_gen_max_tokens"`
	AnswerTemperature  float64 `json:"answer_temperature"`
}

// ChatTimeout returns the per-call upper bound on completion wait time.
func (c *Config) ChatTimeout() time.Duration {
	return time.Duration(c.ChatTimeoutSeconds) * time.Second
}

func Load() (*Config, error) {
	// .env is optional; real environment variables win either way
	_ = godotenv.Load()

	cfg := &Config{
		Host:               DefaultHost,
		Port:               DefaultPort,
		Environment:        DefaultEnvironment,
		LogLevel:           DefaultLogLevel,
		CORSOrigins:        DefaultCORSOrigins,
		RateLimitPerMinute: DefaultRateLimitPerMinute,
		DBMaxOpenConns:     DefaultDBMaxOpenConns,
		DBMaxIdleConns:     DefaultDBMaxIdleConns,
		ChatURL:            DefaultChatURL,
		ChatModel:          DefaultChatModel,
		ChatTimeoutSeconds: DefaultChatTimeoutSeconds,
		SQLGenTemperature:  DefaultSQLGenTemperature,
		SQLGenMaxTokens:    DefaultSQLGenMaxTokens,
		AnswerTemperature:  DefaultAnswerTemperature,
	}

	// Load from JSON config file if specified
	if path := getEnv("FINCHAT_CONFIG", ""); path != "" {
		if err := loadJSON(path, cfg); err != nil {
			return nil, err
		}
	}

	// Environment overrides
	applyEnvOverrides(cfg)

	return cfg, nil
}

func loadJSON(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, cfg)
}

func applyEnvOverrides(cfg *Config) {
	if v := getEnv("FINCHAT_HOST", ""); v != "" {
		cfg.Host = v
	}
	if v := getEnv("FINCHAT_PORT", ""); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := getEnv("FINCHAT_ENV", ""); v != "" {
		cfg.Environment = v
	}
	if v := getEnv("FINCHAT_LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}
	if v := getEnv("FINCHAT_CORS_ORIGINS", ""); v != "" {
		cfg.CORSOrigins = strings.Split(v, ",")
	}
	if v := getEnv("RATE_LIMIT_PER_MINUTE", ""); v != "" {
		if r, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitPerMinute = r
		}
	}
	if v := getEnv("DATABASE_URL", ""); v != "" {
		cfg.DatabaseURL = v
	}
	if v := getEnv("CHAT_URL", ""); v != "" {
		cfg.ChatURL = v
	}
	if v := getEnv("CHAT_MODEL", ""); v != "" {
		cfg.ChatModel = v
	}
	if v := getEnv("CHAT_TIMEOUT_SECONDS", ""); v != "" {
		if t, err := strconv.Atoi(v); err == nil {
			cfg.ChatTimeoutSeconds = t
		}
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
