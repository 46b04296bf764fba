package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRedirectDelay     = 2000 * time.Millisecond
	DefaultSuggestionLatency = 1000 * time.Millisecond
)

func initializeConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or cannot be loaded: %v", err)
	}

	cfg := &Config{}

	cfg.Server.Host = getEnv("SERVER_HOST", "localhost")
	cfg.Server.Port = uint64(getEnvAsInt("SERVER_PORT", 8080))
	cfg.Server.APIHost = getEnv("API_HOST", "localhost:8080")
	cfg.Server.Version = getEnv("VERSION", "1.0.0")
	cfg.Server.Mode = getEnv("GIN_MODE", "release")

	cfg.Database.Driver = getEnv("DB_DRIVER", "mysql")
	cfg.Database.Path = getEnv("DB_PATH", "peaceconnect.db")
	cfg.Database.Host = getEnv("DB_HOST", "127.0.0.1")
	cfg.Database.Port = getEnvAsInt("DB_PORT", 3306)
	cfg.Database.User = getEnv("DB_USER", "Projet2A")
	cfg.Database.Password = getEnv("DB_PASSWORD", "")
	cfg.Database.Name = getEnv("DB_NAME", "peaceconnect")
	cfg.Database.AutoMigrate = getEnvAsBool("DB_AUTO_MIGRATE", true)
	cfg.Database.SeedDefaults = getEnvAsBool("DB_SEED_DEFAULTS", true)

	cfg.Redis.Enabled = getEnvAsBool("REDIS_ENABLED", false)
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "127.0.0.1:6379")
	cfg.Redis.Username = getEnv("REDIS_USERNAME", "")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", 0)
	cfg.Redis.CacheTTL = getEnvAsDuration("REDIS_CACHE_TTL", 5*time.Minute)

	cfg.EnableNacos = getEnvAsBool("ENABLE_NACOS", false)
	cfg.Nacos.Host = getEnv("NACOS_HOST", "localhost")
	cfg.Nacos.Port = uint64(getEnvAsInt("NACOS_PORT", 8848))
	cfg.Nacos.NamespaceId = getEnv("NACOS_NAMESPACE", "public")
	cfg.Nacos.Group = getEnv("NACOS_GROUP", "DEFAULT_GROUP")
	cfg.Nacos.DataId = getEnv("NACOS_DATAID", "peaceconnect")
	cfg.Nacos.Username = getEnv("NACOS_USERNAME", "nacos")
	cfg.Nacos.Password = getEnv("NACOS_PASSWORD", "nacos")

	cfg.Submission.Endpoint = getEnv("SUBMISSION_ENDPOINT", "http://localhost:8080/api/help-request")
	cfg.Submission.HealthEndpoint = getEnv("SUBMISSION_HEALTH_ENDPOINT", "")
	cfg.Submission.RedirectURL = getEnv("SUBMISSION_REDIRECT_URL", "index.html")
	cfg.Submission.RedirectDelay = getEnvAsDuration("SUBMISSION_REDIRECT_DELAY", DefaultRedirectDelay)
	cfg.Submission.Timeout = getEnvAsDuration("SUBMISSION_TIMEOUT", 30*time.Second)

	cfg.Suggestion.Latency = getEnvAsDuration("SUGGESTION_LATENCY", DefaultSuggestionLatency)

	return cfg
}

// loadFile overlays a YAML document on top of cfg. Keys absent from the
// document keep their current value.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("2s") or bare milliseconds ("2000").
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}
