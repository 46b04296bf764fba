package config

import (
	"strconv"
	"time"

	"peaceconnect_service/pkg/logger"

	"go.uber.org/zap"
)

// applyRemote overlays the non-empty values of a Nacos document on cfg.
func applyRemote(cfg *Config, remote *NacosAppConfig, log logger.Logger) {
	if remote.Port != "" {
		if port, err := strconv.ParseUint(remote.Port, 10, 64); err == nil {
			cfg.Server.Port = port
		} else {
			log.Warn("ignoring invalid PORT from nacos", zap.String("value", remote.Port))
		}
	}
	if remote.APIHost != "" {
		cfg.Server.APIHost = remote.APIHost
	}
	if remote.Version != "" {
		cfg.Server.Version = remote.Version
	}

	if remote.DBHost != "" {
		cfg.Database.Host = remote.DBHost
		// avoid resolving to ::1 on hosts where mysql only listens on IPv4
		if cfg.Database.Host == "localhost" {
			cfg.Database.Host = "127.0.0.1"
		}
	}
	if remote.DBPort != 0 {
		cfg.Database.Port = remote.DBPort
	}
	if remote.DBName != "" {
		cfg.Database.Name = remote.DBName
	}
	if remote.DBUser != "" {
		cfg.Database.User = remote.DBUser
	}
	if remote.DBPassword != "" {
		cfg.Database.Password = remote.DBPassword
	}

	if remote.RedisHost != "" || remote.RedisPort != "" {
		host := remote.RedisHost
		if host == "" {
			host = "localhost"
		}
		port := remote.RedisPort
		if port == "" {
			port = "6379"
		}
		cfg.Redis.Addr = host + ":" + port
		cfg.Redis.Enabled = true
	}
	if remote.RedisUsername != "" {
		cfg.Redis.Username = remote.RedisUsername
	}
	if remote.RedisPassword != "" {
		cfg.Redis.Password = remote.RedisPassword
	}
	if remote.RedisDB != 0 {
		cfg.Redis.DB = remote.RedisDB
	}

	if remote.SubmissionEndpoint != "" {
		cfg.Submission.Endpoint = remote.SubmissionEndpoint
	}
	if remote.SubmissionRedirect != "" {
		cfg.Submission.RedirectURL = remote.SubmissionRedirect
	}
	if remote.SuggestionLatencyMs > 0 {
		cfg.Suggestion.Latency = time.Duration(remote.SuggestionLatencyMs) * time.Millisecond
	}

	log.Info("applied nacos configuration",
		zap.String("db_host", cfg.Database.Host),
		zap.Int("db_port", cfg.Database.Port),
		zap.String("db_name", cfg.Database.Name),
		zap.Uint64("port", cfg.Server.Port),
	)
}
