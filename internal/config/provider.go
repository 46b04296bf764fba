package config

import (
	"fmt"
	"os"

	"peaceconnect_service/pkg/logger"
	"peaceconnect_service/pkg/nacosManager"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("config",
	fx.Provide(
		ProvideConfig,
	),
)

// RemoteSource is the part of the Nacos client used for configuration.
type RemoteSource interface {
	GetConfig(dataId, group string) (string, error)
}

// ProvideConfig resolves configuration from defaults, .env, the process
// environment, an optional YAML file named by CONFIG_FILE and, when
// ENABLE_NACOS is set, a Nacos document.
func ProvideConfig(log logger.Logger) (*Config, error) {
	cfg := initializeConfig()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
		log.Info("loaded config file", zap.String("path", path))
	}

	if !cfg.EnableNacos {
		log.Info("nacos disabled, using local configuration")
		return cfg, nil
	}

	client, err := nacosManager.NewNacosClient(&nacosManager.NacosConfig{
		IpAddr:      cfg.Nacos.Host,
		Port:        cfg.Nacos.Port,
		NamespaceId: cfg.Nacos.NamespaceId,
		Group:       cfg.Nacos.Group,
		DataId:      cfg.Nacos.DataId,
		Username:    cfg.Nacos.Username,
		Password:    cfg.Nacos.Password,
	})
	if err != nil {
		log.Warn("nacos client unavailable, using local configuration", zap.Error(err))
		return cfg, nil
	}

	return loadRemote(cfg, client, log), nil
}

// loadRemote never fails: an unreachable or unparsable remote document
// leaves the local configuration in place.
func loadRemote(cfg *Config, src RemoteSource, log logger.Logger) *Config {
	log.Info(fmt.Sprintf("fetching nacos config %s/%s", cfg.Nacos.Group, cfg.Nacos.DataId))

	content, err := src.GetConfig(cfg.Nacos.DataId, cfg.Nacos.Group)
	if err != nil {
		log.Warn("fetch nacos config failed", zap.Error(err))
		return cfg
	}

	remote, err := parseRemote(content)
	if err != nil {
		log.Warn("parse nacos config failed", zap.Error(err))
		return cfg
	}

	applyRemote(cfg, remote, log)
	return cfg
}
