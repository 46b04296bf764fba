package databaseManager

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Settings is the view of the service configuration this package needs.
type Settings interface {
	GetDatabaseDriver() string
	GetDatabasePath() string
	GetDatabaseHost() string
	GetDatabasePort() int
	GetDatabaseUser() string
	GetDatabasePassword() string
	GetDatabaseName() string
}

// ProvideMySQLConfig maps the service configuration to a MySQLConfig.
func ProvideMySQLConfig(cfg Settings) *MySQLConfig {
	// force IPv4
	host := cfg.GetDatabaseHost()
	if host == "localhost" {
		host = "127.0.0.1"
	}

	return &MySQLConfig{
		Host:      host,
		Port:      cfg.GetDatabasePort(),
		User:      cfg.GetDatabaseUser(),
		Password:  cfg.GetDatabasePassword(),
		Name:      cfg.GetDatabaseName(),
		Charset:   "utf8mb4",
		ParseTime: true,
		Loc:       "Local",
	}
}

// Open picks the driver named by cfg.
func Open(cfg Settings, log *zap.Logger) (DatabaseManager, error) {
	switch cfg.GetDatabaseDriver() {
	case "", "mysql":
		return NewMySQLManager(ProvideMySQLConfig(cfg), log)
	case "sqlite":
		return NewSQLiteManager(cfg.GetDatabasePath())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.GetDatabaseDriver())
	}
}

// ProvideDatabaseManager opens the database and closes it when the app stops.
func ProvideDatabaseManager(lc fx.Lifecycle, cfg Settings, log *zap.Logger) (DatabaseManager, error) {
	manager, err := Open(cfg, log)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Info("closing database connection")
			return manager.Close()
		},
	})

	return manager, nil
}
