package databaseManager

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MySQLConfig holds the MySQL connection settings.
type MySQLConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	Name      string
	Charset   string
	ParseTime bool
	Loc       string
}

// DatabaseManager owns the GORM connection of the service.
type DatabaseManager interface {
	GetDB() *gorm.DB
	PingContext(ctx context.Context) error
	Close() error
}

type gormManager struct {
	db *gorm.DB
}

func (m *gormManager) GetDB() *gorm.DB {
	return m.db
}

func (m *gormManager) PingContext(ctx context.Context) error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (m *gormManager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	}
}

func (c *MySQLConfig) dsn(withDB bool) string {
	port := c.Port
	if port <= 0 || port > 65535 {
		port = 3306
	}
	cred := c.User
	if c.Password != "" {
		cred += ":" + c.Password
	}
	name := ""
	if withDB {
		name = c.Name
	}
	return fmt.Sprintf("%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=%s&allowNativePasswords=true",
		cred, c.Host, port, name, c.Charset, c.ParseTime, c.Loc)
}

// NewMySQLManager connects to MySQL. When the database does not exist yet
// it is created with utf8mb4 and the connection retried once.
func NewMySQLManager(config *MySQLConfig, log *zap.Logger) (DatabaseManager, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("connecting to MySQL",
		zap.String("host", config.Host),
		zap.Int("port", config.Port),
		zap.String("user", config.User),
		zap.String("database", config.Name),
		zap.Bool("password_set", config.Password != ""))

	db, err := gorm.Open(mysql.Open(config.dsn(true)), gormConfig())
	if err != nil {
		log.Warn("connection failed, trying to create the database", zap.Error(err))
		if cerr := createDatabase(config); cerr != nil {
			log.Error("could not create database", zap.Error(cerr))
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if db, err = gorm.Open(mysql.Open(config.dsn(true)), gormConfig()); err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &gormManager{db: db}, nil
}

func createDatabase(config *MySQLConfig) error {
	db, err := gorm.Open(mysql.Open(config.dsn(false)), gormConfig())
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	return db.Exec(fmt.Sprintf(
		"CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci", config.Name)).Error
}
