package config

import (
	"time"
)

type Config struct {
	Server      ServerConfig     `yaml:"server"`
	Database    DatabaseConfig   `yaml:"database"`
	Redis       RedisConfig      `yaml:"redis"`
	Nacos       NacosConfig      `yaml:"nacos"`
	EnableNacos bool             `yaml:"enable_nacos"`
	Submission  SubmissionConfig `yaml:"submission"`
	Suggestion  SuggestionConfig `yaml:"suggestion"`
}

type ServerConfig struct {
	Host    string `yaml:"host"`
	Port    uint64 `yaml:"port"`
	APIHost string `yaml:"api_host"`
	Version string `yaml:"version"`
	// Mode is the gin mode: debug, release or test.
	Mode string `yaml:"mode"`
}

type DatabaseConfig struct {
	// Driver is "mysql" or "sqlite". Path is the sqlite file.
	Driver       string `yaml:"driver"`
	Path         string `yaml:"path"`
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	Name         string `yaml:"name"`
	AutoMigrate  bool   `yaml:"auto_migrate"`
	SeedDefaults bool   `yaml:"seed_defaults"`
}

type RedisConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Addr     string        `yaml:"addr"`
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type NacosConfig struct {
	Host        string `yaml:"host"`
	Port        uint64 `yaml:"port"`
	NamespaceId string `yaml:"namespace_id"`
	Group       string `yaml:"group"`
	DataId      string `yaml:"data_id"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
}

// SubmissionConfig drives the help-request submission client.
type SubmissionConfig struct {
	Endpoint       string        `yaml:"endpoint"`
	HealthEndpoint string        `yaml:"health_endpoint"`
	RedirectURL    string        `yaml:"redirect_url"`
	RedirectDelay  time.Duration `yaml:"redirect_delay"`
	Timeout        time.Duration `yaml:"timeout"`
}

type SuggestionConfig struct {
	Latency time.Duration `yaml:"latency"`
}

// NacosAppConfig is the flat document stored in Nacos. Keys mirror the
// environment variable names.
type NacosAppConfig struct {
	Port                string `json:"PORT" yaml:"PORT"`
	APIHost             string `json:"API_HOST" yaml:"API_HOST"`
	Version             string `json:"VERSION" yaml:"VERSION"`
	DBHost              string `json:"DB_HOST" yaml:"DB_HOST"`
	DBPort              int    `json:"DB_PORT" yaml:"DB_PORT"`
	DBName              string `json:"DB_NAME" yaml:"DB_NAME"`
	DBUser              string `json:"DB_USER" yaml:"DB_USER"`
	DBPassword          string `json:"DB_PASSWORD" yaml:"DB_PASSWORD"`
	RedisHost           string `json:"REDIS_HOST" yaml:"REDIS_HOST"`
	RedisPort           string `json:"REDIS_PORT" yaml:"REDIS_PORT"`
	RedisUsername       string `json:"REDIS_USERNAME" yaml:"REDIS_USERNAME"`
	RedisPassword       string `json:"REDIS_PASSWORD" yaml:"REDIS_PASSWORD"`
	RedisDB             int    `json:"REDIS_DB" yaml:"REDIS_DB"`
	SubmissionEndpoint  string `json:"SUBMISSION_ENDPOINT" yaml:"SUBMISSION_ENDPOINT"`
	SubmissionRedirect  string `json:"SUBMISSION_REDIRECT_URL" yaml:"SUBMISSION_REDIRECT_URL"`
	SuggestionLatencyMs int    `json:"SUGGESTION_LATENCY_MS" yaml:"SUGGESTION_LATENCY_MS"`
}

func (c *Config) GetDatabaseDriver() string {
	return c.Database.Driver
}

func (c *Config) GetDatabasePath() string {
	return c.Database.Path
}

func (c *Config) GetDatabaseHost() string {
	return c.Database.Host
}

func (c *Config) GetDatabasePort() int {
	return c.Database.Port
}

func (c *Config) GetDatabaseUser() string {
	return c.Database.User
}

func (c *Config) GetDatabasePassword() string {
	return c.Database.Password
}

func (c *Config) GetDatabaseName() string {
	return c.Database.Name
}
