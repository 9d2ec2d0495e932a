package config

import (
	"errors"
	"fmt"
	"os"

	"frontdesk/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Server     ServerConfig     `yaml:"server"`
	Stream     StreamConfig     `yaml:"stream"`
	Auth       AuthConfig       `yaml:"auth"`
	Sessions   SessionsConfig   `yaml:"sessions"`
	Redis      RedisConfig      `yaml:"redis"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Exports    ExportConfig     `yaml:"exports"`
	Seed       SeedConfig       `yaml:"seed"`
	Consumer   ConsumerConfig   `yaml:"consumer"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
	// AllowedOrigin is the front-end origin allowed to use the API and
	// the credentialed notification stream.
	AllowedOrigin string `yaml:"allowed_origin"`
}

type StreamConfig struct {
	HeartbeatSeconds int `yaml:"heartbeat_seconds"`
	Buffer           int `yaml:"buffer"`
}

type AuthConfig struct {
	JWTSecret        string `yaml:"jwt_secret"`
	AccessTTLMinutes int    `yaml:"access_ttl_minutes"`
	BcryptCost       int    `yaml:"bcrypt_cost"`
}

type SessionsConfig struct {
	// Backend selects "memory" or "redis" (redis fails over to memory).
	Backend    string `yaml:"backend"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

type SeedConfig struct {
	Path string `yaml:"path"`
}

type ConsumerConfig struct {
	Reconnect      bool `yaml:"reconnect"`
	MaxRetries     int  `yaml:"max_retries"`
	InitialDelayMS int  `yaml:"initial_delay_ms"`
	MaxDelayMS     int  `yaml:"max_delay_ms"`
}

func Load(configPath string) (*Config, error) {
	// .env is optional; when present its values feed ${VAR} expansion
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Environment substitution inside the YAML before parsing
	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" || c.Auth.JWTSecret == "CHANGE_ME" {
		return errors.New("auth jwt secret is required")
	}

	switch c.Sessions.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown sessions backend %q", c.Sessions.Backend)
	}

	if c.Sessions.Backend == "redis" && c.Redis.Address == "" {
		return errors.New("redis address is required for the redis sessions backend")
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "frontdesk"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Stream.HeartbeatSeconds == 0 {
		c.Stream.HeartbeatSeconds = models.DefaultHeartbeatSeconds
	}
	if c.Stream.Buffer == 0 {
		c.Stream.Buffer = models.DefaultStreamBuffer
	}
	if c.Auth.AccessTTLMinutes == 0 {
		c.Auth.AccessTTLMinutes = 60
	}
	if c.Auth.BcryptCost == 0 {
		c.Auth.BcryptCost = 10
	}
	if c.Sessions.Backend == "" {
		c.Sessions.Backend = "memory"
	}
	if c.Sessions.TTLSeconds == 0 {
		c.Sessions.TTLSeconds = models.DefaultSessionTTL
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if c.Exports.Path == "" {
		c.Exports.Path = "exports"
	}
	if c.Consumer.MaxRetries == 0 {
		c.Consumer.MaxRetries = 10
	}
	if c.Consumer.InitialDelayMS == 0 {
		c.Consumer.InitialDelayMS = 1000
	}
	if c.Consumer.MaxDelayMS == 0 {
		c.Consumer.MaxDelayMS = 30000
	}
}
