package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Log       LogConfig
	Worker    WorkerConfig
	Engine    EngineConfig
	Regions   RegionsConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	PinsCacheTTL  time.Duration
	StatsCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
}

// EngineConfig configures the client-side voting engine (API client + poll loop).
type EngineConfig struct {
	BackendURL     string
	PollInterval   time.Duration
	RequestTimeout time.Duration
}

type RegionsConfig struct {
	Path string
}

type RateLimitConfig struct {
	CreatePerMinute int
	Burst           int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			PinsCacheTTL:  time.Duration(viper.GetInt("PINS_CACHE_TTL")) * time.Second,
			StatsCacheTTL: time.Duration(viper.GetInt("STATS_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        viper.GetInt("WORKER_MAX_RETRIES"),
		},
		Engine: EngineConfig{
			BackendURL:     viper.GetString("ENGINE_BACKEND_URL"),
			PollInterval:   time.Duration(viper.GetInt("ENGINE_POLL_INTERVAL")) * time.Second,
			RequestTimeout: time.Duration(viper.GetInt("ENGINE_REQUEST_TIMEOUT")) * time.Second,
		},
		Regions: RegionsConfig{
			Path: viper.GetString("REGIONS_PATH"),
		},
		RateLimit: RateLimitConfig{
			CreatePerMinute: viper.GetInt("RATE_LIMIT_CREATE_PER_MINUTE"),
			Burst:           viper.GetInt("RATE_LIMIT_BURST"),
		},
	}

	// Set default values if not provided
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "pin-stats-workers"
	}
	if cfg.Worker.StreamReadTimeout == 0 {
		cfg.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}
	if cfg.Cache.PinsCacheTTL == 0 {
		cfg.Cache.PinsCacheTTL = 10 * time.Second
	}
	if cfg.Cache.StatsCacheTTL == 0 {
		cfg.Cache.StatsCacheTTL = 5 * time.Minute
	}
	// The original map client polled every 10 seconds.
	if cfg.Engine.PollInterval == 0 {
		cfg.Engine.PollInterval = 10 * time.Second
	}
	// The legacy client had no timeout at all; a bounded one is safer.
	if cfg.Engine.RequestTimeout == 0 {
		cfg.Engine.RequestTimeout = 5 * time.Second
	}
	if cfg.Regions.Path == "" {
		cfg.Regions.Path = "assets/regions.yaml"
	}
	if cfg.RateLimit.CreatePerMinute == 0 {
		cfg.RateLimit.CreatePerMinute = 10
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 5
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
