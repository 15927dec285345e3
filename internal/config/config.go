package config

import (
	"time"

	"github.com/spf13/viper"
)

type AuthMode string

const (
	AuthModeNone  AuthMode = "none"  // Every request acts as AUTH_DEFAULT_USERNAME (default)
	AuthModeToken AuthMode = "token" // Bearer API token resolved to a profile
)

type CacheBackend string

const (
	CacheBackendMemory CacheBackend = "memory"
	CacheBackendRedis  CacheBackend = "redis"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Cache
		Redis
		Log
		Tasks
		Auth
		Audit
		Maintenance
		Demo
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Cache struct {
		Backend CacheBackend
		TTL     time.Duration // 0 keeps entries until the backend evicts them
		// KeyPrefix is prepended to every key by the redis backend only.
		KeyPrefix         string
		InvalidateOnWrite bool
	}
	Redis struct {
		Addr           string
		User           string
		Password       string
		DB             int
		PoolSize       int
		DialTimeout    time.Duration
		ConnectTimeout time.Duration
		RetryInterval  time.Duration
		MaxWait        time.Duration
		PingTimeout    time.Duration
	}
	Log struct {
		Level  string
		Pretty bool
	}
	Tasks struct {
		Enabled           bool
		Workers           int
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
	Auth struct {
		Mode            AuthMode
		DefaultUsername string
		TokenExpiry     time.Duration
	}
	Audit struct {
		RetentionDays int // Days to keep audit events (default: 30)
	}
	Maintenance struct {
		Enabled  bool
		Schedule string // Cron format: "30 3 * * *" = daily at 03:30
	}
	Demo struct {
		Enabled bool // Read-only mode: every write request is rejected
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Cache defaults
	v.SetDefault("cache_backend", string(CacheBackendMemory))
	v.SetDefault("cache_ttl", "0s")
	v.SetDefault("cache_key_prefix", "")
	v.SetDefault("cache_invalidate_on_write", false)

	// Redis defaults (only used when cache_backend=redis)
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_user", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_pool_size", 10)
	v.SetDefault("redis_dial_timeout", "5s")
	v.SetDefault("redis_connect_timeout", "30s")
	v.SetDefault("redis_retry_interval", "1s")
	v.SetDefault("redis_max_wait", "10s")
	v.SetDefault("redis_ping_timeout", "2s")

	// Logging defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_pretty", false)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	// Auth defaults
	v.SetDefault("auth_mode", string(AuthModeNone))
	v.SetDefault("auth_default_username", DefaultUsername)
	v.SetDefault("auth_token_expiry", "720h") // 30 days

	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("maintenance_enabled", true)
	v.SetDefault("maintenance_schedule", "30 3 * * *")
	v.SetDefault("demo_mode", false)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Cache: Cache{
			Backend:           CacheBackend(v.GetString("CACHE_BACKEND")),
			TTL:               v.GetDuration("CACHE_TTL"),
			KeyPrefix:         v.GetString("CACHE_KEY_PREFIX"),
			InvalidateOnWrite: v.GetBool("CACHE_INVALIDATE_ON_WRITE"),
		},
		Redis: Redis{
			Addr:           v.GetString("REDIS_ADDR"),
			User:           v.GetString("REDIS_USER"),
			Password:       v.GetString("REDIS_PASSWORD"),
			DB:             v.GetInt("REDIS_DB"),
			PoolSize:       v.GetInt("REDIS_POOL_SIZE"),
			DialTimeout:    v.GetDuration("REDIS_DIAL_TIMEOUT"),
			ConnectTimeout: v.GetDuration("REDIS_CONNECT_TIMEOUT"),
			RetryInterval:  v.GetDuration("REDIS_RETRY_INTERVAL"),
			MaxWait:        v.GetDuration("REDIS_MAX_WAIT"),
			PingTimeout:    v.GetDuration("REDIS_PING_TIMEOUT"),
		},
		Log: Log{
			Level:  v.GetString("LOG_LEVEL"),
			Pretty: v.GetBool("LOG_PRETTY"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
		Auth: Auth{
			Mode:            AuthMode(v.GetString("AUTH_MODE")),
			DefaultUsername: v.GetString("AUTH_DEFAULT_USERNAME"),
			TokenExpiry:     v.GetDuration("AUTH_TOKEN_EXPIRY"),
		},
		Audit: Audit{
			RetentionDays: v.GetInt("AUDIT_RETENTION_DAYS"),
		},
		Maintenance: Maintenance{
			Enabled:  v.GetBool("MAINTENANCE_ENABLED"),
			Schedule: v.GetString("MAINTENANCE_SCHEDULE"),
		},
		Demo: Demo{
			Enabled: v.GetBool("DEMO_MODE"),
		},
	}
}
