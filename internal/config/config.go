package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Database  DatabaseConfig  `mapstructure:"database" yaml:"database"`
	Redis     RedisConfig     `mapstructure:"redis" yaml:"redis"`
	Session   SessionConfig   `mapstructure:"session" yaml:"session"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Tracing   TracingConfig   `mapstructure:"tracing" yaml:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors" yaml:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" yaml:"rate_limit"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	ForceMigrate bool `mapstructure:"-" yaml:"-"`
	MigrateOnly  bool `mapstructure:"-" yaml:"-"`
}

type ServerConfig struct {
	Port string `mapstructure:"port" yaml:"port"`
	Mode string `mapstructure:"mode" yaml:"mode"`
}

type DatabaseConfig struct {
	Driver    string `mapstructure:"driver" yaml:"driver"`
	Path      string `mapstructure:"path" yaml:"path"`
	Host      string `mapstructure:"host" yaml:"host"`
	Port      int    `mapstructure:"port" yaml:"port"`
	User      string `mapstructure:"user" yaml:"user"`
	Password  string `mapstructure:"password" yaml:"password"`
	DBName    string `mapstructure:"dbname" yaml:"dbname"`
	Charset   string `mapstructure:"charset" yaml:"charset"`
	ParseTime bool   `mapstructure:"parse_time" yaml:"parse_time"`
	LogSQL    bool   `mapstructure:"log_sql" yaml:"log_sql"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
}

// SessionConfig controls where in-progress game sessions live and how their tokens are signed.
type SessionConfig struct {
	Store          string `mapstructure:"store" yaml:"store"`
	Secret         string `mapstructure:"secret" yaml:"secret"`
	TTLMinutes     int    `mapstructure:"ttl_minutes" yaml:"ttl_minutes"`
	KeyspacePrefix string `mapstructure:"keyspace_prefix" yaml:"keyspace_prefix"`
}

// TTL is how long an idle session is kept before it is discarded.
func (c SessionConfig) TTL() time.Duration {
	if c.TTLMinutes <= 0 {
		return 2 * time.Hour
	}
	return time.Duration(c.TTLMinutes) * time.Minute
}

type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	File       string `mapstructure:"file" yaml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" yaml:"max_age_days"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled" yaml:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint" yaml:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests" yaml:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes" yaml:"window_minutes"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "dark_patterns.db")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parse_time", true)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)

	v.SetDefault("session.store", "memory")
	v.SetDefault("session.ttl_minutes", 120)
	v.SetDefault("session.keyspace_prefix", "dark_patterns:session:")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "logs/app.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)

	v.SetDefault("rate_limit.max_requests", 6000)
	v.SetDefault("rate_limit.window_minutes", 1)
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("DARK_PATTERNS")
	v.AutomaticEnv()

	setDefaults(v)

	// Database
	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.path", "DATABASE_PATH")
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")

	// Redis
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Session
	v.BindEnv("session.store", "SESSION_STORE")
	v.BindEnv("session.secret", "SESSION_SECRET")

	// Server
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.mode", "SERVER_MODE")

	// Log
	v.BindEnv("log.level", "LOG_LEVEL")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Normalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Normalize validates the loaded values and fills the development secret.
// Tools that decode the yaml file without viper call it directly.
func (cfg *Config) Normalize() error {
	switch cfg.Database.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	switch cfg.Session.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported session store %q", cfg.Session.Store)
	}

	// 生产环境校验 Session Secret 强度
	if cfg.Server.Mode == "release" && len(cfg.Session.Secret) < 32 {
		return fmt.Errorf("session secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.Session.Secret))
	}
	if cfg.Session.Secret == "" {
		cfg.Session.Secret = "dark-patterns-development-secret"
	}

	return nil
}
