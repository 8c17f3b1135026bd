package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/orris-inc/servicedesk/internal/shared/config"
)

const envPrefix = "SERVICEDESK"

type Config struct {
	Server    sharedConfig.ServerConfig    `mapstructure:"server"`
	Database  sharedConfig.DatabaseConfig  `mapstructure:"database"`
	Logger    sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Auth      sharedConfig.AuthConfig      `mapstructure:"auth"`
	Email     sharedConfig.EmailConfig     `mapstructure:"email"`
	Redis     sharedConfig.RedisConfig     `mapstructure:"redis"`
	Search    sharedConfig.SearchConfig    `mapstructure:"search"`
	Scheduler sharedConfig.SchedulerConfig `mapstructure:"scheduler"`
	RateLimit sharedConfig.RateLimitConfig `mapstructure:"ratelimit"`
	Metrics   sharedConfig.MetricsConfig   `mapstructure:"metrics"`
	Analytics sharedConfig.AnalyticsConfig `mapstructure:"analytics"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// jwtEnvBindings maps the unprefixed JWT variables onto their config keys.
var jwtEnvBindings = map[string]string{
	"auth.jwt.secret":             "JWT_SECRET",
	"auth.jwt.expires_in":         "JWT_EXPIRES_IN",
	"auth.jwt.refresh_secret":     "JWT_REFRESH_SECRET",
	"auth.jwt.refresh_expires_in": "JWT_REFRESH_EXPIRES_IN",
}

// Load reads configs/config.yaml, merges config.<env>.yaml when present, and
// applies SERVICEDESK_* environment overrides.
func Load(env string) (*Config, error) {
	return load(viper.New(), env, "./configs", "../configs", "../../configs")
}

func load(v *viper.Viper, env string, paths ...string) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, envVar := range jwtEnvBindings {
		// explicit names win over the prefixed form
		if err := v.BindEnv(key, envVar, envPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_"))); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", envVar, err)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.SetConfigName("config." + env)
		if err := v.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to merge %s config: %w", env, err)
			}
		}
		v.Set("server.mode", env)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &cfg
	appConfigMu.Unlock()

	return &cfg, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func validate(cfg *Config) error {
	if _, err := cfg.Auth.JWT.AccessTTL(); err != nil {
		return fmt.Errorf("invalid JWT_EXPIRES_IN: %w", err)
	}
	if _, err := cfg.Auth.JWT.RefreshTTL(); err != nil {
		return fmt.Errorf("invalid JWT_REFRESH_EXPIRES_IN: %w", err)
	}
	if cfg.Auth.JWT.Secret == cfg.Auth.JWT.RefreshSecret {
		return fmt.Errorf("JWT_SECRET and JWT_REFRESH_SECRET must differ")
	}
	switch cfg.Database.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "servicedesk")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60)
	v.SetDefault("database.slow_query_ms", 200)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	v.SetDefault("auth.password.bcrypt_cost", 12)
	v.SetDefault("auth.jwt.secret", "change-me-access-secret")
	v.SetDefault("auth.jwt.expires_in", "15m")
	v.SetDefault("auth.jwt.refresh_secret", "change-me-refresh-secret")
	v.SetDefault("auth.jwt.refresh_expires_in", "7d")
	v.SetDefault("auth.jwt.issuer", "servicedesk")

	v.SetDefault("email.enabled", false)
	v.SetDefault("email.smtp_host", "localhost")
	v.SetDefault("email.smtp_port", 1025)
	v.SetDefault("email.from_address", "helpdesk@servicedesk.local")
	v.SetDefault("email.from_name", "ServiceDesk")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.relay_channel", "servicedesk:relay")

	v.SetDefault("search.index", "kb_articles")

	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.sla_sweep_interval", "1m")
	v.SetDefault("scheduler.timezone", "UTC")

	v.SetDefault("ratelimit.login_per_minute", 5)
	v.SetDefault("ratelimit.login_per_hour", 30)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("analytics.cache_ttl_seconds", 60)
}
