package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Civic  CivicConfig  `yaml:"civic" mapstructure:"civic"`
	Pacing PacingConfig `yaml:"pacing" mapstructure:"pacing"`
	Cache  CacheConfig  `yaml:"cache" mapstructure:"cache"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// CivicConfig holds Civic Information API settings. The API key also
// honors the GOOGLE_API_KEY environment variable.
type CivicConfig struct {
	APIKey       string  `yaml:"api_key" mapstructure:"api_key"`
	BaseURL      string  `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSecs  int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RateLimitRPS float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
}

// PacingConfig tunes the adaptive delay between lookups and the retry
// budget for rate-limited requests.
type PacingConfig struct {
	InitialDelayMS int     `yaml:"initial_delay_ms" mapstructure:"initial_delay_ms"`
	InitialAlpha   float64 `yaml:"initial_alpha" mapstructure:"initial_alpha"`
	MinDelayMS     int     `yaml:"min_delay_ms" mapstructure:"min_delay_ms"`
	MaxDelayMS     int     `yaml:"max_delay_ms" mapstructure:"max_delay_ms"`
	MaxAttempts    int     `yaml:"max_attempts" mapstructure:"max_attempts"`
}

// CacheConfig configures the lookup cache.
type CacheConfig struct {
	Enabled  bool `yaml:"enabled" mapstructure:"enabled"`
	TTLHours int  `yaml:"ttl_hours" mapstructure:"ttl_hours"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns    int32  `yaml:"min_conns" mapstructure:"min_conns"`
}

// ServerConfig configures the lookup server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("DISTRICT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The key predates this tool; scripts that already export
	// GOOGLE_API_KEY keep working.
	if err := v.BindEnv("civic.api_key", "DISTRICT_CIVIC_API_KEY", "GOOGLE_API_KEY"); err != nil {
		return nil, eris.Wrap(err, "config: bind env")
	}

	// Defaults
	v.SetDefault("civic.base_url", "https://www.googleapis.com/civicinfo/v2")
	v.SetDefault("civic.timeout_secs", 30)
	v.SetDefault("civic.rate_limit_rps", 10.0)
	v.SetDefault("pacing.initial_delay_ms", 1000)
	v.SetDefault("pacing.initial_alpha", 2.0)
	v.SetDefault("pacing.min_delay_ms", 100)
	v.SetDefault("pacing.max_delay_ms", 30000)
	v.SetDefault("pacing.max_attempts", 5)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl_hours", 720)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "district.db")
	v.SetDefault("store.max_conns", 10)
	v.SetDefault("store.min_conns", 2)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the configuration for the given mode. Modes that call
// the Civic API ("enrich", "lookup", "serve") require an API key; "local"
// covers commands that only touch the table or the store.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch c.Store.Driver {
	case "sqlite", "postgres":
	default:
		problems = append(problems, "store.driver must be sqlite or postgres")
	}
	if c.Store.DatabaseURL == "" {
		problems = append(problems, "store.database_url is required")
	}
	if c.Pacing.MaxAttempts < 1 || c.Pacing.MaxAttempts > 10 {
		problems = append(problems, "pacing.max_attempts must be between 1 and 10")
	}
	if c.Pacing.InitialAlpha <= 0 {
		problems = append(problems, "pacing.initial_alpha must be > 0")
	}
	if c.Pacing.MinDelayMS < 0 || c.Pacing.MaxDelayMS < c.Pacing.MinDelayMS {
		problems = append(problems, "pacing delays must satisfy 0 <= min_delay_ms <= max_delay_ms")
	}
	if c.Civic.TimeoutSecs <= 0 {
		problems = append(problems, "civic.timeout_secs must be > 0")
	}
	if c.Civic.RateLimitRPS <= 0 {
		problems = append(problems, "civic.rate_limit_rps must be > 0")
	}
	if c.Cache.TTLHours < 0 {
		problems = append(problems, "cache.ttl_hours must be >= 0")
	}

	switch mode {
	case "enrich", "lookup":
		if c.Civic.APIKey == "" {
			problems = append(problems, "civic.api_key is required (set GOOGLE_API_KEY)")
		}
	case "serve":
		if c.Civic.APIKey == "" {
			problems = append(problems, "civic.api_key is required (set GOOGLE_API_KEY)")
		}
		if c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
	case "local":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
