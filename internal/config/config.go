package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Transports the binary can serve.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
	TransportBatch = "batch"
)

// Cache backends for provider responses.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// WatchItem is one tool call run by the batch transport.
type WatchItem struct {
	Tool string         `mapstructure:"tool"`
	Args map[string]any `mapstructure:"args"`
}

// NSEConfig holds NSE client settings.
type NSEConfig struct {
	BaseURL      string  `mapstructure:"base_url"`
	PrimeSession bool    `mapstructure:"prime_session"`
	RateLimit    float64 `mapstructure:"rate_limit"`
}

// BSEConfig holds BSE client settings.
type BSEConfig struct {
	BaseURL   string  `mapstructure:"base_url"`
	SiteURL   string  `mapstructure:"site_url"`
	RateLimit float64 `mapstructure:"rate_limit"`
}

// YahooConfig holds Yahoo Finance client settings.
type YahooConfig struct {
	BaseURL   string  `mapstructure:"base_url"`
	Crumb     string  `mapstructure:"crumb"`
	NewsCount int     `mapstructure:"news_count"`
	RateLimit float64 `mapstructure:"rate_limit"`
}

// HTTPConfig tunes the outbound HTTP clients. Zero values mean no client-side
// timeout and no retries.
type HTTPConfig struct {
	UserAgent      string        `mapstructure:"user_agent"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	RetryCount     int           `mapstructure:"retry_count"`
}

// CacheConfig selects and tunes the provider response cache.
type CacheConfig struct {
	Backend       string        `mapstructure:"backend"`
	TTL           time.Duration `mapstructure:"ttl"`
	MaxItems      int           `mapstructure:"max_items"`
	RedisURL      string        `mapstructure:"redis_url"`
	RedisPassword string        `mapstructure:"redis_password"`
}

// Config holds all configuration for the financetools host.
type Config struct {
	Transport       string        `mapstructure:"transport"`
	Port            int           `mapstructure:"port"`
	LogLevel        string        `mapstructure:"log_level"`
	ToolTimeout     time.Duration `mapstructure:"tool_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	NotesFile       string        `mapstructure:"notes_file"`

	NSE   NSEConfig   `mapstructure:"nse"`
	BSE   BSEConfig   `mapstructure:"bse"`
	Yahoo YahooConfig `mapstructure:"yahoo"`
	HTTP  HTTPConfig  `mapstructure:"http"`
	Cache CacheConfig `mapstructure:"cache"`

	// Watchlist is only read from the config file.
	Watchlist []WatchItem `mapstructure:"watchlist"`
}

// EnvPrefix prefixes every environment variable, e.g. FINANCETOOLS_CACHE_BACKEND.
const EnvPrefix = "FINANCETOOLS"

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	"transport": "transport",
	"port":      "port",
	"log-level": "log_level",
	"notes":     "notes_file",
}

// NewFlagSet declares the command-line flags Load understands.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("transport", TransportStdio, "transport to serve: stdio, http or batch")
	fs.Int("port", 8001, "listen port for the http transport")
	fs.String("log-level", "info", "log level: debug, info, warn or error")
	fs.String("notes", "summary.txt", "path of the summary note file")
	fs.String("config", "", "explicit config file (default: ./config.yaml or $HOME/.financetools/config.yaml)")
	return fs
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("transport", TransportStdio)
	v.SetDefault("port", 8001)
	v.SetDefault("log_level", "info")
	v.SetDefault("tool_timeout", time.Duration(0))
	v.SetDefault("shutdown_timeout", 5*time.Second)
	v.SetDefault("notes_file", "summary.txt")

	v.SetDefault("nse.base_url", "https://www.nseindia.com")
	v.SetDefault("nse.prime_session", true)
	v.SetDefault("nse.rate_limit", 0.0)
	v.SetDefault("bse.base_url", "https://api.bseindia.com")
	v.SetDefault("bse.site_url", "https://www.bseindia.com")
	v.SetDefault("bse.rate_limit", 0.0)
	v.SetDefault("yahoo.base_url", "https://query2.finance.yahoo.com")
	v.SetDefault("yahoo.crumb", "")
	v.SetDefault("yahoo.news_count", 50)
	v.SetDefault("yahoo.rate_limit", 0.0)

	v.SetDefault("http.user_agent", "")
	v.SetDefault("http.request_timeout", time.Duration(0))
	v.SetDefault("http.retry_count", 0)

	v.SetDefault("cache.backend", CacheNone)
	v.SetDefault("cache.ttl", time.Minute)
	v.SetDefault("cache.max_items", 1000)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.redis_password", "")
}

// Load reads configuration from defaults, an optional config file, environment
// variables and flags, in increasing order of precedence. flags may be nil.
//
// Environment variables use the FINANCETOOLS_ prefix with dots replaced by
// underscores:
//   - FINANCETOOLS_TRANSPORT, FINANCETOOLS_PORT, FINANCETOOLS_LOG_LEVEL
//   - FINANCETOOLS_NSE_BASE_URL, FINANCETOOLS_BSE_BASE_URL, FINANCETOOLS_YAHOO_BASE_URL
//   - FINANCETOOLS_CACHE_BACKEND, FINANCETOOLS_CACHE_REDIS_URL
//   - FINANCETOOLS_HTTP_REQUEST_TIMEOUT, FINANCETOOLS_HTTP_RETRY_COUNT
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	configFile := ""
	if flags != nil {
		configFile, _ = flags.GetString("config")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.financetools")

		// Read config file (ignore if not found)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks values that would otherwise fail later at startup.
func (c *Config) Validate() error {
	var problems []string

	switch c.Transport {
	case TransportStdio, TransportHTTP:
	case TransportBatch:
		if len(c.Watchlist) == 0 {
			problems = append(problems, "batch transport needs a non-empty watchlist")
		}
		for i, item := range c.Watchlist {
			if item.Tool == "" {
				problems = append(problems, fmt.Sprintf("watchlist[%d] has no tool", i))
			}
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown transport %q", c.Transport))
	}

	if c.Port <= 0 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("port %d out of range", c.Port))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("unknown log level %q", c.LogLevel))
	}

	switch c.Cache.Backend {
	case CacheNone, CacheMemory:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			problems = append(problems, "cache.redis_url is required for the redis cache")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown cache backend %q", c.Cache.Backend))
	}

	if c.HTTP.RetryCount < 0 {
		problems = append(problems, "http.retry_count must not be negative")
	}
	for name, rps := range map[string]float64{"nse": c.NSE.RateLimit, "bse": c.BSE.RateLimit, "yahoo": c.Yahoo.RateLimit} {
		if rps < 0 {
			problems = append(problems, fmt.Sprintf("%s.rate_limit must not be negative", name))
		}
	}

	if c.NotesFile == "" {
		problems = append(problems, "notes_file must not be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
