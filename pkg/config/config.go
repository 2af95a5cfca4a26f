package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const AsOfLayout = "2006-01-02"

type Config struct {
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Pipeline
	InputDir  string   `mapstructure:"INPUT_DIR"`
	OutputDir string   `mapstructure:"OUTPUT_DIR"`
	AsOfDate  string   `mapstructure:"AS_OF_DATE"`
	Leagues   []string `mapstructure:"LEAGUES"`

	// Market value collaborator
	MarketValueSource       string        `mapstructure:"MARKET_VALUE_SOURCE"` // "file", "transfermarkt", "none"
	MarketValuesFile        string        `mapstructure:"MARKET_VALUES_FILE"`
	TransfermarktUA         string        `mapstructure:"TRANSFERMARKT_USER_AGENT"`
	FetchRateLimit          float64       `mapstructure:"FETCH_RATE_LIMIT"` // requests per second
	FetchTimeout            time.Duration `mapstructure:"FETCH_TIMEOUT"`
	FetchMaxRetries         int           `mapstructure:"FETCH_MAX_RETRIES"`
	FetchRetryBackoff       time.Duration `mapstructure:"FETCH_RETRY_BACKOFF"`
	CircuitBreakerThreshold int           `mapstructure:"CIRCUIT_BREAKER_THRESHOLD"`
	CircuitBreakerTimeout   time.Duration `mapstructure:"CIRCUIT_BREAKER_TIMEOUT"`

	// Redis token cache, disabled when empty
	RedisURL            string        `mapstructure:"REDIS_URL"`
	MarketValueCacheTTL time.Duration `mapstructure:"MARKET_VALUE_CACHE_TTL"`

	// API server
	Port        string   `mapstructure:"PORT"`
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")

	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("INPUT_DIR", "data")
	v.SetDefault("OUTPUT_DIR", "data")
	v.SetDefault("AS_OF_DATE", "2021-06-08") // production date of the 2020/21 export
	v.SetDefault("LEAGUES", "GB1,ES1,L1,IT1,FR1")

	v.SetDefault("MARKET_VALUE_SOURCE", "file")
	v.SetDefault("MARKET_VALUES_FILE", "data/market_values.csv")
	v.SetDefault("TRANSFERMARKT_USER_AGENT", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/47.0.2526.106 Safari/537.36")
	v.SetDefault("FETCH_RATE_LIMIT", 1.0)
	v.SetDefault("FETCH_TIMEOUT", "10s")
	v.SetDefault("FETCH_MAX_RETRIES", 3)
	v.SetDefault("FETCH_RETRY_BACKOFF", "500ms")
	v.SetDefault("CIRCUIT_BREAKER_THRESHOLD", 5) // consecutive failures before the source is skipped
	v.SetDefault("CIRCUIT_BREAKER_TIMEOUT", "60s")

	v.SetDefault("REDIS_URL", "")
	v.SetDefault("MARKET_VALUE_CACHE_TTL", "24h")

	v.SetDefault("PORT", "8080")
	v.SetDefault("CORS_ORIGINS", "http://localhost:8050,http://localhost:3000")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Comma-separated lists
	config.Leagues = splitList(v.GetString("LEAGUES"))
	config.CorsOrigins = splitList(v.GetString("CORS_ORIGINS"))

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects settings the pipeline cannot run with
func (c *Config) Validate() error {
	switch c.MarketValueSource {
	case "file", "transfermarkt", "none":
	default:
		return fmt.Errorf("invalid MARKET_VALUE_SOURCE %q", c.MarketValueSource)
	}
	if len(c.Leagues) == 0 {
		return fmt.Errorf("LEAGUES must name at least one league")
	}
	if _, err := c.AsOf(); err != nil {
		return fmt.Errorf("invalid AS_OF_DATE %q: %w", c.AsOfDate, err)
	}
	if c.FetchMaxRetries < 0 {
		return fmt.Errorf("FETCH_MAX_RETRIES must not be negative")
	}
	return nil
}

// AsOf returns the reference date used for player ages
func (c *Config) AsOf() (time.Time, error) {
	return time.Parse(AsOfLayout, c.AsOfDate)
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
