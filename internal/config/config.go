package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/dgallion1/navtree/internal/contents"
	"github.com/dgallion1/navtree/internal/navtree"
)

type Config struct {
	Port string `envconfig:"PORT" default:"8090"`

	// Contents source
	ContentsURL string        `envconfig:"NAVTREE_CONTENTS_URL" default:"https://prolegomenon.s3.amazonaws.com/contents.json"`
	HTTPTimeout time.Duration `envconfig:"NAVTREE_HTTP_TIMEOUT" default:"30s"`

	// Retry
	MaxRetries int           `envconfig:"NAVTREE_MAX_RETRIES" default:"2"`
	RetryDelay time.Duration `envconfig:"NAVTREE_RETRY_DELAY" default:"1s"`

	// Sidebar
	FilterDebounce time.Duration `envconfig:"NAVTREE_FILTER_DEBOUNCE" default:"600ms"`
	MaxDepth       int           `envconfig:"NAVTREE_MAX_DEPTH" default:"256"`

	// Fetch stats retention
	StatsWindow time.Duration `envconfig:"NAVTREE_STATS_WINDOW" default:"1h"`

	CORSOrigins []string `envconfig:"NAVTREE_CORS_ORIGINS" default:"*"`

	// Outline import upload limit
	MaxUploadBytes int64 `envconfig:"NAVTREE_MAX_UPLOAD_BYTES" default:"10485760"`

	// Logging
	LogLevel  string `envconfig:"LOG_LEVEL" default:"INFO"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`
}

// Load reads an optional .env file at envPath (".env" when empty) and then
// the process environment. Variables already set win over the file.
func Load(envPath string) (Config, error) {
	if err := LoadDotEnv(envPath); err != nil {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process env: %w", err)
	}
	return cfg.normalize(), nil
}

// LoadDotEnv loads path into the environment, skipping a missing file.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

func (c Config) normalize() Config {
	if c.Port == "" {
		c.Port = "8090"
	}
	if c.ContentsURL == "" {
		c.ContentsURL = contents.DefaultURL
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 30 * time.Second
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = 10 << 20
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = navtree.DefaultMaxDepth
	}
	if c.StatsWindow <= 0 {
		c.StatsWindow = time.Hour
	}
	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = []string{"*"}
	}
	c.LogLevel = strings.ToUpper(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	return c
}

// RetryPolicy returns the fetch retry settings.
func (c Config) RetryPolicy() contents.RetryPolicy {
	return contents.RetryPolicy{MaxRetries: c.MaxRetries, Delay: c.RetryDelay}
}

func (c Config) Validate() error {
	u, err := url.Parse(c.ContentsURL)
	if err != nil {
		return fmt.Errorf("NAVTREE_CONTENTS_URL is invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("NAVTREE_CONTENTS_URL must be http or https, got %q", c.ContentsURL)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("NAVTREE_MAX_RETRIES must not be negative, got %d", c.MaxRetries)
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("NAVTREE_RETRY_DELAY must not be negative, got %s", c.RetryDelay)
	}
	if c.FilterDebounce < 0 {
		return fmt.Errorf("NAVTREE_FILTER_DEBOUNCE must not be negative, got %s", c.FilterDebounce)
	}
	switch c.LogLevel {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		return fmt.Errorf("LOG_LEVEL must be DEBUG, INFO, WARN or ERROR, got %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	return nil
}
