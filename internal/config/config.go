package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Storage backends
const (
	BackendLocal = "local"
	BackendGCS   = "gcs"
)

// HTML page flavours
const (
	HTMLRendererGPTVis  = "gptvis"
	HTMLRendererECharts = "echarts"
)

// Config holds all configuration for the chart rendering service
type Config struct {
	// Server configuration
	Port         string `env:"PORT,default=3000"`
	MaxBodyBytes int64  `env:"MAX_BODY_BYTES,default=102400"`
	TrustProxy   bool   `env:"TRUST_PROXY,default=false"`

	// Artifact storage
	StorageBackend string `env:"STORAGE_BACKEND,default=local"`
	ImagesDir      string `env:"IMAGES_DIR,default=./public/images"`

	// GCP configuration (only for the gcs backend)
	GCPProjectID string `env:"GCP_PROJECT_ID"`
	GCSBucket    string `env:"GCS_BUCKET"`
	GCSPrefix    string `env:"GCS_PREFIX,default=images"`

	// Rendering
	HTMLRenderer     string `env:"HTML_RENDERER,default=gptvis"`
	GPTVisRuntimeURL string `env:"GPTVIS_RUNTIME_URL"`
	ChartWidth       int    `env:"CHART_WIDTH,default=600"`
	ChartHeight      int    `env:"CHART_HEIGHT,default=400"`

	// Retention of generated artifacts, zero keeps them forever
	Retention       time.Duration `env:"RETENTION,default=0s"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL,default=1h"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=auto"`
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks rules that span several fields
func (c *Config) Validate() error {
	var errs []error

	switch c.StorageBackend {
	case BackendLocal:
		if strings.TrimSpace(c.ImagesDir) == "" {
			errs = append(errs, errors.New("IMAGES_DIR must not be empty for the local backend"))
		}
	case BackendGCS:
		if c.GCSBucket == "" {
			errs = append(errs, errors.New("GCS_BUCKET is required for the gcs backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported STORAGE_BACKEND %q", c.StorageBackend))
	}

	if c.HTMLRenderer != HTMLRendererGPTVis && c.HTMLRenderer != HTMLRendererECharts {
		errs = append(errs, fmt.Errorf("unsupported HTML_RENDERER %q", c.HTMLRenderer))
	}
	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		errs = append(errs, fmt.Errorf("chart size must be positive, got %dx%d", c.ChartWidth, c.ChartHeight))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("MAX_BODY_BYTES must be positive"))
	}
	if c.Retention < 0 {
		errs = append(errs, errors.New("RETENTION must not be negative"))
	}
	if c.Retention > 0 && c.CleanupInterval <= 0 {
		errs = append(errs, errors.New("CLEANUP_INTERVAL must be positive when RETENTION is set"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}
