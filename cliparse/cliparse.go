package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"

	"github.com/danielhkuo/quickly-vote/db"
)

// Media backends
const (
	MediaLocal = "local"
	MediaGCS   = "gcs"
)

type Config struct {
	Port         int    `env:"PORT" envDefault:"3318"`
	DatabaseURL  string `env:"DATABASE_URL" envDefault:"file:quickly-vote.db"`
	DatabaseType string `env:"DATABASE_TYPE" envDefault:"sqlite"`

	// Used to build absolute links (CSV export, local media URLs)
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`

	MediaBackend          string        `env:"MEDIA_BACKEND" envDefault:"local"`
	MediaDir              string        `env:"MEDIA_DIR" envDefault:"media"`
	MediaBucket           string        `env:"MEDIA_BUCKET"`
	GoogleCredentialsFile string        `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	MediaSigningKey       string        `env:"MEDIA_SIGNING_KEY"`
	MediaURLTTL           time.Duration `env:"MEDIA_URL_TTL" envDefault:"8760h"`
	MaxUploadSize         string        `env:"MAX_UPLOAD_SIZE" envDefault:"25MB"`
	MaxUploadBytes        int64

	MaxContestants int  `env:"MAX_CONTESTANTS" envDefault:"60"`
	SerializeVotes bool `env:"SERIALIZE_VOTES" envDefault:"true"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	OTelEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OTelEnabled  bool   `env:"OTEL_ENABLED" envDefault:"true"`
}

// ParseFlags loads the .env file, reads environment variables and applies
// command-line overrides. CLI flags take precedence over the environment.
func ParseFlags(args []string) (Config, error) {
	var (
		envFile  string
		port     int
		dbURL    string
		dbType   string
		mediaDir string
		logLevel string
	)

	fs := flag.NewFlagSet("quickly-vote", flag.ContinueOnError)

	fs.StringVar(&envFile, "env-file", "", "Path to a .env file (default .env)")
	fs.IntVar(&port, "p", 0, "Server port")
	fs.StringVar(&dbURL, "d", "", "Database URL")
	fs.StringVar(&dbType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&mediaDir, "media-dir", "", "Directory for uploaded media (local backend)")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if port != 0 {
		cfg.Port = port
	}
	if dbURL != "" {
		cfg.DatabaseURL = dbURL
	}
	if dbType != "" {
		cfg.DatabaseType = dbType
	}
	if mediaDir != "" {
		cfg.MediaDir = mediaDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	cfg.PublicBaseURL = strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/")

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// loadEnvFile populates the environment from a dotenv file. Variables that
// are already set win. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		path = os.Getenv("ENV_FILE")
	}
	if path == "" {
		path = ".env"
	}
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	dialect, err := db.ParseDialect(c.DatabaseType)
	if err != nil {
		return fmt.Errorf("%w (use sqlite or postgres)", err)
	}
	c.DatabaseType = string(dialect)
	if c.DatabaseURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	c.MediaBackend = strings.ToLower(strings.TrimSpace(c.MediaBackend))
	switch c.MediaBackend {
	case MediaLocal:
		if c.MediaSigningKey == "" {
			return errors.New("MEDIA_SIGNING_KEY required for the local media backend")
		}
	case MediaGCS:
		if c.MediaBucket == "" {
			return errors.New("MEDIA_BUCKET required for the gcs media backend")
		}
	default:
		return fmt.Errorf("unknown media backend %q (use local or gcs)", c.MediaBackend)
	}

	size, err := humanize.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return fmt.Errorf("invalid MAX_UPLOAD_SIZE: %w", err)
	}
	if size == 0 {
		return errors.New("MAX_UPLOAD_SIZE must be greater than zero")
	}
	c.MaxUploadBytes = int64(size)

	if c.MaxContestants < 0 {
		return errors.New("MAX_CONTESTANTS cannot be negative")
	}

	return nil
}
