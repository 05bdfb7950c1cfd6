// config/config.go
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Database holds the connection settings shared by the server and the
// admin provisioning command.
type Database struct {
	DatabaseDriver   string        `env:"DATABASE_DRIVER" envDefault:"postgres"` // postgres | sqlite
	DatabaseURL      string        `env:"DATABASE_URL"`
	DBProbeInterval  time.Duration `env:"DB_PROBE_INTERVAL" envDefault:"30s"`
	DBSlowQueryLimit time.Duration `env:"DB_SLOW_QUERY" envDefault:"1500ms"`
}

// Config holds every environment-driven setting of the service.
type Config struct {
	Port     string `env:"PORT" envDefault:"5000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Database

	// Auth
	JWTSecret string        `env:"JWT_SECRET,required"`
	JWTTTL    time.Duration `env:"JWT_TTL" envDefault:"168h"`

	// CORS
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// Rate limiting (fixed window, keyed by client IP)
	RateLimitWindow   time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"15m"`
	RateLimitMax      int           `env:"RATE_LIMIT_MAX" envDefault:"100"`
	LoginRateLimitMax int           `env:"LOGIN_RATE_LIMIT_MAX" envDefault:"5"`

	// Email notifications
	SMTPHost   string `env:"SMTP_HOST"`
	SMTPPort   int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser   string `env:"SMTP_USER"`
	SMTPPass   string `env:"SMTP_PASS"`
	MailFrom   string `env:"MAIL_FROM"`
	AdminEmail string `env:"ADMIN_EMAIL"`

	// Notification archive on Cloudflare R2
	R2AccountID       string `env:"CLOUDFLARE_ACCOUNT_ID"`
	R2AccessKeyID     string `env:"R2_ACCESS_KEY_ID"`
	R2AccessKeySecret string `env:"R2_ACCESS_KEY_SECRET"`
	R2Bucket          string `env:"R2_BUCKET_NAME"`

	// Notification dispatch
	NotifyWorkers   int           `env:"NOTIFY_WORKERS" envDefault:"2"`
	NotifyQueueSize int           `env:"NOTIFY_QUEUE_SIZE" envDefault:"100"`
	NotifyTimeout   time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"20s"`
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, reading environment variables directly")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDatabase reads only the database settings.
func LoadDatabase() (*Database, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found")
	}
	db := &Database{}
	if err := env.Parse(db); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := db.validate(); err != nil {
		return nil, err
	}
	return db, nil
}

func (d *Database) validate() error {
	d.DatabaseDriver = strings.ToLower(strings.TrimSpace(d.DatabaseDriver))
	switch d.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("invalid DATABASE_DRIVER %q (want postgres or sqlite)", d.DatabaseDriver)
	}
	if d.DatabaseURL == "" {
		if d.DatabaseDriver == "sqlite" {
			d.DatabaseURL = "./data/registrations.db"
		} else {
			return fmt.Errorf("DATABASE_URL is required for the postgres driver")
		}
	}
	return nil
}

func (c *Config) validate() error {
	if err := c.Database.validate(); err != nil {
		return err
	}
	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	if c.RateLimitMax <= 0 || c.LoginRateLimitMax <= 0 {
		return fmt.Errorf("rate limit maximums must be positive")
	}
	if c.NotifyWorkers <= 0 {
		c.NotifyWorkers = 1
	}

	origins := c.AllowedOrigins[:0]
	for _, o := range c.AllowedOrigins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	c.AllowedOrigins = origins
	return nil
}

// EmailEnabled reports whether enough SMTP settings are present to send mail.
func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != "" && c.AdminEmail != "" && c.MailFrom != ""
}

// ArchiveEnabled reports whether the R2 notification archive is configured.
func (c *Config) ArchiveEnabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2AccessKeySecret != "" && c.R2Bucket != ""
}

// SetupLogging installs the default slog logger for the given level name.
func SetupLogging(level string) {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
