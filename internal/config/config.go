package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string `env:"HOST"`
	Port               string `env:"PORT" envDefault:"5432"`
	User               string `env:"USER"`
	Password           string `env:"PASSWORD"`
	Name               string `env:"NAME"`
	SSLMode            string `env:"SSLMODE" envDefault:"disable"`
	MaxOpenConns       int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns       int    `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetimeSec int    `env:"CONN_MAX_LIFETIME_SEC" envDefault:"300"`
	// ConnectAttempts bounds startup pings while the database comes up.
	ConnectAttempts int `env:"CONNECT_ATTEMPTS" envDefault:"5" validate:"min=1"`
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

// StorageConfig selects the blob store backing managed uploads.
// "local" keeps files under LocalDir, "memory" keeps them in process and
// loses them on restart, "minio" uses the MinIO settings.
type StorageConfig struct {
	Driver   string `env:"DRIVER" envDefault:"local" validate:"oneof=local memory minio"`
	LocalDir string `env:"LOCAL_DIR" envDefault:"./uploads"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level string `env:"LEVEL" envDefault:"info"`
	// File enables an additional rotated JSON sink.
	File       string `env:"FILE"`
	MaxSizeMB  int    `env:"MAX_SIZE_MB" envDefault:"50"`
	MaxBackups int    `env:"MAX_BACKUPS" envDefault:"7"`
	MaxAgeDays int    `env:"MAX_AGE_DAYS" envDefault:"14"`
}

// CaptchaConfig configures the proof-of-humanity verifier.
type CaptchaConfig struct {
	Secret    string        `env:"SECRET"`
	VerifyURL string        `env:"VERIFY_URL" envDefault:"https://challenges.cloudflare.com/turnstile/v0/siteverify" validate:"omitempty,url"`
	Timeout   time.Duration `env:"TIMEOUT" envDefault:"5s"`
	// DevBypass skips verification entirely. Never enable in production.
	DevBypass bool `env:"DEV_BYPASS" envDefault:"false"`
}

// SMTPConfig configures outbound notification mail.
type SMTPConfig struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"587" validate:"min=1,max=65535"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM" validate:"omitempty,email"`
	// Recipient receives submission notifications.
	Recipient string `env:"RECIPIENT" validate:"omitempty,email"`
}

// IntakeConfig tunes the public submission endpoints.
type IntakeConfig struct {
	NotifyTimeout time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"10s"`
	RateLimit     int           `env:"RATE_LIMIT" envDefault:"5" validate:"min=1"`
	RateWindow    time.Duration `env:"RATE_WINDOW" envDefault:"1m"`
	// TrustedProxies lists peers (IPs or CIDRs) whose X-Forwarded-For is
	// believed. Requests from anyone else are keyed on the socket address.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// AdminConfig guards the administration API.
type AdminConfig struct {
	APIKey string `env:"API_KEY"`
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string         `env:"APP_HOST" envDefault:"localhost:8080"`
	Port     string         `env:"PORT" envDefault:"8080"`
	Database DatabaseConfig `envPrefix:"DB_"`
	MinIO    MinIOConfig    `envPrefix:"MINIO_"`
	Storage  StorageConfig  `envPrefix:"STORAGE_"`
	Log      LogConfig      `envPrefix:"LOG_"`
	Captcha  CaptchaConfig  `envPrefix:"CAPTCHA_"`
	SMTP     SMTPConfig     `envPrefix:"SMTP_"`
	Intake   IntakeConfig   `envPrefix:"INTAKE_"`
	Admin    AdminConfig    `envPrefix:"ADMIN_"`
}

var validate = validator.New()

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks field constraints that env parsing cannot express.
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Storage.Driver == "minio" && (c.MinIO.Endpoint == "" || c.MinIO.Bucket == "") {
		return fmt.Errorf("invalid config: minio storage requires MINIO_ENDPOINT and MINIO_BUCKET")
	}
	return nil
}
