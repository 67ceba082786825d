package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Upload drivers
const (
	UploadLocal = "local"
	UploadOSS   = "oss"
)

// development fallback only
const devJWTSecret = "default_super_secret_key"

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBLogLevel string

	Port        string
	GinMode     string
	JWTSecret   string
	CORSOrigins []string
	Timezone    string

	DefaultCurrency   string
	AutoApprovalLimit decimal.Decimal
	// LargeAmountConfirmation is shown to clients; the server does not enforce it
	LargeAmountConfirmation decimal.Decimal

	UploadDriver   string
	UploadDir      string
	UploadMaxBytes int64

	OSS OSSConfig
}

type OSSConfig struct {
	Endpoint        string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	Prefix          string
}

// Load reads an optional .env file, then the environment
func Load() (*Config, error) {
	for _, f := range []string{".env", "configs/.env"} {
		if err := godotenv.Load(f); err == nil {
			log.Printf("loaded environment from %s", f)
			break
		}
	}

	cfg := &Config{
		DBHost:     getEnvOrDefault("DB_HOST", "localhost"),
		DBPort:     getEnvOrDefault("DB_PORT", "5432"),
		DBUser:     getEnvOrDefault("DB_USER", "postgres"),
		DBPassword: getEnvOrDefault("DB_PASSWORD", "postgres"),
		DBName:     getEnvOrDefault("DB_NAME", "church"),
		DBSSLMode:  getEnvOrDefault("DB_SSLMODE", "disable"),
		DBLogLevel: strings.ToLower(getEnvOrDefault("DB_LOG_LEVEL", "warn")),

		Port:        getEnvOrDefault("PORT", "8080"),
		GinMode:     os.Getenv("GIN_MODE"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		CORSOrigins: splitList(getEnvOrDefault("CORS_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173")),
		Timezone:    getEnvOrDefault("APP_TIMEZONE", "UTC"),

		DefaultCurrency: strings.ToUpper(getEnvOrDefault("DEFAULT_CURRENCY", "USD")),

		UploadDriver: strings.ToLower(getEnvOrDefault("UPLOAD_DRIVER", UploadLocal)),
		UploadDir:    getEnvOrDefault("UPLOAD_DIR", "uploads"),

		OSS: OSSConfig{
			Endpoint:        os.Getenv("OSS_ENDPOINT"),
			AccessKeyID:     os.Getenv("OSS_ACCESS_KEY_ID"),
			AccessKeySecret: os.Getenv("OSS_ACCESS_KEY_SECRET"),
			Bucket:          os.Getenv("OSS_BUCKET"),
			Prefix:          os.Getenv("OSS_PREFIX"),
		},
	}

	var err error
	if cfg.AutoApprovalLimit, err = getDecimal("AUTO_APPROVAL_LIMIT", "5000"); err != nil {
		return nil, err
	}
	if cfg.LargeAmountConfirmation, err = getDecimal("LARGE_AMOUNT_CONFIRMATION", "50000"); err != nil {
		return nil, err
	}
	if cfg.UploadMaxBytes, err = strconv.ParseInt(getEnvOrDefault("UPLOAD_MAX_BYTES", "5242880"), 10, 64); err != nil || cfg.UploadMaxBytes <= 0 {
		return nil, fmt.Errorf("UPLOAD_MAX_BYTES must be a positive integer")
	}

	if cfg.JWTSecret == "" {
		if cfg.GinMode == "release" {
			return nil, fmt.Errorf("JWT_SECRET environment variable is required in release mode")
		}
		cfg.JWTSecret = devJWTSecret
	}

	switch cfg.UploadDriver {
	case UploadLocal:
	case UploadOSS:
		if cfg.OSS.Endpoint == "" || cfg.OSS.Bucket == "" || cfg.OSS.AccessKeyID == "" || cfg.OSS.AccessKeySecret == "" {
			return nil, fmt.Errorf("UPLOAD_DRIVER=oss requires OSS_ENDPOINT, OSS_BUCKET, OSS_ACCESS_KEY_ID and OSS_ACCESS_KEY_SECRET")
		}
	default:
		return nil, fmt.Errorf("unknown UPLOAD_DRIVER %q", cfg.UploadDriver)
	}

	return cfg, nil
}

// DSN renders the postgres connection URL
func (c *Config) DSN() string {
	return "postgres://" + c.DBUser + ":" + c.DBPassword + "@" + c.DBHost + ":" + c.DBPort + "/" + c.DBName + "?sslmode=" + c.DBSSLMode
}

// ApplyTimezone makes APP_TIMEZONE the process-wide local zone; calendar
// dates and month boundaries are computed in it
func (c *Config) ApplyTimezone() error {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.Timezone, err)
	}
	time.Local = loc
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDecimal(key, defaultValue string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(getEnvOrDefault(key, defaultValue))
	if err != nil || d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s must be a non-negative number", key)
	}
	return d, nil
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
