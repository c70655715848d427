// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode       string        `mapstructure:"GIN_MODE"`
	ServerHost    string        `mapstructure:"SERVER_HOST"`
	ServerPort    string        `mapstructure:"SERVER_PORT"`
	ServerTimeout time.Duration `mapstructure:"SERVER_TIMEOUT_SECONDS"`

	// Database Configuration
	DBHost            string        `mapstructure:"DB_HOST"`
	DBPort            string        `mapstructure:"DB_PORT"`
	DBUser            string        `mapstructure:"DB_USER"`
	DBPassword        string        `mapstructure:"DB_PASSWORD"`
	DBName            string        `mapstructure:"DB_NAME"`
	DBSSLMode         string        `mapstructure:"DB_SSL_MODE"`
	DBTimezone        string        `mapstructure:"DB_TIMEZONE"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// JWT Configuration
	JWTSecret              string        `mapstructure:"JWT_SECRET"`
	JWTIssuer              string        `mapstructure:"JWT_ISSUER"`
	AccessTokenTTL         time.Duration `mapstructure:"ACCESS_TOKEN_TTL_MINUTES"`
	RefreshTokenTTL        time.Duration `mapstructure:"REFRESH_TOKEN_TTL_HOURS"`

	// OTP / Email Verification
	OTPLength        int           `mapstructure:"OTP_LENGTH"`
	OTPTTL           time.Duration `mapstructure:"OTP_TTL_MINUTES"`

	// SMTP
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUsername string `mapstructure:"SMTP_USERNAME"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	SMTPFrom     string `mapstructure:"SMTP_FROM"`
	SMTPFromName string `mapstructure:"SMTP_FROM_NAME"`

	// Payment Provider (payOS)
	PaymentClientID    string `mapstructure:"PAYMENT_CLIENT_ID"`
	PaymentAPIKey      string `mapstructure:"PAYMENT_API_KEY"`
	PaymentChecksumKey string `mapstructure:"PAYMENT_CHECKSUM_KEY"`
	PaymentReturnURL   string `mapstructure:"PAYMENT_RETURN_URL"`
	PaymentCancelURL   string `mapstructure:"PAYMENT_CANCEL_URL"`

	// Booking / Fees
	ServiceFeePercent float64 `mapstructure:"SERVICE_FEE_PERCENT"`
	CleaningFee       float64 `mapstructure:"CLEANING_FEE"`

	// Uploads
	UploadStoragePath   string `mapstructure:"UPLOAD_STORAGE_PATH"`
	UploadPublicBaseURL string `mapstructure:"UPLOAD_PUBLIC_BASE_URL"`

	// Cron Jobs
	BookingReminderJobSchedule string `mapstructure:"BOOKING_REMINDER_JOB_SCHEDULE"`
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	v := viper.New()

	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "shortstay_db")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 60)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "shortstay")
	v.SetDefault("ACCESS_TOKEN_TTL_MINUTES", 60)
	v.SetDefault("REFRESH_TOKEN_TTL_HOURS", 720)

	v.SetDefault("OTP_LENGTH", 6)
	v.SetDefault("OTP_TTL_MINUTES", 10)

	v.SetDefault("SMTP_HOST", "localhost")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_FROM", "no-reply@shortstay.app")
	v.SetDefault("SMTP_FROM_NAME", "Shortstay")

	v.SetDefault("PAYMENT_CLIENT_ID", "")
	v.SetDefault("PAYMENT_API_KEY", "")
	v.SetDefault("PAYMENT_CHECKSUM_KEY", "")
	v.SetDefault("PAYMENT_RETURN_URL", "http://localhost:3000/payments/return")
	v.SetDefault("PAYMENT_CANCEL_URL", "http://localhost:3000/payments/cancel")

	v.SetDefault("SERVICE_FEE_PERCENT", 10.0)
	v.SetDefault("CLEANING_FEE", 25.0)

	v.SetDefault("UPLOAD_STORAGE_PATH", "./uploads")
	v.SetDefault("UPLOAD_PUBLIC_BASE_URL", "http://localhost:8080/uploads")

	v.SetDefault("BOOKING_REMINDER_JOB_SCHEDULE", "@daily")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Convert duration fields
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.DBConnMaxLifetime = time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute
	cfg.AccessTokenTTL = time.Duration(v.GetInt("ACCESS_TOKEN_TTL_MINUTES")) * time.Minute
	cfg.RefreshTokenTTL = time.Duration(v.GetInt("REFRESH_TOKEN_TTL_HOURS")) * time.Hour
	cfg.OTPTTL = time.Duration(v.GetInt("OTP_TTL_MINUTES")) * time.Minute

	if cfg.GinMode == "release" && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("FATAL: JWT_SECRET must be set in release mode")
	}

	return &cfg, nil
}
