package config

import (
	"os"
	"strconv"
	"time"

	usecasecontract "github.com/gvanmetre/BiteBook/internal/usecase/contract"
)

// Config holds application configuration values.
type Config struct {
	SendActivationEmail          bool
	AppBaseURL                   string
	EmailVerificationTokenExpiry time.Duration
	SessionTokenExpiry           time.Duration
	ImagesDir                    string
	MaxUploadBytes               int64
}

// NewConfig creates a new Config instance, loading values from environment variables.
func NewConfig() usecasecontract.IConfigProvider {
	return &Config{
		SendActivationEmail:          getEnvAsBool("SEND_ACTIVATION_EMAIL", false),
		AppBaseURL:                   getEnv("APP_BASE_URL", "http://localhost:8080"),
		EmailVerificationTokenExpiry: time.Hour * time.Duration(getEnvAsInt("EMAIL_VERIFICATION_TOKEN_EXPIRY_HOURS", 24)),
		SessionTokenExpiry:           time.Hour * time.Duration(getEnvAsInt("SESSION_TOKEN_EXPIRY_HOURS", 168)), // 7 days
		ImagesDir:                    getEnv("IMAGES_DIR", "./public/images"),
		MaxUploadBytes:               int64(getEnvAsInt("MAX_UPLOAD_BYTES", 1<<20)), // 1 MiB
	}
}

// GetSendActivationEmail returns whether to send an activation email.
func (c *Config) GetSendActivationEmail() bool {
	return c.SendActivationEmail
}

// GetAppBaseURL returns the base URL of the application.
func (c *Config) GetAppBaseURL() string {
	return c.AppBaseURL
}

// GetEmailVerificationTokenExpiry returns the expiry duration for email verification tokens.
func (c *Config) GetEmailVerificationTokenExpiry() time.Duration {
	return c.EmailVerificationTokenExpiry
}

// GetSessionTokenExpiry returns the lifetime of signed session tokens.
func (c *Config) GetSessionTokenExpiry() time.Duration {
	return c.SessionTokenExpiry
}

// GetImagesDir returns the directory uploaded images are written to.
func (c *Config) GetImagesDir() string {
	return c.ImagesDir
}

// GetMaxUploadBytes returns the maximum accepted upload size.
func (c *Config) GetMaxUploadBytes() int64 {
	return c.MaxUploadBytes
}

// Helper function to get an environment variable or return a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as an integer or return a default value.
func getEnvAsInt(name string, fallback int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

// Helper function to get an environment variable as a boolean or return a default value.
func getEnvAsBool(name string, fallback bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}
	return fallback
}
