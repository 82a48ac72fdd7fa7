package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultRazorpayBaseURL = "https://api.razorpay.com"

type Config struct {
	Port              string
	Env               string
	RazorpayKeyID     string
	RazorpayKeySecret string
	RazorpayBaseURL   string
	HTTPTimeout       time.Duration
	StaticDir         string
	FrontendURL       string
}

// LoadConfig reads configuration from the environment, with a best-effort
// .env load for local development. Razorpay credentials are optional here:
// their absence is reported by the config probe and rejected per request,
// not at startup.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:              getEnv("PORT", "3000"),
		Env:               getEnv("APP_ENV", "development"),
		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		RazorpayBaseURL:   getEnv("RAZORPAY_BASE_URL", defaultRazorpayBaseURL),
		HTTPTimeout:       time.Duration(getEnvInt("RAZORPAY_TIMEOUT_SECONDS", 15)) * time.Second,
		StaticDir:         getEnv("STATIC_DIR", "static"),
		FrontendURL:       getEnv("FRONTEND_URL", "http://localhost:3000"),
	}
}

// HasCredentials reports whether both Razorpay keys are configured.
func (c *Config) HasCredentials() bool {
	return c.RazorpayKeyID != "" && c.RazorpayKeySecret != ""
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
