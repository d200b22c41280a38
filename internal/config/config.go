package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port                string
	Environment         string
	LogLevel            string
	SupabaseURL         string
	SupabaseAnonKey     string
	MongoDBURI          string
	MongoDBPassword     string
	MongoDBDatabase     string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	AllowedOrigins      []string
	TrustedProxies      []string
	RateLimitRPS        int
	RateLimitBurst      int
	CookieSecure        bool
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MONGODB_DATABASE", "skillswap")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("COOKIE_SECURE", false)

	// keys without defaults must be bound or AutomaticEnv never sees them
	for _, key := range []string{
		"SUPABASE_URL",
		"SUPABASE_URL_ANON_KEY",
		"MONGODB_URI",
		"MONGODB_PASSWORD",
		"CLOUDINARY_CLOUD_NAME",
		"CLOUDINARY_API_KEY",
		"CLOUDINARY_API_SECRET",
		"TRUSTED_PROXIES",
	} {
		_ = v.BindEnv(key)
	}
	v.AutomaticEnv()
	return v
}

// LoadConfig reads the process environment. Callers load .env files first.
func LoadConfig() (*Config, error) {
	v := newViper()

	cfg := &Config{
		Port:                v.GetString("PORT"),
		Environment:         v.GetString("ENVIRONMENT"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		SupabaseURL:         v.GetString("SUPABASE_URL"),
		SupabaseAnonKey:     v.GetString("SUPABASE_URL_ANON_KEY"),
		MongoDBURI:          v.GetString("MONGODB_URI"),
		MongoDBPassword:     v.GetString("MONGODB_PASSWORD"),
		MongoDBDatabase:     v.GetString("MONGODB_DATABASE"),
		CloudinaryCloudName: v.GetString("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    v.GetString("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: v.GetString("CLOUDINARY_API_SECRET"),
		AllowedOrigins:      splitList(v.GetString("ALLOWED_ORIGINS")),
		TrustedProxies:      splitList(v.GetString("TRUSTED_PROXIES")),
		RateLimitRPS:        v.GetInt("RATE_LIMIT_RPS"),
		RateLimitBurst:      v.GetInt("RATE_LIMIT_BURST"),
		CookieSecure:        v.GetBool("COOKIE_SECURE"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabaseAnonKey == "" {
		return fmt.Errorf("SUPABASE_URL_ANON_KEY is required")
	}
	if c.MongoDBURI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

// HasCloudinary reports whether photo uploads can be served.
func (c *Config) HasCloudinary() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
