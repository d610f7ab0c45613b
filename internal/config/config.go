package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultSessionSecret = "secret_key_change_me"
	defaultJWTSecret     = "jwt_secret_change_me"
)

// Config holds every runtime setting. Values come from .env, config.yml and the environment.
type Config struct {
	Env           string        `mapstructure:"APP_ENV"`
	Port          string        `mapstructure:"PORT"`
	SiteName      string        `mapstructure:"SITE_NAME"`
	DBDriver      string        `mapstructure:"DB_DRIVER"`
	DatabaseURL   string        `mapstructure:"DATABASE_URL"`
	SessionSecret string        `mapstructure:"SESSION_SECRET"`
	JWTSecret     string        `mapstructure:"JWT_SECRET"`
	JWTTTL        time.Duration `mapstructure:"JWT_TTL"`
	PostsPerPage  int           `mapstructure:"POSTS_PER_PAGE"`
	CacheBackend  string        `mapstructure:"FEED_CACHE_BACKEND"`
	CacheTTL      time.Duration `mapstructure:"FEED_CACHE_TTL"`
	CacheSize     int           `mapstructure:"FEED_CACHE_SIZE"`
	RedisURL      string        `mapstructure:"REDIS_URL"`
	MediaRoot     string        `mapstructure:"MEDIA_ROOT"`
	MediaURL      string        `mapstructure:"MEDIA_URL"`
	MaxUploadMB   int64         `mapstructure:"MAX_UPLOAD_MB"`
}

// Load reads .env (if present) and then the environment on top of built-in defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	v.AutomaticEnv()
	setDefaults(v)

	// config.yml is optional, but a broken one is an error
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("SITE_NAME", "Yatube")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=yatube port=5432 sslmode=disable")
	v.SetDefault("SESSION_SECRET", defaultSessionSecret)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("POSTS_PER_PAGE", 10)
	v.SetDefault("FEED_CACHE_BACKEND", "lru")
	v.SetDefault("FEED_CACHE_TTL", "20s")
	v.SetDefault("FEED_CACHE_SIZE", 500)
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("MEDIA_ROOT", "./media")
	v.SetDefault("MEDIA_URL", "/media/")
	v.SetDefault("MAX_UPLOAD_MB", 10)
}

// Default returns the configuration used when nothing is set, mostly for tests.
func Default() *Config {
	return &Config{
		Env:           "development",
		Port:          "8080",
		SiteName:      "Yatube",
		DBDriver:      "sqlite",
		DatabaseURL:   "file::memory:",
		SessionSecret: defaultSessionSecret,
		JWTSecret:     defaultJWTSecret,
		JWTTTL:        24 * time.Hour,
		PostsPerPage:  10,
		CacheBackend:  "lru",
		CacheTTL:      20 * time.Second,
		CacheSize:     500,
		MediaRoot:     "./media",
		MediaURL:      "/media/",
		MaxUploadMB:   10,
	}
}

// IsProduction reports whether APP_ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Validate checks required values and refuses default secrets in production.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.PostsPerPage <= 0 {
		return errors.New("POSTS_PER_PAGE must be positive")
	}
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.CacheBackend {
	case "lru", "redis", "none":
	default:
		return fmt.Errorf("unsupported FEED_CACHE_BACKEND %q", c.CacheBackend)
	}
	if c.CacheBackend == "redis" && c.RedisURL == "" {
		return errors.New("REDIS_URL is required for the redis feed cache")
	}
	if c.MaxUploadMB <= 0 {
		return errors.New("MAX_UPLOAD_MB must be positive")
	}
	if !strings.HasPrefix(c.MediaURL, "/") || !strings.HasSuffix(c.MediaURL, "/") {
		return errors.New("MEDIA_URL must start and end with /")
	}

	if c.IsProduction() {
		if c.SessionSecret == defaultSessionSecret || c.SessionSecret == "" {
			return errors.New("SESSION_SECRET must be changed from the default value in production")
		}
		if c.JWTSecret == defaultJWTSecret || len(c.JWTSecret) < 32 {
			return errors.New("JWT_SECRET must be at least 32 characters and not the default in production")
		}
	}
	return nil
}
