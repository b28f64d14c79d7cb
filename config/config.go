package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Store configuration. StoreDriver selects "mongo" or "memory"; the
	// in-memory store serves environments without a database and tests.
	StoreDriver string `mapstructure:"STORE_DRIVER"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis configuration for the search-result cache.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	SearchCacheTTL int    `mapstructure:"SEARCH_CACHE_TTL_SECONDS"`

	// Reservation engine bounds.
	ReserveMaxAttempts int `mapstructure:"RESERVE_MAX_ATTEMPTS"`

	// Confirmation email credentials. An empty API key selects the stub sender.
	SendGridAPIKey string `mapstructure:"SENDGRID_API_KEY"`
	EmailFrom      string `mapstructure:"EMAIL_FROM"`
	EmailFromName  string `mapstructure:"EMAIL_FROM_NAME"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("STORE_DRIVER", "mongo")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("SEARCH_CACHE_TTL_SECONDS", 30)
	viper.SetDefault("RESERVE_MAX_ATTEMPTS", 3)
	viper.SetDefault("SENDGRID_API_KEY", "")
	viper.SetDefault("EMAIL_FROM", "bookings@medibook.local")
	viper.SetDefault("EMAIL_FROM_NAME", "The Clinic Team")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
