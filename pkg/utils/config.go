package utils

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	Database    DatabaseConfig
	Session     SessionConfig
	Limiter     LimiterConfig
	CORS        CORSConfig
	Permissions PermissionConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
	BaseURL string
}

type DatabaseConfig struct {
	Host        string
	Port        string
	Name        string
	User        string
	Password    string
	SSLMode     string
	MaxConns    int32
	AutoMigrate bool
}

type SessionConfig struct {
	ExpiryHours int
}

type LimiterConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

type CORSConfig struct {
	TrustedOrigins []string
}

// PermissionConfig toggles access rules that differ from the resource defaults.
// UsersRequireAuth is off by default: the users endpoint has always been
// reachable without a session.
type PermissionConfig struct {
	UsersRequireAuth bool
}

func LoadConfig() (*Config, error) {
	// .env is optional, real environment variables win
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v := viper.New()

	// Set defaults
	v.SetDefault("APP_NAME", "quickstart-api")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("SESSION_EXPIRY_HOURS", 24)
	v.SetDefault("LIMITER_ENABLED", true)
	v.SetDefault("LIMITER_RPS", 2)
	v.SetDefault("LIMITER_BURST", 4)
	v.SetDefault("CORS_TRUSTED_ORIGINS", "")
	v.SetDefault("USERS_REQUIRE_AUTH", false)

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
			BaseURL: strings.TrimRight(v.GetString("APP_BASE_URL"), "/"),
		},
		Database: DatabaseConfig{
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetString("DB_PORT"),
			Name:        v.GetString("DB_NAME"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASS"),
			SSLMode:     v.GetString("DB_SSLMODE"),
			MaxConns:    v.GetInt32("DB_MAX_CONNS"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		Session: SessionConfig{
			ExpiryHours: v.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Limiter: LimiterConfig{
			Enabled: v.GetBool("LIMITER_ENABLED"),
			RPS:     v.GetFloat64("LIMITER_RPS"),
			Burst:   v.GetInt("LIMITER_BURST"),
		},
		CORS: CORSConfig{
			TrustedOrigins: strings.Fields(v.GetString("CORS_TRUSTED_ORIGINS")),
		},
		Permissions: PermissionConfig{
			UsersRequireAuth: v.GetBool("USERS_REQUIRE_AUTH"),
		},
	}

	return config, nil
}
