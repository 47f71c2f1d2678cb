package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/anhbui5302/AnhBlogWebAPI/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	OAuth    OAuthConfig
	Redis    RedisConfig
	Server   ServerConfig
}

type DatabaseConfig struct {
	Primary  DBConnection
	Fallback DBConnection
	LogSQL   bool
}

type DBConnection struct {
	Driver string
	DSN    string
	Enable bool
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type OAuthConfig struct {
	GoogleClientID       string
	GoogleClientSecret   string
	FacebookClientID     string
	FacebookClientSecret string
}

type RedisConfig struct {
	Addr     string
	Password string
}

type ServerConfig struct {
	Port         string
	BaseURL      string
	AllowOrigins []string
	Debug        bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", map[string]any{"error": err.Error()})
	}

	return &Config{
		Database: DatabaseConfig{
			Primary:  loadPrimaryDB(),
			Fallback: loadFallbackDB(),
			LogSQL:   getEnvOrDefault("DB_LOG_SQL", "false") == "true",
		},
		JWT: JWTConfig{
			Secret: getEnvOrDefault("JWT_SECRET", "default_secret_key"),
			TTL:    time.Duration(getIntOrDefault("JWT_TTL_MINUTES", 60)) * time.Minute,
		},
		OAuth: OAuthConfig{
			GoogleClientID:       os.Getenv("GOOGLE_CLIENT_ID"),
			GoogleClientSecret:   os.Getenv("GOOGLE_CLIENT_SECRET"),
			FacebookClientID:     os.Getenv("FACEBOOK_CLIENT_ID"),
			FacebookClientSecret: os.Getenv("FACEBOOK_CLIENT_SECRET"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Server: ServerConfig{
			Port:         getEnvOrDefault("PORT", "8080"),
			BaseURL:      strings.TrimRight(getEnvOrDefault("BASE_URL", "http://localhost:8080"), "/"),
			AllowOrigins: splitList(getEnvOrDefault("CORS_ALLOW_ORIGINS", "*")),
			Debug:        getEnvOrDefault("GIN_MODE", "debug") == "debug",
		},
	}
}

func loadPrimaryDB() DBConnection {
	driver := getEnvOrDefault("PRIMARY_DB_DRIVER", "mysql")
	enable := getEnvOrDefault("PRIMARY_DB_ENABLE", "true") == "true"

	var dsn string
	switch driver {
	case "mysql":
		dsn = buildMySQLDSN()
	case "postgres":
		dsn = buildPostgresDSN()
	case "sqlite":
		dsn = getEnvOrDefault("PRIMARY_SQLITE_PATH", "./data/primary.db")
	default:
		logger.Warn("unsupported primary database driver", map[string]any{"driver": driver})
		enable = false
	}

	return DBConnection{
		Driver: driver,
		DSN:    dsn,
		Enable: enable,
	}
}

func loadFallbackDB() DBConnection {
	driver := getEnvOrDefault("FALLBACK_DB_DRIVER", "sqlite")
	enable := getEnvOrDefault("FALLBACK_DB_ENABLE", "true") == "true"

	var dsn string
	switch driver {
	case "mysql":
		dsn = os.Getenv("FALLBACK_DB_DSN")
	case "postgres":
		dsn = os.Getenv("FALLBACK_DB_DSN")
	case "sqlite":
		dsn = getEnvOrDefault("FALLBACK_SQLITE_PATH", "./data/fallback.db")
	default:
		driver = "sqlite"
		dsn = "./data/fallback.db"
	}

	return DBConnection{
		Driver: driver,
		DSN:    dsn,
		Enable: enable,
	}
}

func buildMySQLDSN() string {
	if dsn := os.Getenv("PRIMARY_DB_DSN"); dsn != "" {
		return dsn
	}

	host := getEnvOrDefault("MYSQL_HOST", "localhost")
	port := getEnvOrDefault("MYSQL_PORT", "3306")
	username := os.Getenv("MYSQL_USERNAME")
	password := os.Getenv("MYSQL_PASSWORD")
	database := os.Getenv("MYSQL_DATABASE")
	charset := getEnvOrDefault("MYSQL_CHARSET", "utf8mb4")

	if username == "" || password == "" || database == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		username, password, host, port, database, charset)
}

func buildPostgresDSN() string {
	if dsn := os.Getenv("PRIMARY_DB_DSN"); dsn != "" {
		return dsn
	}

	host := getEnvOrDefault("POSTGRES_HOST", "localhost")
	port := getEnvOrDefault("POSTGRES_PORT", "5432")
	username := os.Getenv("POSTGRES_USER")
	password := os.Getenv("POSTGRES_PASSWORD")
	database := os.Getenv("POSTGRES_DB")
	sslmode := getEnvOrDefault("POSTGRES_SSLMODE", "disable")

	if username == "" || database == "" {
		return ""
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, username, password, database, sslmode)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
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
