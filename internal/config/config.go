package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type DBConfig struct {
	// Driver is "postgres" in production, "sqlite" for local development.
	Driver string

	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	TimeZone string

	// SQLite data source, used when Driver == "sqlite".
	Filename string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifeTime int // minutes
}

type Config struct {
	Environment     string
	HTTPAddr        string
	ShutdownTimeout time.Duration

	DB DBConfig

	// Proposal generator settings.
	GeneratorEnabled bool
	GeneratorCron    string
	GeneratorDays    int // horizon in days
	ClassMinutes     int
	ClassPrice       int64 // cents per class, stand-in for the pricing module
	ClassPointsPrice int64 // points per seat
}

// Load reads configuration from the environment, honouring a .env file if
// one exists next to the binary.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Environment:     getEnv("ENVIRONMENT", "development"),
		HTTPAddr:        ":" + getEnv("PORT", "8080"),
		ShutdownTimeout: time.Duration(getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 30)) * time.Second,
		DB: DBConfig{
			Driver:          getEnv("DB_DRIVER", "postgres"),
			Host:            getEnv("DB_HOST", "postgres"),
			Port:            getEnvInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "padel"),
			Password:        getEnv("DB_PASSWORD", "padel"),
			Name:            getEnv("DB_NAME", "padel_db"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			Filename:        getEnv("DB_FILENAME", "padel.db"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifeTime: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 30),
		},
		GeneratorEnabled: getEnvBool("GENERATOR_ENABLED", true),
		GeneratorCron:    getEnv("GENERATOR_CRON", "0 3 * * *"),
		GeneratorDays:    getEnvInt("GENERATOR_DAYS", 7),
		ClassMinutes:     getEnvInt("CLASS_MINUTES", 90),
		ClassPrice:       int64(getEnvInt("CLASS_PRICE_CENTS", 6000)),
		ClassPointsPrice: int64(getEnvInt("CLASS_POINTS_PRICE", 100)),
	}

	switch cfg.DB.Driver {
	case "postgres":
		if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
			return nil, fmt.Errorf("invalid DB config: host/user/name must not be empty")
		}
	case "sqlite":
		if cfg.DB.Filename == "" {
			return nil, fmt.Errorf("invalid DB config: filename must not be empty")
		}
	default:
		return nil, fmt.Errorf("unsupported DB driver: %s", cfg.DB.Driver)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}
