package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Store backends selectable via STORE_BACKEND.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

type Config struct {
	Env string

	School   SchoolConfig
	Store    StoreConfig
	Redis    RedisConfig
	Payments PaymentsConfig
	Exports  ExportsConfig
	Log      LogConfig
}

// SchoolConfig carries the institution settings seeded into a fresh document.
type SchoolConfig struct {
	Name             string
	Email            string
	Phone            string
	CurrentSemester  string
	SemesterDuration string
}

// StoreConfig selects and tunes the document store backend.
type StoreConfig struct {
	Backend  string
	FilePath string
	RedisKey string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// PaymentsConfig tunes the simulated payment gateway.
type PaymentsConfig struct {
	SimulatedDelay time.Duration
	QueueWorkers   int
}

// ExportsConfig controls where rendered CSV/PDF files land.
type ExportsConfig struct {
	Dir string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	// A missing .env is fine; defaults and process env cover everything.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.School = SchoolConfig{
		Name:             v.GetString("SCHOOL_NAME"),
		Email:            v.GetString("SCHOOL_EMAIL"),
		Phone:            v.GetString("SCHOOL_PHONE"),
		CurrentSemester:  v.GetString("CURRENT_SEMESTER"),
		SemesterDuration: v.GetString("SEMESTER_DURATION"),
	}

	cfg.Store = StoreConfig{
		Backend:  v.GetString("STORE_BACKEND"),
		FilePath: v.GetString("STORE_FILE_PATH"),
		RedisKey: v.GetString("STORE_REDIS_KEY"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Payments = PaymentsConfig{
		SimulatedDelay: parseDuration(v.GetString("PAYMENT_SIMULATED_DELAY"), 2*time.Second),
		QueueWorkers:   v.GetInt("PAYMENT_QUEUE_WORKERS"),
	}

	cfg.Exports = ExportsConfig{
		Dir: v.GetString("EXPORTS_DIR"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("SCHOOL_NAME", "Mindbridge Online School")
	v.SetDefault("SCHOOL_EMAIL", "info@mindbridge.edu")
	v.SetDefault("SCHOOL_PHONE", "+1 (555) 123-4567")
	v.SetDefault("CURRENT_SEMESTER", "Spring 2026")
	v.SetDefault("SEMESTER_DURATION", "3 months")

	v.SetDefault("STORE_BACKEND", StoreMemory)
	v.SetDefault("STORE_FILE_PATH", "./data/mindbridge.json")
	v.SetDefault("STORE_REDIS_KEY", "mindbridge:data")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("PAYMENT_SIMULATED_DELAY", "2s")
	v.SetDefault("PAYMENT_QUEUE_WORKERS", 1)

	v.SetDefault("EXPORTS_DIR", "./exports")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}
