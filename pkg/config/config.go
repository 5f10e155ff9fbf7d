package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Session store backends.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database   DatabaseConfig
	Redis      RedisConfig
	CORS       CORSConfig
	Log        LogConfig
	Sessions   SessionConfig
	Scales     ScaleConfig
	RateLimit  RateLimitConfig
	Breaker    BreakerConfig
	GradeSheet GradeSheetConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	Prefix   string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// LogConfig controls encoding, level and the optional rotating file sink.
type LogConfig struct {
	Level      string
	Format     string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// SessionConfig controls where calculator sessions live and how long they survive idle.
type SessionConfig struct {
	Store         string
	TTL           time.Duration
	SweepInterval time.Duration
}

// ScaleConfig selects the grade tables available to sessions.
type ScaleConfig struct {
	DefaultCode    string
	File           string
	Watch          bool
	CatalogEnabled bool
	CacheTTL       time.Duration
}

// RateLimitConfig bounds per-client request throughput.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// BreakerConfig tunes the circuit breaker around the shared session store.
type BreakerConfig struct {
	Timeout      time.Duration
	Interval     time.Duration
	MinRequests  uint32
	FailureRatio float64
}

// GradeSheetConfig toggles the printable grade reference sheet.
type GradeSheetConfig struct {
	Enabled bool
	Title   string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
		Prefix:   v.GetString("REDIS_KEY_PREFIX"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:      v.GetString("LOG_LEVEL"),
		Format:     v.GetString("LOG_FORMAT"),
		File:       v.GetString("LOG_FILE"),
		MaxSizeMB:  v.GetInt("LOG_MAX_SIZE_MB"),
		MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
		MaxAgeDays: v.GetInt("LOG_MAX_AGE_DAYS"),
	}

	store := strings.ToLower(strings.TrimSpace(v.GetString("SESSION_STORE")))
	if store != SessionStoreRedis {
		store = SessionStoreMemory
	}
	cfg.Sessions = SessionConfig{
		Store:         store,
		TTL:           parseDuration(v.GetString("SESSION_TTL"), 2*time.Hour),
		SweepInterval: parseDuration(v.GetString("SESSION_SWEEP_INTERVAL"), 5*time.Minute),
	}

	cfg.Scales = ScaleConfig{
		DefaultCode:    strings.ToUpper(strings.TrimSpace(v.GetString("DEFAULT_SCALE_CODE"))),
		File:           v.GetString("GRADE_SCALE_FILE"),
		Watch:          v.GetBool("GRADE_SCALE_WATCH"),
		CatalogEnabled: v.GetBool("ENABLE_SCALE_CATALOG"),
		CacheTTL:       parseDuration(v.GetString("SCALE_CACHE_TTL"), 5*time.Minute),
	}

	cfg.RateLimit = RateLimitConfig{
		Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
		Window:   parseDuration(v.GetString("RATE_LIMIT_WINDOW"), time.Minute),
	}

	ratio := v.GetFloat64("BREAKER_FAILURE_RATIO")
	if ratio <= 0 || ratio > 1 {
		ratio = 0.6
	}
	cfg.Breaker = BreakerConfig{
		Timeout:      parseDuration(v.GetString("BREAKER_TIMEOUT"), 30*time.Second),
		Interval:     parseDuration(v.GetString("BREAKER_INTERVAL"), time.Minute),
		MinRequests:  uint32(v.GetInt("BREAKER_MIN_REQUESTS")),
		FailureRatio: ratio,
	}

	cfg.GradeSheet = GradeSheetConfig{
		Enabled: v.GetBool("ENABLE_GRADE_SHEET"),
		Title:   v.GetString("GRADE_SHEET_TITLE"),
	}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "cgpa")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 5)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_KEY_PREFIX", "cgpa:session:")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("LOG_MAX_SIZE_MB", 100)
	v.SetDefault("LOG_MAX_BACKUPS", 5)
	v.SetDefault("LOG_MAX_AGE_DAYS", 30)

	v.SetDefault("SESSION_STORE", SessionStoreMemory)
	v.SetDefault("SESSION_TTL", "2h")
	v.SetDefault("SESSION_SWEEP_INTERVAL", "5m")

	v.SetDefault("DEFAULT_SCALE_CODE", "DEFAULT")
	v.SetDefault("GRADE_SCALE_FILE", "")
	v.SetDefault("GRADE_SCALE_WATCH", false)
	v.SetDefault("ENABLE_SCALE_CATALOG", false)
	v.SetDefault("SCALE_CACHE_TTL", "5m")

	v.SetDefault("RATE_LIMIT_REQUESTS", 120)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")

	v.SetDefault("BREAKER_TIMEOUT", "30s")
	v.SetDefault("BREAKER_INTERVAL", "1m")
	v.SetDefault("BREAKER_MIN_REQUESTS", 5)
	v.SetDefault("BREAKER_FAILURE_RATIO", 0.6)

	v.SetDefault("ENABLE_GRADE_SHEET", true)
	v.SetDefault("GRADE_SHEET_TITLE", "Grade Classification")
}

func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
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

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
