package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Generator GeneratorConfig
	Engine    EngineConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout      time.Duration
	PoolMaxConns        int32
	PoolMinConns        int32
	PoolMaxConnLifetime time.Duration
	PoolMaxConnIdleTime time.Duration
}

// Enabled reports whether a job corpus database is configured.
func (c DatabaseConfig) Enabled() bool {
	return c.DBHost != "" && c.DBName != ""
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

type GeneratorConfig struct {
	GeminiAPIKey string
	GeminiModel  string
	Timeout      time.Duration
}

type EngineConfig struct {
	WeightCacheTTL      time.Duration
	WeightCacheCapacity int
	WeightCacheDrift    float64

	BatchParallelism    int
	ReferenceGraphsPath string

	ExperienceMode             string
	ExperienceMinCompatibility float64
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:              opt("DB_HOST"),
		DBPort:              opt("DB_PORT"),
		DBName:              opt("DB_NAME"),
		DBUser:              opt("DB_USER"),
		DBPassword:          opt("DB_PASSWORD"),
		DBSSLMode:           opt("DB_SSL_MODE"),
		ConnectTimeout:      seconds(opt("DB_CONNECT_TIMEOUT_SECONDS"), 5),
		PoolMaxConns:        int32(intOr(opt("DB_POOL_MAX_CONNS"), 10)),
		PoolMinConns:        int32(intOr(opt("DB_POOL_MIN_CONNS"), 0)),
		PoolMaxConnLifetime: seconds(opt("DB_POOL_MAX_CONN_LIFETIME_SECONDS"), 3600),
		PoolMaxConnIdleTime: seconds(opt("DB_POOL_MAX_CONN_IDLE_SECONDS"), 300),
	}
	if cfg.Database.DBSSLMode == "" {
		cfg.Database.DBSSLMode = "disable"
	}

	cfg.Redis = LoadRedis()

	cfg.Generator = GeneratorConfig{
		GeminiAPIKey: opt("GEMINI_API_KEY"),
		GeminiModel:  opt("GEMINI_MODEL"),
		Timeout:      seconds(opt("GENERATOR_TIMEOUT_SECONDS"), 30),
	}

	cfg.Engine = LoadEngine()

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

// LoadEngine reads only the engine tunables. The CLI uses it directly since
// it needs no server settings.
func LoadEngine() EngineConfig {
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	return EngineConfig{
		WeightCacheTTL:             seconds(opt("WEIGHT_CACHE_TTL_SECONDS"), 3600),
		WeightCacheCapacity:        intOr(opt("WEIGHT_CACHE_CAPACITY"), 1000),
		WeightCacheDrift:           floatOr(opt("WEIGHT_CACHE_DRIFT"), 0.20),
		BatchParallelism:           intOr(opt("BATCH_PARALLELISM"), 4),
		ReferenceGraphsPath:        opt("REFERENCE_GRAPHS_PATH"),
		ExperienceMode:             strings.ToLower(opt("EXPERIENCE_MODE")),
		ExperienceMinCompatibility: floatOr(opt("EXPERIENCE_MIN_COMPATIBILITY"), 0.5),
	}
}

func LoadRedis() RedisConfig {
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	return RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      seconds(opt("REDIS_TTL"), 600),
	}
}

func intOr(raw string, def int) int {
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	return v
}

func floatOr(raw string, def float64) float64 {
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return def
	}
	return v
}

func seconds(raw string, def int) time.Duration {
	v := intOr(raw, def)
	if v <= 0 {
		v = def
	}
	return time.Duration(v) * time.Second
}
