package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Ranking  RankingConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	AllowOrigins    []string
}

type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
}

type JWTConfig struct {
	SecretKey string
}

type RedisConfig struct {
	Enabled       bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

// RankingConfig drives the vendor ranking engine and its daily job.
type RankingConfig struct {
	RecomputeInterval    time.Duration
	RecomputeConcurrency int
	RecomputeOnStartup   bool
	TopMax               int
	TopCacheTTL          time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	concurrency, err := getEnvInt("RANKING_RECOMPUTE_CONCURRENCY", 4)
	if err != nil {
		return nil, errors.New("invalid ranking recompute concurrency")
	}

	topMax, err := getEnvInt("RANKING_TOP_MAX", 50)
	if err != nil {
		return nil, errors.New("invalid ranking top max")
	}

	interval, err := getEnvDuration("RANKING_RECOMPUTE_INTERVAL", 24*time.Hour)
	if err != nil {
		return nil, errors.New("invalid ranking recompute interval")
	}

	cacheTTL, err := getEnvDuration("RANKING_TOP_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, errors.New("invalid ranking top cache ttl")
	}

	requestTimeout, err := getEnvDuration("SERVER_REQUEST_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, errors.New("invalid server request timeout")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Vendor Ranking API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			RequestTimeout:  requestTimeout,
			ShutdownTimeout: 10 * time.Second,
			AllowOrigins:    []string{"http://localhost:3000", "http://localhost:8080"},
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", ""),
			Name:        getEnv("DB_NAME", "food_delivery"),
			SSLMode:     getEnv("DB_SSL_MODE", "disable"),
			AutoMigrate: getEnvBool("DB_AUTO_MIGRATE", false),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Redis: RedisConfig{
			Enabled:       getEnvBool("REDIS_ENABLED", false),
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		Ranking: RankingConfig{
			RecomputeInterval:    interval,
			RecomputeConcurrency: concurrency,
			RecomputeOnStartup:   getEnvBool("RANKING_RECOMPUTE_ON_STARTUP", false),
			TopMax:               topMax,
			TopCacheTTL:          cacheTTL,
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	if cfg.Ranking.RecomputeConcurrency <= 0 {
		return nil, errors.New("ranking recompute concurrency must be positive")
	}

	if cfg.Ranking.TopMax <= 0 {
		return nil, errors.New("ranking top max must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}

	return strconv.Atoi(val)
}

func getEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}

	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}

	return b
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}

	return time.ParseDuration(val)
}
