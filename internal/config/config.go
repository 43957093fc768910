// backend-go/internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	Providers ProvidersConfig
	Engine    EngineConfig
	Archive   ArchiveConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled       bool
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

// ProvidersConfig points at the three marketplace report endpoints.
// The token authenticates every request; PeriodDays is the window the
// ledger and sales reports are fetched over.
type ProvidersConfig struct {
	RemainsURL string
	StorageURL string
	SalesURL   string
	Token      string
	PeriodDays int
	TimeoutSec int
}

// EngineConfig exposes the analysis tunables. Defaults mirror the
// dashboard's historical behaviour and are not validated business
// rules; see engine.DefaultParams.
type EngineConfig struct {
	SentinelDays          int
	DiscountFactor        float64
	OverstockDays         int
	DefaultDiscountPct    float64
	MediumStockMultiplier int
	DefaultDailySales     float64
	FlatDailyStorageCost  float64
}

// ArchiveConfig controls raw provider payload archival to
// S3-compatible object storage. Disabled by default.
type ArchiveConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "stockwise")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("PROVIDER_REMAINS_URL", "http://localhost:9090/api/remains")
		viper.SetDefault("PROVIDER_STORAGE_URL", "http://localhost:9090/api/storage")
		viper.SetDefault("PROVIDER_SALES_URL", "http://localhost:9090/api/sales")
		viper.SetDefault("PROVIDER_TOKEN", "")
		viper.SetDefault("PROVIDER_PERIOD_DAYS", 30)
		viper.SetDefault("PROVIDER_TIMEOUT_SECONDS", 30)
		viper.SetDefault("ENGINE_SENTINEL_DAYS", 999)
		viper.SetDefault("ENGINE_DISCOUNT_FACTOR", 0.5)
		viper.SetDefault("ENGINE_OVERSTOCK_DAYS", 60)
		viper.SetDefault("ENGINE_DEFAULT_DISCOUNT_PCT", 30.0)
		viper.SetDefault("ENGINE_MEDIUM_STOCK_MULTIPLIER", 3)
		viper.SetDefault("ENGINE_DEFAULT_DAILY_SALES", 0.1)
		viper.SetDefault("ENGINE_FLAT_DAILY_STORAGE_COST", 0.5)
		viper.SetDefault("ARCHIVE_ENABLED", false)
		viper.SetDefault("ARCHIVE_ENDPOINT", "")
		viper.SetDefault("ARCHIVE_ACCESS_KEY", "")
		viper.SetDefault("ARCHIVE_SECRET_KEY", "")
		viper.SetDefault("ARCHIVE_BUCKET", "stockwise-snapshots")
		viper.SetDefault("ARCHIVE_USE_SSL", true)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:       viper.GetBool("CACHE_ENABLED"),
				RedisURL:      viper.GetString("REDIS_URL"),
				RedisHost:     viper.GetString("REDIS_HOST"),
				RedisPort:     viper.GetString("REDIS_PORT"),
				RedisPassword: viper.GetString("REDIS_PASSWORD"),
				RedisDB:       viper.GetInt("REDIS_DB"),
			},
			Providers: ProvidersConfig{
				RemainsURL: viper.GetString("PROVIDER_REMAINS_URL"),
				StorageURL: viper.GetString("PROVIDER_STORAGE_URL"),
				SalesURL:   viper.GetString("PROVIDER_SALES_URL"),
				Token:      viper.GetString("PROVIDER_TOKEN"),
				PeriodDays: viper.GetInt("PROVIDER_PERIOD_DAYS"),
				TimeoutSec: viper.GetInt("PROVIDER_TIMEOUT_SECONDS"),
			},
			Engine: EngineConfig{
				SentinelDays:          viper.GetInt("ENGINE_SENTINEL_DAYS"),
				DiscountFactor:        viper.GetFloat64("ENGINE_DISCOUNT_FACTOR"),
				OverstockDays:         viper.GetInt("ENGINE_OVERSTOCK_DAYS"),
				DefaultDiscountPct:    viper.GetFloat64("ENGINE_DEFAULT_DISCOUNT_PCT"),
				MediumStockMultiplier: viper.GetInt("ENGINE_MEDIUM_STOCK_MULTIPLIER"),
				DefaultDailySales:     viper.GetFloat64("ENGINE_DEFAULT_DAILY_SALES"),
				FlatDailyStorageCost:  viper.GetFloat64("ENGINE_FLAT_DAILY_STORAGE_COST"),
			},
			Archive: ArchiveConfig{
				Enabled:   viper.GetBool("ARCHIVE_ENABLED"),
				Endpoint:  viper.GetString("ARCHIVE_ENDPOINT"),
				AccessKey: viper.GetString("ARCHIVE_ACCESS_KEY"),
				SecretKey: viper.GetString("ARCHIVE_SECRET_KEY"),
				Bucket:    viper.GetString("ARCHIVE_BUCKET"),
				UseSSL:    viper.GetBool("ARCHIVE_USE_SSL"),
			},
		}
	})

	return instance
}
