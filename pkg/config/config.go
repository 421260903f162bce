package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Redis    RedisConfig
	JWT      JWTConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Log      LogConfig
	Sheets   SheetsConfig
	Summary  SummaryConfig
	Analysis AnalysisConfig
	Exports  ExportsConfig
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

// AuthConfig holds the shared teacher credential. When PasswordHash is set
// it takes precedence over the plain Password.
type AuthConfig struct {
	Password     string
	PasswordHash string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SheetsConfig addresses the tabular backend: the roster spreadsheet and the
// credential used for every per-student sheet read and write.
type SheetsConfig struct {
	APIToken      string
	BaseURL       string
	RosterLocator string
	Timeout       time.Duration
}

// SummaryConfig tunes the daily aggregation cache.
type SummaryConfig struct {
	CacheTTL time.Duration
}

// AnalysisConfig configures the external completion service. An empty APIKey
// disables the feature rather than failing startup.
type AnalysisConfig struct {
	Enabled   bool
	APIKey    string
	Model     string
	MaxTokens int
}

// ExportsConfig controls summary export storage and signed downloads.
type ExportsConfig struct {
	Enabled         bool
	StorageDir      string
	SignedURLSecret string
	SignedURLTTL    time.Duration
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
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 12*time.Hour),
	}

	cfg.Auth = AuthConfig{
		Password:     v.GetString("TEACHER_PASSWORD"),
		PasswordHash: v.GetString("TEACHER_PASSWORD_HASH"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Sheets = SheetsConfig{
		APIToken:      v.GetString("SHEETS_API_TOKEN"),
		BaseURL:       v.GetString("SHEETS_BASE_URL"),
		RosterLocator: v.GetString("ROSTER_SHEET_URL"),
		Timeout:       parseDuration(v.GetString("SHEETS_TIMEOUT"), 15*time.Second),
	}

	cfg.Summary = SummaryConfig{
		CacheTTL: parseDuration(v.GetString("SUMMARY_CACHE_TTL"), 12*time.Hour),
	}

	cfg.Analysis = AnalysisConfig{
		Enabled:   v.GetBool("ENABLE_ANALYSIS"),
		APIKey:    v.GetString("ANALYSIS_API_KEY"),
		Model:     v.GetString("ANALYSIS_MODEL"),
		MaxTokens: v.GetInt("ANALYSIS_MAX_TOKENS"),
	}

	cfg.Exports = ExportsConfig{
		Enabled:         v.GetBool("ENABLE_EXPORTS"),
		StorageDir:      v.GetString("EXPORTS_STORAGE_DIR"),
		SignedURLSecret: v.GetString("EXPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:    parseDuration(v.GetString("EXPORTS_SIGNED_URL_TTL"), 30*time.Minute),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "12h")

	v.SetDefault("TEACHER_PASSWORD", "")
	v.SetDefault("TEACHER_PASSWORD_HASH", "")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SHEETS_API_TOKEN", "")
	v.SetDefault("SHEETS_BASE_URL", "https://sheets.googleapis.com/v4")
	v.SetDefault("ROSTER_SHEET_URL", "")
	v.SetDefault("SHEETS_TIMEOUT", "15s")

	v.SetDefault("SUMMARY_CACHE_TTL", "12h")

	v.SetDefault("ENABLE_ANALYSIS", false)
	v.SetDefault("ANALYSIS_API_KEY", "")
	v.SetDefault("ANALYSIS_MODEL", "claude-3-5-haiku-latest")
	v.SetDefault("ANALYSIS_MAX_TOKENS", 1024)

	v.SetDefault("ENABLE_EXPORTS", false)
	v.SetDefault("EXPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("EXPORTS_SIGNED_URL_SECRET", "dev_exports_secret")
	v.SetDefault("EXPORTS_SIGNED_URL_TTL", "30m")
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
