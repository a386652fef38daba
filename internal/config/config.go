package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration. It is loaded and validated once
// at process start and passed by reference; nothing re-reads the environment
// per call.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	S3        S3Config
	Output    OutputConfig
	Extractor ExtractorConfig
	CORS      CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// S3Config holds AWS S3 settings for uploaded image storage.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// OutputConfig holds the CSV artifact sink settings.
type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

// ExtractorProviderConfig holds settings for a single extraction provider.
type ExtractorProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ExtractorConfig holds extraction boundary settings with multi-provider
// fallback support. Secondary and tertiary providers are optional.
type ExtractorConfig struct {
	Primary   ExtractorProviderConfig `mapstructure:"primary"`
	Secondary ExtractorProviderConfig `mapstructure:"secondary"`
	Tertiary  ExtractorProviderConfig `mapstructure:"tertiary"`
}

// Providers returns the configured provider configs in fallback order.
func (e *ExtractorConfig) Providers() []*ExtractorProviderConfig {
	out := []*ExtractorProviderConfig{&e.Primary}
	if e.Secondary.Provider != "" {
		out = append(out, &e.Secondary)
	}
	if e.Tertiary.Provider != "" {
		out = append(out, &e.Tertiary)
	}
	return out
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the MARKSIGHT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MARKSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "marksight")
	v.SetDefault("db.password", "marksight_secret")
	v.SetDefault("db.name", "marksight_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "marksight-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 10)
	v.SetDefault("s3.presign_expiry", 3600)

	// Output defaults
	v.SetDefault("output.dir", "output")

	// Extractor defaults: the primary provider mirrors the hosted multimodal
	// model the pipeline was built against.
	v.SetDefault("extractor.primary.provider", "perplexity")
	v.SetDefault("extractor.primary.api_key", "")
	v.SetDefault("extractor.primary.default_model", "llama-3.1-sonar-large-128k-online")
	v.SetDefault("extractor.primary.timeout_secs", 120)
	v.SetDefault("extractor.secondary.provider", "")
	v.SetDefault("extractor.secondary.api_key", "")
	v.SetDefault("extractor.secondary.default_model", "")
	v.SetDefault("extractor.secondary.timeout_secs", 120)
	v.SetDefault("extractor.tertiary.provider", "")
	v.SetDefault("extractor.tertiary.api_key", "")
	v.SetDefault("extractor.tertiary.default_model", "")
	v.SetDefault("extractor.tertiary.timeout_secs", 120)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                       "MARKSIGHT_SERVER_PORT",
		"server.read_timeout":               "MARKSIGHT_SERVER_READ_TIMEOUT",
		"server.write_timeout":              "MARKSIGHT_SERVER_WRITE_TIMEOUT",
		"server.environment":                "MARKSIGHT_SERVER_ENVIRONMENT",
		"db.host":                           "MARKSIGHT_DB_HOST",
		"db.port":                           "MARKSIGHT_DB_PORT",
		"db.user":                           "MARKSIGHT_DB_USER",
		"db.password":                       "MARKSIGHT_DB_PASSWORD",
		"db.name":                           "MARKSIGHT_DB_NAME",
		"db.sslmode":                        "MARKSIGHT_DB_SSLMODE",
		"db.max_open":                       "MARKSIGHT_DB_MAX_OPEN",
		"db.max_idle":                       "MARKSIGHT_DB_MAX_IDLE",
		"s3.region":                         "MARKSIGHT_S3_REGION",
		"s3.bucket":                         "MARKSIGHT_S3_BUCKET",
		"s3.endpoint":                       "MARKSIGHT_S3_ENDPOINT",
		"s3.access_key":                     "MARKSIGHT_S3_ACCESS_KEY",
		"s3.secret_key":                     "MARKSIGHT_S3_SECRET_KEY",
		"s3.max_file_size_mb":               "MARKSIGHT_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":                 "MARKSIGHT_S3_PRESIGN_EXPIRY",
		"output.dir":                        "MARKSIGHT_OUTPUT_DIR",
		"cors.allowed_origins":              "MARKSIGHT_CORS_ALLOWED_ORIGINS",
		"extractor.primary.provider":        "MARKSIGHT_EXTRACTOR_PRIMARY_PROVIDER",
		"extractor.primary.api_key":         "MARKSIGHT_EXTRACTOR_PRIMARY_API_KEY",
		"extractor.primary.default_model":   "MARKSIGHT_EXTRACTOR_PRIMARY_DEFAULT_MODEL",
		"extractor.primary.timeout_secs":    "MARKSIGHT_EXTRACTOR_PRIMARY_TIMEOUT_SECS",
		"extractor.secondary.provider":      "MARKSIGHT_EXTRACTOR_SECONDARY_PROVIDER",
		"extractor.secondary.api_key":       "MARKSIGHT_EXTRACTOR_SECONDARY_API_KEY",
		"extractor.secondary.default_model": "MARKSIGHT_EXTRACTOR_SECONDARY_DEFAULT_MODEL",
		"extractor.secondary.timeout_secs":  "MARKSIGHT_EXTRACTOR_SECONDARY_TIMEOUT_SECS",
		"extractor.tertiary.provider":       "MARKSIGHT_EXTRACTOR_TERTIARY_PROVIDER",
		"extractor.tertiary.api_key":        "MARKSIGHT_EXTRACTOR_TERTIARY_API_KEY",
		"extractor.tertiary.default_model":  "MARKSIGHT_EXTRACTOR_TERTIARY_DEFAULT_MODEL",
		"extractor.tertiary.timeout_secs":   "MARKSIGHT_EXTRACTOR_TERTIARY_TIMEOUT_SECS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if MARKSIGHT_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("MARKSIGHT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Output = OutputConfig{
		Dir: v.GetString("output.dir"),
	}
	cfg.Extractor = ExtractorConfig{
		Primary: ExtractorProviderConfig{
			Provider:     v.GetString("extractor.primary.provider"),
			APIKey:       v.GetString("extractor.primary.api_key"),
			DefaultModel: v.GetString("extractor.primary.default_model"),
			TimeoutSecs:  v.GetInt("extractor.primary.timeout_secs"),
		},
		Secondary: ExtractorProviderConfig{
			Provider:     v.GetString("extractor.secondary.provider"),
			APIKey:       v.GetString("extractor.secondary.api_key"),
			DefaultModel: v.GetString("extractor.secondary.default_model"),
			TimeoutSecs:  v.GetInt("extractor.secondary.timeout_secs"),
		},
		Tertiary: ExtractorProviderConfig{
			Provider:     v.GetString("extractor.tertiary.provider"),
			APIKey:       v.GetString("extractor.tertiary.api_key"),
			DefaultModel: v.GetString("extractor.tertiary.default_model"),
			TimeoutSecs:  v.GetInt("extractor.tertiary.timeout_secs"),
		},
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	return cfg, nil
}
