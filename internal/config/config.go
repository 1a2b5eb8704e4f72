package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	S3     S3Config
	N8N    N8NConfig
	Upload UploadConfig
	CORS   CORSConfig
	Log    LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	// CallbackBaseURL is the externally reachable base URL n8n posts its
	// verdicts back to (may differ from the listen address behind Docker).
	CallbackBaseURL string `mapstructure:"callback_base_url"`
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

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	// DownloadExpiry is the TTL in seconds for user-facing download links.
	DownloadExpiry int64 `mapstructure:"download_expiry"`
	// WorkflowExpiry is the TTL in seconds for the presigned link handed to
	// the n8n workflow.
	WorkflowExpiry int64 `mapstructure:"workflow_expiry"`
}

// N8NConfig holds outbound webhook settings for the n8n validation workflow.
type N8NConfig struct {
	APIKey      string `mapstructure:"api_key"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// UploadConfig holds file acceptance policy.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the FAILFAST_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FAILFAST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.callback_base_url", "http://localhost:8080")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "failfast")
	v.SetDefault("db.password", "failfast_secret")
	v.SetDefault("db.name", "failfast_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "failfast-documents")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.download_expiry", 300)
	v.SetDefault("s3.workflow_expiry", 3600)

	// N8N defaults
	v.SetDefault("n8n.api_key", "")
	v.SetDefault("n8n.timeout_secs", 30)

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 10)

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":              "FAILFAST_SERVER_PORT",
		"server.read_timeout":      "FAILFAST_SERVER_READ_TIMEOUT",
		"server.write_timeout":     "FAILFAST_SERVER_WRITE_TIMEOUT",
		"server.environment":       "FAILFAST_SERVER_ENVIRONMENT",
		"server.callback_base_url": "FAILFAST_SERVER_CALLBACK_BASE_URL",
		"db.host":                  "FAILFAST_DB_HOST",
		"db.port":                  "FAILFAST_DB_PORT",
		"db.user":                  "FAILFAST_DB_USER",
		"db.password":              "FAILFAST_DB_PASSWORD",
		"db.name":                  "FAILFAST_DB_NAME",
		"db.sslmode":               "FAILFAST_DB_SSLMODE",
		"db.max_open":              "FAILFAST_DB_MAX_OPEN",
		"db.max_idle":              "FAILFAST_DB_MAX_IDLE",
		"s3.region":                "FAILFAST_S3_REGION",
		"s3.bucket":                "FAILFAST_S3_BUCKET",
		"s3.endpoint":              "FAILFAST_S3_ENDPOINT",
		"s3.access_key":            "FAILFAST_S3_ACCESS_KEY",
		"s3.secret_key":            "FAILFAST_S3_SECRET_KEY",
		"s3.download_expiry":       "FAILFAST_S3_DOWNLOAD_EXPIRY",
		"s3.workflow_expiry":       "FAILFAST_S3_WORKFLOW_EXPIRY",
		"n8n.api_key":              "FAILFAST_N8N_API_KEY",
		"n8n.timeout_secs":         "FAILFAST_N8N_TIMEOUT_SECS",
		"upload.max_file_size_mb":  "FAILFAST_UPLOAD_MAX_FILE_SIZE_MB",
		"cors.allowed_origins":     "FAILFAST_CORS_ALLOWED_ORIGINS",
		"log.level":                "FAILFAST_LOG_LEVEL",
		"log.format":               "FAILFAST_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if FAILFAST_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("FAILFAST_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:            serverPort,
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		Environment:     v.GetString("server.environment"),
		CallbackBaseURL: strings.TrimRight(v.GetString("server.callback_base_url"), "/"),
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
		Region:         v.GetString("s3.region"),
		Bucket:         v.GetString("s3.bucket"),
		Endpoint:       v.GetString("s3.endpoint"),
		AccessKey:      v.GetString("s3.access_key"),
		SecretKey:      v.GetString("s3.secret_key"),
		DownloadExpiry: v.GetInt64("s3.download_expiry"),
		WorkflowExpiry: v.GetInt64("s3.workflow_expiry"),
	}
	cfg.N8N = N8NConfig{
		APIKey:      v.GetString("n8n.api_key"),
		TimeoutSecs: v.GetInt("n8n.timeout_secs"),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
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

	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}
