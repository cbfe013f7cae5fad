package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/linskybing/formbuilder-go/pkg/logger"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port           string
	Mode           string
	AllowedOrigins []string
	IsProduction   bool
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
}

// DSN renders the postgres keyword/value connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

type JWTConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type StorageConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	URLExpiry time.Duration
}

type AuditConfig struct {
	Keep          int
	PruneInterval time.Duration
}

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Log      logger.Config
	Storage  StorageConfig
	Audit    AuditConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("server.production", false)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.name", "formbuilder")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.log_level", "warn")

	v.SetDefault("jwt.secret", "defaultsecret")
	v.SetDefault("jwt.issuer", "formbuilder")
	v.SetDefault("jwt.ttl", "24h")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.file_path", "")
	v.SetDefault("log.development", false)

	v.SetDefault("storage.enabled", false)
	v.SetDefault("storage.endpoint", "localhost:9000")
	v.SetDefault("storage.access_key", "minioadmin")
	v.SetDefault("storage.secret_key", "minioadmin")
	v.SetDefault("storage.use_ssl", false)
	v.SetDefault("storage.bucket", "formbuilder-exports")
	v.SetDefault("storage.url_expiry", "1h")

	v.SetDefault("audit.keep", 100)
	v.SetDefault("audit.prune_interval", "24h")
}

// Legacy variable names kept working alongside the nested ones.
var envAliases = map[string][]string{
	"server.port":        {"SERVER_PORT"},
	"database.host":      {"DB_HOST", "DATABASE_HOST"},
	"database.port":      {"DB_PORT", "DATABASE_PORT"},
	"database.user":      {"DB_USER", "DATABASE_USER"},
	"database.password":  {"DB_PASSWORD", "DATABASE_PASSWORD"},
	"database.name":      {"DB_NAME", "DATABASE_NAME"},
	"jwt.secret":         {"JWT_SECRET"},
	"jwt.issuer":         {"ISSUER", "JWT_ISSUER"},
	"storage.endpoint":   {"MINIO_ENDPOINT", "STORAGE_ENDPOINT"},
	"storage.access_key": {"MINIO_ACCESS_KEY", "STORAGE_ACCESS_KEY"},
	"storage.secret_key": {"MINIO_SECRET_KEY", "STORAGE_SECRET_KEY"},
	"storage.use_ssl":    {"MINIO_USE_SSL", "STORAGE_USE_SSL"},
	"storage.bucket":     {"MINIO_BUCKET", "STORAGE_BUCKET"},
	"audit.keep":         {"AUDIT_KEEP"},
}

// Load reads .env (if present), an optional YAML file and the environment.
// Environment variables win over the file, the file wins over defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, envs := range envAliases {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("server.port"),
			Mode:           v.GetString("server.mode"),
			AllowedOrigins: v.GetStringSlice("server.allowed_origins"),
			IsProduction:   v.GetBool("server.production"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetString("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			Name:            v.GetString("database.name"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
			LogLevel:        v.GetString("database.log_level"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt.secret"),
			Issuer: v.GetString("jwt.issuer"),
			TTL:    v.GetDuration("jwt.ttl"),
		},
		Log: logger.Config{
			Level:       v.GetString("log.level"),
			Format:      v.GetString("log.format"),
			Output:      v.GetString("log.output"),
			FilePath:    v.GetString("log.file_path"),
			Development: v.GetBool("log.development"),
		},
		Storage: StorageConfig{
			Enabled:   v.GetBool("storage.enabled"),
			Endpoint:  v.GetString("storage.endpoint"),
			AccessKey: v.GetString("storage.access_key"),
			SecretKey: v.GetString("storage.secret_key"),
			UseSSL:    v.GetBool("storage.use_ssl"),
			Bucket:    v.GetString("storage.bucket"),
			URLExpiry: v.GetDuration("storage.url_expiry"),
		},
		Audit: AuditConfig{
			Keep:          v.GetInt("audit.keep"),
			PruneInterval: v.GetDuration("audit.prune_interval"),
		},
	}

	if cfg.Audit.Keep < 1 {
		return nil, fmt.Errorf("audit.keep must be positive, got %d", cfg.Audit.Keep)
	}
	return cfg, nil
}
