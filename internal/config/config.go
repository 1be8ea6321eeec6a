package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	ConnectTimeoutSec  int
	ApplicationName    string
	AutoMigrate        bool
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// BlobConfig holds settings for the remote blob HTTP endpoint.
type BlobConfig struct {
	BaseURL string
	Token   string
	Folder  string
	Timeout time.Duration
}

// StorageConfig selects the primary attachment backend. Local disk is always
// the fallback.
type StorageConfig struct {
	Backend string // blob, minio or local
	Blob    BlobConfig
	MinIO   MinIOConfig
}

// UploadConfig holds attachment validation limits.
type UploadConfig struct {
	Folder            string
	MaxContentLength  int64
	AllowedExtensions []string
}

// SecurityConfig holds login lockout and token settings.
type SecurityConfig struct {
	LockoutStore string // memory or redis
	RedisURL     string
	JWTSecret    string
	JWTTTL       time.Duration
}

// AdminConfig seeds the first administrator when no account uses Email.
// Bootstrap is skipped while Email or Password is empty.
type AdminConfig struct {
	Username string
	Email    string
	Password string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Location string
	LogLevel string
	Database DatabaseConfig
	Storage  StorageConfig
	Upload   UploadConfig
	Security SecurityConfig
	Admin    AdminConfig
	// TrustedProxies lists the proxy addresses or CIDRs whose X-Forwarded-For
	// is honoured. Empty means the socket address is always the client.
	TrustedProxies []string
}

// DefaultAllowedExtensions is the attachment extension allow-list used when
// ALLOWED_EXTENSIONS is not set.
var DefaultAllowedExtensions = []string{"txt", "pdf", "png", "jpg", "jpeg", "gif", "doc", "docx", "xls", "xlsx"}

// DefaultMaxContentLength is the attachment size limit (16 MiB).
const DefaultMaxContentLength int64 = 16 * 1024 * 1024

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
func Load() *AppConfig {
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:8080"),
		Port:     getEnv("PORT", "8080"),
		Location: getEnv("TZ_LOCATION", "America/Sao_Paulo"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			ConnectTimeoutSec:  getEnvInt("DB_CONNECT_TIMEOUT_SEC", 5),
			ApplicationName:    getEnv("DB_APPLICATION_NAME", "gedo-api"),
			AutoMigrate:        getEnvBool("DB_AUTO_MIGRATE", true),
		},
		Storage: StorageConfig{
			Backend: strings.ToLower(getEnv("STORAGE_BACKEND", "blob")),
			Blob: BlobConfig{
				BaseURL: getEnv("BLOB_BASE_URL", "https://blob.vercel-storage.com"),
				Token:   getEnv("BLOB_READ_WRITE_TOKEN", ""),
				Folder:  getEnv("BLOB_FOLDER", "uploads"),
				Timeout: time.Duration(getEnvInt("BLOB_TIMEOUT_SEC", 60)) * time.Second,
			},
			MinIO: MinIOConfig{
				Endpoint:  getEnv("MINIO_ENDPOINT", ""),
				AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
				SecretKey: getEnv("MINIO_SECRET_KEY", ""),
				Bucket:    getEnv("MINIO_BUCKET", ""),
				UseSSL:    getEnvBool("MINIO_USE_SSL", false),
			},
		},
		Upload: UploadConfig{
			Folder:            getEnv("UPLOAD_FOLDER", "uploads"),
			MaxContentLength:  getEnvInt64("MAX_CONTENT_LENGTH", DefaultMaxContentLength),
			AllowedExtensions: getEnvList("ALLOWED_EXTENSIONS", DefaultAllowedExtensions),
		},
		Security: SecurityConfig{
			LockoutStore: strings.ToLower(getEnv("LOCKOUT_STORE", "memory")),
			RedisURL:     getEnv("REDIS_URL", ""),
			JWTSecret:    getEnv("JWT_SECRET_KEY", ""),
			JWTTTL:       time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Email:    getEnv("ADMIN_EMAIL", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		TrustedProxies: getEnvFields("TRUSTED_PROXIES"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil && i > 0 {
			return i
		}
	}
	return def
}

// getEnvList splits a comma separated value, lowercasing and dropping empty
// items and leading dots.
func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	out := make([]string, 0)
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(item)), ".")
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// getEnvFields splits a comma separated value as is, dropping empty items.
func getEnvFields(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
