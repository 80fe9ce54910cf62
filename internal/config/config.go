package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config アプリケーション設定
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Session  SessionConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Log      LogConfig
}

// ServerConfig サーバー設定
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig データベース設定
type DatabaseConfig struct {
	Driver   string // mysql / postgres / sqlite
	Host     string
	Port     string
	Username string
	Password string
	DBName   string // sqliteの場合はファイルパス
	SSLMode  string
	LogLevel string
}

// AuthConfig 認証設定
type AuthConfig struct {
	JWTSecret   string
	TokenExpiry time.Duration
	BcryptCost  int
}

// SessionConfig セッションCookie設定
type SessionConfig struct {
	SecretKey  string
	CookieName string
	MaxAge     int
	Secure     bool
}

// RedisConfig Redis設定（トークン失効リスト用）
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// StorageConfig 画像ストレージ設定
type StorageConfig struct {
	Provider      string // none / cloudinary / s3
	MaxUploadSize int64
	AllowedTypes  []string
	Cloudinary    CloudinaryConfig
	S3            S3Config
}

// CloudinaryConfig Cloudinary設定
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// S3Config S3設定
type S3Config struct {
	Region   string
	Bucket   string
	Prefix   string
	Endpoint string
}

// LogConfig ログ設定
type LogConfig struct {
	Level  string
	Format string // text / json
}

// Load 環境変数から設定をロード
func Load() (*Config, error) {
	// .env ファイルをロード (存在すれば)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(getEnvAsInt("SERVER_READ_TIMEOUT", 10)) * time.Second,
			WriteTimeout: time.Duration(getEnvAsInt("SERVER_WRITE_TIMEOUT", 10)) * time.Second,
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "mysql"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			Username: getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "warbler"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			LogLevel: getEnv("DB_LOG_LEVEL", "warn"),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET", "your-secret-key"),
			TokenExpiry: time.Duration(getEnvAsInt("TOKEN_EXPIRY", 24)) * time.Hour,
			BcryptCost:  getEnvAsInt("BCRYPT_COST", 10),
		},
		Session: SessionConfig{
			SecretKey:  getEnv("SECRET_KEY", "it's a secret"),
			CookieName: getEnv("SESSION_COOKIE_NAME", "warbler_session"),
			MaxAge:     getEnvAsInt("SESSION_MAX_AGE", 86400*7),
			Secure:     getEnvAsBool("SESSION_SECURE", false),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Provider:      getEnv("STORAGE_PROVIDER", "none"),
			MaxUploadSize: int64(getEnvAsInt("MAX_UPLOAD_SIZE", 5)) * 1024 * 1024, // MB to Bytes
			AllowedTypes:  []string{".png", ".jpg", ".jpeg", ".gif", ".webp"},
			Cloudinary: CloudinaryConfig{
				CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
				APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
				APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
				Folder:    getEnv("CLOUDINARY_FOLDER", "warbler"),
			},
			S3: S3Config{
				Region:   getEnv("AWS_REGION", "ap-northeast-1"),
				Bucket:   getEnv("S3_BUCKET", ""),
				Prefix:   getEnv("S3_PREFIX", "images"),
				Endpoint: getEnv("S3_ENDPOINT", ""),
			},
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	return config, nil
}

// getEnv 環境変数を取得、存在しない場合はデフォルト値を返す
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt 環境変数を整数として取得
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool 環境変数をboolとして取得
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
