package config

import (
	"strconv"

	"github.com/joho/godotenv"
	"os"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	NATS     NATSConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Log      LogConfig
	Storage  StorageConfig
	Review   ReviewConfig
	Report   ReportConfig
}

type AppConfig struct {
	Name string
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NATSConfig for the board event stream (JetStream)
type NATSConfig struct {
	URL string // nats://localhost:4222
}

// RedisConfig backs the review fail-cycle counters
type RedisConfig struct {
	URL      string // redis://localhost:6379
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
}

type LogConfig struct {
	Level      string // debug, info, warn, error
	Format     string // json, text
	Output     string // stdout, file, both
	FilePath   string // logs/app.log
	MaxSize    int    // MB
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// StorageConfig for image custom-field payloads (MinIO / S3-compatible)
type StorageConfig struct {
	S3            S3Config
	MaxUploadSize int64 // bytes
}

type S3Config struct {
	Endpoint  string // minio:9000 or xxx.r2.cloudflarestorage.com
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
	PublicURL string // public base URL (optional)
}

// ReviewConfig tunes the review workflow.
// MaxFailCycles limits how many times a task may bounce Review -> previous
// column before further fail verdicts are rejected. 0 disables the limit.
type ReviewConfig struct {
	MaxFailCycles  int
	FailCycleHours int // sliding window for the counter
}

// ReportConfig for the daily snapshot job
type ReportConfig struct {
	Enabled  bool
	CronExpr string // gocron cron expression
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		// no .env file is fine, plain environment variables still apply
	}

	logMaxSize, _ := strconv.Atoi(getEnv("LOG_MAX_SIZE", "100"))
	logMaxBackups, _ := strconv.Atoi(getEnv("LOG_MAX_BACKUPS", "5"))
	logMaxAge, _ := strconv.Atoi(getEnv("LOG_MAX_AGE", "30"))
	logCompress := getEnv("LOG_COMPRESS", "true") == "true"

	maxUploadSize, _ := strconv.ParseInt(getEnv("STORAGE_MAX_UPLOAD_SIZE", "10485760"), 10, 64) // 10MB default
	s3UseSSL := getEnv("S3_USE_SSL", "false") == "true"

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	maxFailCycles, _ := strconv.Atoi(getEnv("REVIEW_MAX_FAIL_CYCLES", "0")) // 0 = unlimited
	failCycleHours, _ := strconv.Atoi(getEnv("REVIEW_FAIL_CYCLE_HOURS", "24"))

	reportEnabled := getEnv("REPORT_JOB_ENABLED", "true") == "true"

	config := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "Taskboard API"),
			Port: getEnv("APP_PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "taskboard"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		NATS: NATSConfig{
			URL: getEnv("NATS_URL", "nats://localhost:4222"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
		},
		Log: LogConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			Output:     getEnv("LOG_OUTPUT", "both"),
			FilePath:   getEnv("LOG_FILE_PATH", "logs/app.log"),
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAge,
			Compress:   logCompress,
		},
		Storage: StorageConfig{
			MaxUploadSize: maxUploadSize,
			S3: S3Config{
				Endpoint:  getEnv("S3_ENDPOINT", "localhost:9000"),
				AccessKey: getEnv("S3_ACCESS_KEY", ""),
				SecretKey: getEnv("S3_SECRET_KEY", ""),
				Bucket:    getEnv("S3_BUCKET", "taskboard-fields"),
				UseSSL:    s3UseSSL,
				Region:    getEnv("S3_REGION", "auto"),
				PublicURL: getEnv("S3_PUBLIC_URL", ""),
			},
		},
		Review: ReviewConfig{
			MaxFailCycles:  maxFailCycles,
			FailCycleHours: failCycleHours,
		},
		Report: ReportConfig{
			Enabled:  reportEnabled,
			CronExpr: getEnv("REPORT_CRON", "0 0 * * *"), // midnight UTC
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
