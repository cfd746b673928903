package config

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// AppConfig holds environment driven configuration values.
// Sensitive data should never have defaults inside code and must be provided
// via the config file or the environment.
type AppConfig struct {
	AppPort   string
	JWTSecret string

	DatabaseURI string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	// Points economy
	CheckinRewardPoints int
	UploadRewardPoints  int

	// Registration is restricted to this mail domain.
	EmailDomain string

	RateLimitPerMinute int
	AllowedOrigins     []string

	// Gin framework configuration
	GinMode string
	GinPath string

	// Local file storage for uploaded resources
	UploadDir     string
	UploadBaseURL string

	// SMTP for email verification
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	SMTPTLS      bool

	// Redis for caching/verification
	RedisHost     string
	RedisPort     int
	RedisDB       int
	RedisPassword string

	// Logging configuration
	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool
}

var cfg AppConfig
var loaded bool

// Load loads the application configuration. Precedence:
// config/config.json -> defaults -> environment variable overrides.
// It should be called once during boot.
func Load() AppConfig {
	if loaded {
		return cfg
	}

	_ = loadJSONConfig(filepath.Join("config", "config.json"), &cfg)
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET must be set in environment variables")
	}

	loaded = true
	return cfg
}

// Get returns the cached configuration, loading it if necessary.
func Get() AppConfig {
	if !loaded {
		return Load()
	}
	return cfg
}

// loadJSONConfig reads a JSON file into out if present. Returns error only for
// invalid JSON; a missing file is silently ignored.
func loadJSONConfig(path string, out *AppConfig) error {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(out)
}

func applyDefaults(c *AppConfig) {
	setStr(&c.AppPort, "8080")
	setStr(&c.DBHost, "127.0.0.1")
	setStr(&c.DBPort, "3306")
	setStr(&c.DBUser, "root")
	setStr(&c.DBName, "ndhulearn")
	setInt(&c.CheckinRewardPoints, 10)
	setInt(&c.UploadRewardPoints, 20)
	setStr(&c.EmailDomain, "gms.ndhu.edu.tw")
	setInt(&c.RateLimitPerMinute, 60)
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	setStr(&c.GinMode, "release")
	setStr(&c.GinPath, "logs/gin.log")
	setStr(&c.UploadDir, "static/uploads")
	setStr(&c.UploadBaseURL, "/static/uploads")
	setInt(&c.SMTPPort, 587)
	setStr(&c.RedisHost, "127.0.0.1")
	setInt(&c.RedisPort, 6379)
	setStr(&c.LogLevel, "info")
	setStr(&c.LogPath, "logs/app.log")
	setInt(&c.LogMaxSizeMB, 100)
	setInt(&c.LogMaxBackups, 3)
	setInt(&c.LogMaxAgeDays, 7)
}

func applyEnvOverrides(c *AppConfig) {
	envStr(&c.AppPort, "APP_PORT")
	envStr(&c.JWTSecret, "JWT_SECRET")
	envStr(&c.DatabaseURI, "DATABASE_URI")
	envStr(&c.DBHost, "DB_HOST")
	envStr(&c.DBPort, "DB_PORT")
	envStr(&c.DBUser, "DB_USER")
	envStr(&c.DBPassword, "DB_PASSWORD")
	envStr(&c.DBName, "DB_NAME")
	envInt(&c.CheckinRewardPoints, "CHECKIN_REWARD_POINTS")
	envInt(&c.UploadRewardPoints, "UPLOAD_REWARD_POINTS")
	envStr(&c.EmailDomain, "EMAIL_DOMAIN")
	envInt(&c.RateLimitPerMinute, "RATE_LIMIT_PER_MINUTE")
	envCSV(&c.AllowedOrigins, "ALLOWED_ORIGINS")
	envStr(&c.GinMode, "GIN_MODE")
	envStr(&c.GinPath, "GIN_LOG_PATH")
	envStr(&c.UploadDir, "UPLOAD_DIR")
	envStr(&c.UploadBaseURL, "UPLOAD_BASE_URL")
	envStr(&c.SMTPHost, "SMTP_HOST")
	envInt(&c.SMTPPort, "SMTP_PORT")
	envStr(&c.SMTPUsername, "SMTP_USERNAME")
	envStr(&c.SMTPPassword, "SMTP_PASSWORD")
	envStr(&c.SMTPFrom, "SMTP_FROM")
	envStr(&c.SMTPFromName, "SMTP_FROM_NAME")
	envBool(&c.SMTPTLS, "SMTP_TLS")
	envStr(&c.RedisHost, "REDIS_HOST")
	envInt(&c.RedisPort, "REDIS_PORT")
	envInt(&c.RedisDB, "REDIS_DB")
	envStr(&c.RedisPassword, "REDIS_PASSWORD")
	envStr(&c.LogLevel, "LOG_LEVEL")
	envStr(&c.LogPath, "LOG_PATH")
	envInt(&c.LogMaxSizeMB, "LOG_MAX_SIZE_MB")
	envInt(&c.LogMaxBackups, "LOG_MAX_BACKUPS")
	envInt(&c.LogMaxAgeDays, "LOG_MAX_AGE_DAYS")
	envBool(&c.LogCompress, "LOG_COMPRESS")
}

func setStr(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

func setInt(dst *int, def int) {
	if *dst == 0 {
		*dst = def
	}
}

func envStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func envCSV(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			*dst = out
		}
	}
}
