package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort string
	Debug      bool

	// Persistence
	StorageDriver string // memory, file, sqlite, postgres, mysql, redis, s3
	StorageKey    string
	DataDir       string
	DatabasePath  string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	S3Endpoint    string
	S3Bucket      string
	S3Region      string
	S3AccessKey   string
	S3SecretKey   string

	// Notifications
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string

	TrialDays      int
	AllowedOrigins []string
	TrustProxy     bool
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is merged in first without
// overriding variables that are already set.
func Load() *Config {
	loadDotEnv(".env")

	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		Debug:          getEnvBool("DEBUG", false),
		StorageDriver:  strings.ToLower(getEnv("STORAGE_DRIVER", "sqlite")),
		StorageKey:     getEnv("STORAGE_KEY", "rewardsprint-storage"),
		DataDir:        getEnv("DATA_DIR", "./data"),
		DatabasePath:   getEnv("DB_PATH", "./rewardsprint.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		S3Endpoint:     getEnv("S3_ENDPOINT", ""),
		S3Bucket:       getEnv("S3_BUCKET", ""),
		S3Region:       getEnv("S3_REGION", "auto"),
		S3AccessKey:    getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:    getEnv("S3_SECRET_KEY", ""),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail:   getEnv("SES_FROM_EMAIL", ""),
		SESFromName:    getEnv("SES_FROM_NAME", "RewardSprint"),
		AppBaseURL:     getEnv("APP_BASE_URL", "http://localhost:8080"),
		TrialDays:      getEnvInt("TRIAL_DAYS", 30),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		TrustProxy:     getEnvBool("TRUST_PROXY", false),
	}
}

// loadDotEnv copies values from a dotenv file into the environment
func loadDotEnv(path string) {
	envMap, err := godotenv.Read(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: failed to read %s: %v", path, err)
		}
		return
	}
	for k, v := range envMap {
		if os.Getenv(k) == "" {
			os.Setenv(k, v)
		}
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
