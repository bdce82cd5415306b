package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort         string
	AppMode         string
	DBPath          string
	JWTSecret       string
	JWTExpiryHours  int
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3Endpoint      string
	S3PublicBase    string
	PresignTTLSec   int
	RedisHost       string
	RedisPort       string
	RedisPassword   string
	AuthRateLimit   int
	UploadRateLimit int
}

func LoadConfig() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		AppPort:         getEnv("APP_PORT", "8080"),
		AppMode:         getEnv("APP_MODE", "debug"),
		DBPath:          getEnv("DB_PATH", "snapvault.db"),
		JWTSecret:       getEnv("JWT_SECRET", "change-me"),
		JWTExpiryHours:  getEnvAsInt("JWT_EXPIRY_HOURS", 24),
		S3Region:        getEnv("S3_REGION", "us-east-1"),
		S3Bucket:        getEnv("S3_BUCKET", "snapvault-media"),
		S3AccessKey:     getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:     getEnv("S3_SECRET_KEY", ""),
		S3Endpoint:      getEnv("S3_ENDPOINT", ""),
		S3PublicBase:    getEnv("S3_PUBLIC_BASE", ""),
		PresignTTLSec:   getEnvAsInt("PRESIGN_TTL_SEC", 3600),
		RedisHost:       getEnv("REDIS_HOST", "localhost"),
		RedisPort:       getEnv("REDIS_PORT", "6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		AuthRateLimit:   getEnvAsInt("AUTH_RATE_LIMIT", 5),
		UploadRateLimit: getEnvAsInt("UPLOAD_RATE_LIMIT", 30),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
