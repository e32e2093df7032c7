package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config menampung seluruh konfigurasi proses. Dibuat sekali di main lalu
// dioper eksplisit ke middleware/controller, bukan dibaca dari global.
type Config struct {
	Port string

	// Database
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBSSLMode  string

	// Auth
	JWTSecret string
	TokenTTL  time.Duration

	// Integrasi eksternal
	AnalysisBaseURL string

	// OSS (media storage)
	OSSEndpoint  string
	OSSKeyID     string
	OSSKeySecret string
	OSSBucket    string
}

// Load membaca .env (kalau ada) lalu membangun Config dari ENV.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
	}

	cfg := &Config{
		Port:            GetEnv("PORT", "5000"),
		DBUser:          GetEnv("DB_USER"),
		DBPassword:      GetEnv("DB_PASSWORD"),
		DBHost:          GetEnv("DB_HOST", "localhost"),
		DBPort:          GetEnv("DB_PORT", "5432"),
		DBName:          GetEnv("DB_NAME"),
		DBSSLMode:       GetEnv("DB_SSLMODE", "require"),
		JWTSecret:       GetEnv("JWT_SECRET"),
		TokenTTL:        envHours("JWT_TTL_HOURS", 7*24*time.Hour),
		AnalysisBaseURL: GetEnv("ANALYSIS_BASE_URL", "https://sih-theta-gules.vercel.app"),
		OSSEndpoint:     GetEnv("OSS_ENDPOINT"),
		OSSKeyID:        GetEnv("OSS_ACCESS_KEY_ID"),
		OSSKeySecret:    GetEnv("OSS_ACCESS_KEY_SECRET"),
		OSSBucket:       GetEnv("OSS_BUCKET"),
	}

	if cfg.JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	}
	return cfg
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func envHours(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Hour
		}
	}
	return def
}
