package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type Config struct {
	Port           string
	BackendURL     string
	BackendTimeout time.Duration
	DashboardURL   string
	SessionKey     string
	LogLevel       string
	DB             DBConfig
}

// LoadEnv подгружает .env, если он есть. Уже заданные переменные не перезаписываются.
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Ошибка чтения .env: %v\n", err)
	}
}

func LoadConfig() Config {
	// Для локальной разработки - значения по умолчанию
	return Config{
		Port:           getEnv("PORT", "8080"),
		BackendURL:     getEnv("BACKEND_URL", "http://localhost:5000"),
		BackendTimeout: getDuration("BACKEND_TIMEOUT", 0),
		DashboardURL:   getEnv("DASHBOARD_URL", ""),
		SessionKey:     getEnv("SESSION_KEY", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "1234"),
			DBName:   getEnv("DB_NAME", "eduportal"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
	}
}

func (c DBConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + c.Port +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getDuration принимает "5s", "1m" или просто число секунд
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Printf("Некорректное значение %s=%q, используется %s\n", key, value, defaultValue)
	return defaultValue
}
