package config

import (
	"os"
	"time"
)

// Config — конфигурация приложения. Значения по умолчанию задаются в New,
// переопределяются переменными окружения (ParseEnv) и флагами командной строки.
type Config struct {
	Address      string
	LogLevel     string
	DatabaseDSN  string
	RedisAddr    string
	StoreTimeout time.Duration
}

func New() *Config {
	return &Config{
		Address:      "localhost:8080",
		LogLevel:     "info",
		DatabaseDSN:  "",
		RedisAddr:    "",
		StoreTimeout: 3 * time.Second,
	}
}

func ParseEnv(config *Config) {
	if address := os.Getenv("SERVER_ADDRESS"); address != "" {
		config.Address = address
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		config.LogLevel = logLevel
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		config.DatabaseDSN = dsn
	}
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		config.RedisAddr = redisAddr
	}
	if timeout := os.Getenv("STORE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			config.StoreTimeout = d
		}
	}
}
