package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr       string
	PostgresDSN    string
	RedisAddr      string
	KafkaBrokers   []string
	PrivateKeyPath string
	PublicKeyPath  string
	TokenTTL       time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Warn("failed to load .env file, using default values", "error", err)
	}

	cfg := &Config{
		HTTPAddr:       os.Getenv("HTTP_ADDR"),
		PostgresDSN:    os.Getenv("POSTGRES_DSN"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		KafkaBrokers:   []string{os.Getenv("KAFKA_BROKER")},
		PrivateKeyPath: os.Getenv("JWT_PRIVATE_KEY_PATH"),
		PublicKeyPath:  os.Getenv("JWT_PUBLIC_KEY_PATH"),
		TokenTTL:       15 * time.Minute,
	}

	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.PostgresDSN == "" {
		cfg.PostgresDSN = "host=localhost user=postgres password=postgres dbname=billing sslmode=disable"
	}
	if cfg.RedisAddr == "" {
		cfg.RedisAddr = "localhost:6379"
	}
	if len(cfg.KafkaBrokers) == 1 && cfg.KafkaBrokers[0] == "" {
		cfg.KafkaBrokers = []string{"localhost:9092"}
	}
	if cfg.PrivateKeyPath == "" {
		cfg.PrivateKeyPath = "keystore/private.pem"
	}
	if cfg.PublicKeyPath == "" {
		cfg.PublicKeyPath = "keystore/public.pem"
	}
	if minutes := os.Getenv("JWT_EXPIRES_MINUTES"); minutes != "" {
		if m, err := strconv.Atoi(minutes); err == nil && m > 0 {
			cfg.TokenTTL = time.Duration(m) * time.Minute
		} else {
			slog.Warn("invalid JWT_EXPIRES_MINUTES, keeping default", "value", minutes)
		}
	}

	slog.Info("config loaded",
		"http_addr", cfg.HTTPAddr,
		"redis_addr", cfg.RedisAddr,
		"kafka_brokers", cfg.KafkaBrokers,
		"token_ttl", cfg.TokenTTL)
	return cfg
}
