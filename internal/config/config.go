package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Port            string
	UpstreamBaseURL string
	RedisAddress    string
	RedisPassword   string
	SessionKey      []byte
	SessionTTL      time.Duration
	DatabaseURL     string
	AllowedOrigins  []string
}

func Load() *Config {
	sessionKey := os.Getenv("SESSION_SIGNING_KEY")
	if sessionKey == "" {
		panic("SESSION_SIGNING_KEY environment variable is required")
	}

	upstream := os.Getenv("UPSTREAM_BASE_URL")
	if upstream == "" {
		upstream = "http://localhost:5000/api"
	}

	redisAddr := os.Getenv("REDIS_ADDRESS")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	ttl := 24 * time.Hour
	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			panic("SESSION_TTL is not a valid duration: " + err.Error())
		}
		ttl = parsed
	}

	origins := []string{"*"}
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		origins = strings.Split(raw, ",")
	}

	return &Config{
		Port:            port,
		UpstreamBaseURL: strings.TrimRight(upstream, "/"),
		RedisAddress:    redisAddr,
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		SessionKey:      []byte(sessionKey),
		SessionTTL:      ttl,
		DatabaseURL:     os.Getenv("DB_CONNECTION_STRING"),
		AllowedOrigins:  origins,
	}
}
