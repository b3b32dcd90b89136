// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Backend selects where rooms are stored and views are fanned out.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendRedis  Backend = "redis"
)

// Config is the server's runtime configuration.
type Config struct {
	HTTPAddr string
	Backend  Backend

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// DatabaseURL enables the match archive when set.
	DatabaseURL string

	LockTTL      time.Duration
	LockAttempts int
	LockBackoff  time.Duration
	OpTTL        time.Duration

	// AllowedOrigins are host patterns, such as "*.example.com", whose pages
	// may open view streams. Same-host origins are always accepted.
	AllowedOrigins []string

	BotPlayouts int
	LogLevel    logrus.Level
}

// Default returns the configuration used when no variable is set.
func Default() Config {
	return Config{
		HTTPAddr:     ":8080",
		Backend:      BackendMemory,
		RedisAddr:    "localhost:6379",
		LockTTL:      5 * time.Second,
		LockAttempts: 3,
		LockBackoff:  25 * time.Millisecond,
		OpTTL:        60 * time.Second,
		BotPlayouts:  64,
		LogLevel:     logrus.InfoLevel,
	}
}

// Load reads a .env file from the working directory if there is one, then
// overlays the process environment on Default.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (Config, error) {
	c := Default()
	var err error

	c.HTTPAddr = str("HTTP_ADDR", c.HTTPAddr)
	c.Backend = Backend(str("STORE_BACKEND", string(c.Backend)))
	if c.Backend != BackendMemory && c.Backend != BackendRedis {
		return Config{}, fmt.Errorf("STORE_BACKEND: unknown backend %q", c.Backend)
	}
	c.RedisAddr = str("REDIS_ADDR", c.RedisAddr)
	c.RedisPassword = str("REDIS_PASSWORD", "")
	c.DatabaseURL = str("DATABASE_URL", "")
	c.AllowedOrigins = list("ALLOWED_ORIGINS")

	if c.RedisDB, err = integer("REDIS_DB", c.RedisDB); err != nil {
		return Config{}, err
	}
	if c.BotPlayouts, err = integer("BOT_PLAYOUTS", c.BotPlayouts); err != nil {
		return Config{}, err
	}
	if c.LockAttempts, err = integer("LOCK_ATTEMPTS", c.LockAttempts); err != nil {
		return Config{}, err
	}
	if c.LockTTL, err = duration("LOCK_TTL", c.LockTTL); err != nil {
		return Config{}, err
	}
	if c.LockBackoff, err = duration("LOCK_BACKOFF", c.LockBackoff); err != nil {
		return Config{}, err
	}
	if c.OpTTL, err = duration("OP_TTL", c.OpTTL); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if c.LogLevel, err = logrus.ParseLevel(v); err != nil {
			return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
		}
	}

	if c.LockTTL <= 0 || c.OpTTL <= 0 {
		return Config{}, errors.New("LOCK_TTL and OP_TTL must be positive")
	}
	if c.LockAttempts < 1 || c.BotPlayouts < 1 {
		return Config{}, errors.New("LOCK_ATTEMPTS and BOT_PLAYOUTS must be at least 1")
	}
	return c, nil
}

func str(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

// list splits a comma-separated variable, dropping empty items.
func list(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func integer(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// duration accepts Go durations ("5s") or a bare number of seconds.
func duration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
