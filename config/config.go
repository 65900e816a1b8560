package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/thansetan/kalender/helper"
)

type Config struct {
	Port         string
	DefaultYear  int
	TemplatesDir string
	// RateLimit is the number of /api requests a client may make per minute.
	RateLimit uint64
	CacheSize int
}

// Load reads the given .env files, skipping missing ones, and then the
// environment. Variables already set in the environment win.
func Load(files ...string) (Config, error) {
	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", file, err)
		}
	}
	return fromEnv(os.Getenv, time.Now())
}

func fromEnv(getenv func(string) string, now time.Time) (Config, error) {
	cfg := Config{
		Port:         getenv("PORT"),
		DefaultYear:  now.Year(),
		TemplatesDir: getenv("KALENDER_TEMPLATES_DIR"),
		RateLimit:    60,
		CacheSize:    256,
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if v := getenv("KALENDER_YEAR"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("KALENDER_YEAR: %w", err)
		}
		cfg.DefaultYear = year
	}
	if err := helper.ValidateYear(cfg.DefaultYear); err != nil {
		return Config{}, fmt.Errorf("default year: %w", err)
	}

	if v := getenv("KALENDER_RATE_LIMIT"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("KALENDER_RATE_LIMIT: %w", err)
		}
		cfg.RateLimit = n
	}
	if v := getenv("KALENDER_CACHE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("KALENDER_CACHE_SIZE: %w", err)
		}
		if n < 1 {
			return Config{}, fmt.Errorf("KALENDER_CACHE_SIZE must be positive, got %d", n)
		}
		cfg.CacheSize = n
	}
	return cfg, nil
}
