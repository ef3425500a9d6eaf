package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	StoreFile     = "file"
	StoreMemory   = "memory"
	StoreBadger   = "badger"
	StorePostgres = "postgres"
)

type Config struct {
	Addr            string
	Store           string
	DBPath          string
	BadgerDir       string
	PostgresDSN     string
	MaxRaceRunners  int
	MaxRaceDistance float64
	MaxRaceEntries  int
	LogLevel        string
	LogFormat       string
	DotEnvLoaded    bool
}

// LoadConfig reads .env when present and then the process environment.
func LoadConfig() (Config, error) {
	loaded := godotenv.Load() == nil
	cfg, err := configFromEnv(os.Getenv)
	cfg.DotEnvLoaded = loaded
	return cfg, err
}

func configFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Addr:            envOr(getenv, "ADDR", ":3003"),
		Store:           envOr(getenv, "STORE", StoreFile),
		DBPath:          envOr(getenv, "DB_PATH", DefaultDBPath),
		BadgerDir:       envOr(getenv, "BADGER_DIR", "./binaries/badgerdb"),
		PostgresDSN:     getenv("POSTGRES_DSN"),
		MaxRaceRunners:  1000,
		MaxRaceDistance: 100000,
		MaxRaceEntries:  1000000,
		LogLevel:        envOr(getenv, "LOG_LEVEL", "info"),
		LogFormat:       envOr(getenv, "LOG_FORMAT", "json"),
	}

	if v := getenv("RACE_MAX_RUNNERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid RACE_MAX_RUNNERS %q", v)
		}
		cfg.MaxRaceRunners = n
	}
	if v := getenv("RACE_MAX_DISTANCE"); v != "" {
		d, err := strconv.ParseFloat(v, 64)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid RACE_MAX_DISTANCE %q", v)
		}
		cfg.MaxRaceDistance = d
	}

	if v := getenv("RACE_MAX_HISTORY_ENTRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid RACE_MAX_HISTORY_ENTRIES %q", v)
		}
		cfg.MaxRaceEntries = n
	}

	switch cfg.Store {
	case StoreFile, StoreMemory, StoreBadger:
	case StorePostgres:
		if cfg.PostgresDSN == "" {
			return Config{}, fmt.Errorf("POSTGRES_DSN is not set")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORE %q", cfg.Store)
	}
	return cfg, nil
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}
