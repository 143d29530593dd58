package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ListenAddr      string        // ex: ":3333"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// GitHub backing repository
	GitHubToken string // personal access token, never read from the config file
	GitHubOwner string // repository owner
	GitHubRepo  string // repository name
	GitHubAPI   string // API base URL, overridable to point at a mock

	CacheTTL       time.Duration // bookmark cache staleness window (default 8h)
	RequestTimeout time.Duration // per-call timeout on upstream requests
	PerPage        int           // issues page size when listing
}

// fileConfig is the optional YAML config file shape. Env always wins
// over file values; the token is env-only.
type fileConfig struct {
	ListenAddr string `yaml:"listen_addr"`
	LogLevel   string `yaml:"log_level"`
	GitHub     struct {
		Owner string `yaml:"owner"`
		Repo  string `yaml:"repo"`
		API   string `yaml:"api"`
	} `yaml:"github"`
}

func Load() *Config {
	// Best effort: a missing .env just means the environment is already set.
	_ = godotenv.Load()

	var file fileConfig
	if path := os.Getenv("LINKTRACKER_CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			panic(fmt.Sprintf("❌ FATAL: Cannot read config file %s: %v", path, err))
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			panic(fmt.Sprintf("❌ FATAL: Cannot parse config file %s: %v", path, err))
		}
	}

	cfg := &Config{
		// Server settings
		ListenAddr:      getenv("LINKTRACKER_LISTEN_ADDR", fallback(file.ListenAddr, ":3333")),
		ShutdownTimeout: mustDuration("LINKTRACKER_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("LINKTRACKER_LOG_LEVEL", fallback(file.LogLevel, "info")),
		PrettyLog: mustBool("LINKTRACKER_PRETTY_LOG", true),

		// GitHub backing repository
		GitHubToken: requireEnv("GITHUB_TOKEN"),
		GitHubOwner: requireEnvOr("GITHUB_OWNER", file.GitHub.Owner),
		GitHubRepo:  requireEnvOr("GITHUB_REPO", file.GitHub.Repo),
		GitHubAPI:   getenv("GITHUB_API", fallback(file.GitHub.API, "https://api.github.com")),

		// Cache and upstream behavior
		CacheTTL:       mustDuration("LINKTRACKER_CACHE_TTL", 8*time.Hour),
		RequestTimeout: mustDuration("LINKTRACKER_REQUEST_TIMEOUT", 15*time.Second),
		PerPage:        getenvInt("LINKTRACKER_PER_PAGE", 100),
	}

	// Log config only in debug mode with the token redacted
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.GitHubToken = "***REDACTED***"
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func fallback(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

// requireEnvOr accepts a config-file value in place of the env var, but
// one of the two must be present.
func requireEnvOr(key, fileValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if fileValue != "" {
		return fileValue
	}
	panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
