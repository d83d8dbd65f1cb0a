package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// Base URLs mirror the two origins the dashboard has always talked to.
	productionAPI = "https://ug-gnfs-backend.vercel.app"
	localAPI      = "http://localhost:8080"
)

// Config holds all service configuration.
type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Poll     PollConfig
	State    StateConfig
	Archive  ArchiveConfig
}

type ServerConfig struct {
	Addr        string
	Environment string
}

type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

type PollConfig struct {
	Interval time.Duration
	FeedCap  int
}

type StateConfig struct {
	Dir string
}

type ArchiveConfig struct {
	// DSN enables the optional Postgres notification archive when set.
	DSN string
}

// Load reads configuration from the environment, after loading a .env file
// when one is present.
func Load() Config {
	_ = godotenv.Load()

	env := getEnv("DASHBOARD_ENV", "development")
	baseURL := os.Getenv("DASHBOARD_API_URL")
	if baseURL == "" {
		if strings.EqualFold(env, "production") {
			baseURL = productionAPI
		} else {
			baseURL = localAPI
		}
	}

	return Config{
		Server: ServerConfig{
			Addr:        ":" + getEnv("PORT", "3000"),
			Environment: env,
		},
		Upstream: UpstreamConfig{
			BaseURL: strings.TrimRight(baseURL, "/"),
			Timeout: getDuration("DASHBOARD_API_TIMEOUT", 15*time.Second),
		},
		Poll: PollConfig{
			Interval: getDuration("DASHBOARD_POLL_INTERVAL", 30*time.Second),
			FeedCap:  getInt("DASHBOARD_FEED_CAP", 200),
		},
		State: StateConfig{
			Dir: getEnv("DASHBOARD_STATE_DIR", ".dashboard-state"),
		},
		Archive: ArchiveConfig{
			DSN: os.Getenv("DASHBOARD_PG_DSN"),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
