package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL  = "http://localhost:8080/api"
	DefaultTimeout = 12 * time.Second
)

type Config struct {
	APIURL    string
	Timeout   time.Duration
	Debug     bool
	StartPage string
}

// Load reads the environment, after merging a .env file from the working
// directory when one exists.
func Load() *Config {
	_ = godotenv.Load()

	timeout, err := time.ParseDuration(os.Getenv("EVENTIFY_TIMEOUT"))
	if err != nil || timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Config{
		APIURL:    strings.TrimRight(getString("EVENTIFY_API_URL", DefaultAPIURL), "/"),
		Timeout:   timeout,
		Debug:     getBool("EVENTIFY_DEBUG"),
		StartPage: strings.TrimSpace(os.Getenv("EVENTIFY_PAGE")),
	}
}

func getString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "", "0", "false", "no", "off":
		return false
	default:
		return true
	}
}
