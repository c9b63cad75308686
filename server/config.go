package server

import (
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type apiConfig struct {
	BaseURL        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	TokenDB        string `json:"token_db"`
}

func (a apiConfig) Timeout() time.Duration {
	if a.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(a.TimeoutSeconds) * time.Second
}

type listenConfig struct {
	Port int `json:"port"`
}

type statusConfig struct {
	FeedURL       string `json:"feed_url"`
	PeriodMinutes int    `json:"period_minutes"`
	Keep          int    `json:"keep"`
}

func (s statusConfig) Period() time.Duration {
	if s.PeriodMinutes <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(s.PeriodMinutes) * time.Minute
}

type Config struct {
	API          apiConfig    `json:"api"`
	Server       listenConfig `json:"server"`
	Status       statusConfig `json:"status"`
	CacheSeconds int          `json:"cache_seconds"`
}

func (c Config) CacheTTL() time.Duration {
	if c.CacheSeconds <= 0 {
		return 0 // let the portal pick its default
	}
	return time.Duration(c.CacheSeconds) * time.Second
}

func ReadConfig(b []byte) (config Config, err error) {
	if uErr := json.Unmarshal(b, &config); uErr != nil {
		return config, uErr
	}
	return config, nil
}

// ApplyEnv overlays environment variables onto the file config.
// A .env file is honored when present so local runs don't need one
// exported variable per terminal.
func (c *Config) ApplyEnv() {
	godotenv.Load()

	if v := os.Getenv("FLEETBOARD_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("FLEETBOARD_TOKEN_DB"); v != "" {
		c.API.TokenDB = v
	}
	if v := os.Getenv("FLEETBOARD_STATUS_FEED"); v != "" {
		c.Status.FeedURL = v
	}
	if v := os.Getenv("FLEETBOARD_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
}
