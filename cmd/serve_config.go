package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ServerConfig holds the settings of the HTTP server.
type ServerConfig struct {
	Addr      string
	CacheSize int
}

const (
	defaultServerAddr      = ":8080"
	defaultServerCacheSize = 128
)

// LoadServerConfig reads EVAC_ADDR and EVAC_CACHE_SIZE from the environment,
// after loading a .env file from the working directory when one exists.
func LoadServerConfig() (*ServerConfig, error) {
	_ = godotenv.Load()

	cfg := &ServerConfig{
		Addr:      defaultServerAddr,
		CacheSize: defaultServerCacheSize,
	}
	if addr := strings.TrimSpace(os.Getenv("EVAC_ADDR")); addr != "" {
		if !strings.Contains(addr, ":") {
			addr = ":" + addr
		}
		cfg.Addr = addr
	}
	if raw := strings.TrimSpace(os.Getenv("EVAC_CACHE_SIZE")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("EVAC_CACHE_SIZE must be a positive integer, got %q", raw)
		}
		cfg.CacheSize = n
	}
	return cfg, nil
}
