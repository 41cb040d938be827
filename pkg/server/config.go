package server

import (
	"fmt"
	"os"
	"time"
)

// DefaultConfig returns sensible defaults, overridable through the
// PRVSNR_STATUS_PORT environment variable.
func DefaultConfig() *Config {
	cfg := &Config{
		Address:         "",
		Port:            9008,
		RateLimit:       100,
		RateLimitBurst:  200,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}

	if portStr := os.Getenv("PRVSNR_STATUS_PORT"); portStr != "" {
		var port int
		if _, err := fmt.Sscanf(portStr, "%d", &port); err == nil {
			cfg.Port = port
		}
	}

	return cfg
}
