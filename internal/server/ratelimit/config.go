package ratelimit

import (
	"strings"
	"time"

	"github.com/jonathan/resume-intake/internal/config"
)

// DefaultCleanupInterval is how often idle buckets are swept.
const DefaultCleanupInterval = 5 * time.Minute

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// FromConfig builds the limiter configuration from the service configuration.
// The configured limit applies to read endpoints; the scoring and parsing
// endpoints get the stricter DefaultEndpointConfigs.
func FromConfig(cfg config.RateLimit) *Config {
	if !cfg.Enabled {
		return &Config{Enabled: false}
	}

	whitelist := make(map[string]bool, len(cfg.Whitelist))
	for _, ip := range cfg.Whitelist {
		if ip = strings.TrimSpace(ip); ip != "" {
			whitelist[ip] = true
		}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    cfg.Limit,
		DefaultWindow:   cfg.Window,
		DefaultBurst:    cfg.Burst,
		CleanupInterval: DefaultCleanupInterval,
		Whitelist:       whitelist,
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Model-backed operations
		{Path: "/v1/resumes/score", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/v1/resumes/parse", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},

		// Read operations use the default limit; /health is unlimited in the matcher.
	}
}
