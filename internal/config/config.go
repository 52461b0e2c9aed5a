package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config aggregates everything the service needs.
type Config struct {
	Server   ServerConfig
	Assets   AssetsConfig
	Fixtures FixturesConfig
	Relay    RelayConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	relay, err := loadRelayConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:   server,
		Assets:   loadAssetsConfig(),
		Fixtures: loadFixturesConfig(),
		Relay:    relay,
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Allow passing ":8080" or "127.0.0.1:8080" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AssetsConfig describes where the site is deployed, so asset references
// keep working under a non-root base path.
type AssetsConfig struct {
	BasePath string
}

func loadAssetsConfig() AssetsConfig {
	return AssetsConfig{BasePath: getEnvOrDefault("BASE_PATH", "/")}
}

// FixturesConfig locates the static fixture tree (channel and member
// JSON, images, thumbnails). When URL is set the fixtures are fetched
// from that deployment instead of the local directory.
type FixturesConfig struct {
	Dir string
	URL string
}

func loadFixturesConfig() FixturesConfig {
	return FixturesConfig{
		Dir: getEnvOrDefault("FIXTURES_DIR", "web"),
		URL: strings.TrimSpace(os.Getenv("FIXTURES_URL")),
	}
}

// RelayConfig describes the contact relay: the optional downstream Slack
// webhook and the per-IP submission rate limit.
type RelayConfig struct {
	SlackWebhookURL string
	RPS             float64
	Burst           int
}

func loadRelayConfig() (RelayConfig, error) {
	rps, err := parseOptionalFloatEnv("CONTACT_RATE_RPS")
	if err != nil {
		return RelayConfig{}, err
	}
	burst, err := parseOptionalIntEnv("CONTACT_RATE_BURST")
	if err != nil {
		return RelayConfig{}, err
	}

	cfg := RelayConfig{
		SlackWebhookURL: strings.TrimSpace(os.Getenv("SLACK_WEBHOOK_URL")),
		RPS:             1,
		Burst:           5,
	}
	if rps != nil {
		cfg.RPS = *rps
	}
	if burst != nil {
		cfg.Burst = *burst
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
