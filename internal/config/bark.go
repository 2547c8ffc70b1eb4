package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	clierrors "github.com/ariel-frischer/tasknotify/internal/errors"
)

// BarkSettings holds the raw Bark push settings.
type BarkSettings struct {
	MachineName string `koanf:"machine_name" env:"CODEX_MACHINE_NAME" validate:"required"`
	Key         string `koanf:"bark_key" env:"CODEX_BARK_KEY" validate:"required"`
	BaseURL     string `koanf:"bark_base_url" env:"CODEX_BARK_BASE_URL" validate:"http_url"`
}

// BarkConfig is a validated Bark push configuration.
type BarkConfig struct {
	MachineName string
	BaseURL     string
	Key         string
	Timeout     time.Duration
}

// NewBarkConfig validates settings and returns the Bark configuration.
func NewBarkConfig(s BarkSettings, timeout time.Duration) (*BarkConfig, error) {
	s.MachineName = strings.TrimSpace(s.MachineName)
	s.Key = strings.TrimSpace(s.Key)
	s.BaseURL = strings.TrimSpace(s.BaseURL)
	if s.BaseURL == "" {
		s.BaseURL = DefaultBarkBaseURL
	}

	if err := checkSettings(s); err != nil {
		return nil, err
	}

	cfg := &BarkConfig{
		MachineName: s.MachineName,
		BaseURL:     s.BaseURL,
		Key:         s.Key,
		Timeout:     timeout,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Channel returns "bark".
func (c *BarkConfig) Channel() string { return ChannelBark }

// Device returns the machine name.
func (c *BarkConfig) Device() string { return c.MachineName }

// Validate checks that every field needed for delivery is usable.
func (c *BarkConfig) Validate() error {
	if c.MachineName == "" {
		return clierrors.MissingSetting(EnvMachineName)
	}
	if c.Key == "" {
		return clierrors.MissingSetting(EnvBarkKey)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return clierrors.InvalidSetting(EnvBarkBaseURL, c.BaseURL)
	}
	if c.Timeout <= 0 {
		return clierrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// TargetURL appends the percent-encoded device key to the base URL.
func (c *BarkConfig) TargetURL() string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(c.BaseURL, "/"), escapeSegment(c.Key))
}

// escapeSegment percent-encodes everything except RFC 3986 unreserved
// characters, so '/', '?', '#', '+' and friends cannot alter the route.
func escapeSegment(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Describe returns the request line of the push.
func (c *BarkConfig) Describe() []string {
	return []string{"POST " + c.TargetURL()}
}
