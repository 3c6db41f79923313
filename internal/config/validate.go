package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Mehak261124/AI-IDS/internal/errors"
)

// MinPollInterval is the floor for poll_interval. Anything faster just
// hammers the server without the capture window producing new flows.
const MinPollInterval = 500 * time.Millisecond

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New(errors.ErrConfig,
			"Config is nil",
			"This is unexpected - try reloading the configuration.")
	}

	// Check version
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but aids only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Grab the latest aids: https://github.com/Mehak261124/AI-IDS/releases")
	}

	if err := validateServer(cfg.Server); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'server' setting in your .aids.yaml.")
	}

	if err := validateTiming(cfg); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the timing settings in your .aids.yaml.")
	}

	if cfg.NotifyLimit < 1 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("notify_limit needs to be at least 1 (got %d)", cfg.NotifyLimit),
			"Set notify_limit to a small positive number, like 6.")
	}

	if err := validateTunnel(cfg.Tunnel); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, err.Error(), "Check the 'tunnel' section in your .aids.yaml.")
	}

	return nil
}

// validateServer checks that the server setting is a usable HTTP base URL.
func validateServer(server string) error {
	if strings.TrimSpace(server) == "" {
		return fmt.Errorf("server is empty - aids needs to know where the detection API lives")
	}

	u, err := url.Parse(server)
	if err != nil {
		return fmt.Errorf("server '%s' isn't a valid URL", server)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server '%s' needs an http:// or https:// scheme", server)
	}

	if u.Host == "" {
		return fmt.Errorf("server '%s' is missing a host", server)
	}

	return nil
}

// validateTiming checks the interval and timeout settings.
func validateTiming(cfg *Config) error {
	if cfg.PollInterval < MinPollInterval {
		return fmt.Errorf("poll_interval %v is too aggressive - use %v or slower", cfg.PollInterval, MinPollInterval)
	}
	if cfg.SettleDelay < 0 {
		return fmt.Errorf("settle_delay can't be negative - that doesn't make sense")
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout needs to be positive (got %v)", cfg.RequestTimeout)
	}
	return nil
}

// validateTunnel checks the tunnel section. Only meaningful when a host is set.
func validateTunnel(t TunnelConfig) error {
	if !t.Enabled() {
		return nil
	}

	if strings.TrimSpace(t.Remote) == "" {
		return fmt.Errorf("tunnel.remote is empty - set the API address as seen from '%s', like 127.0.0.1:8000", t.Host)
	}

	if !strings.Contains(t.Remote, ":") {
		return fmt.Errorf("tunnel.remote '%s' is missing a port - use host:port, like 127.0.0.1:8000", t.Remote)
	}

	return nil
}
