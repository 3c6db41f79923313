package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .aids.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Server is the base URL of the detection API, e.g. http://127.0.0.1:8000.
	Server string `yaml:"server" mapstructure:"server"`

	// PollInterval is how often the live view fetches capture status.
	PollInterval time.Duration `yaml:"poll_interval" mapstructure:"poll_interval"`

	// SettleDelay is how long to wait after a stop acknowledgment before
	// fetching the final results. The server finishes classifying the last
	// capture window during this gap.
	SettleDelay time.Duration `yaml:"settle_delay" mapstructure:"settle_delay"`

	// RequestTimeout bounds status and control requests. Uploads and
	// downloads are exempt and run until done or interrupted.
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`

	// NotifyLimit caps how many notifications the live view keeps on screen.
	NotifyLimit int `yaml:"notify_limit" mapstructure:"notify_limit"`

	// DownloadDir is where prediction CSVs are saved.
	DownloadDir string `yaml:"download_dir" mapstructure:"download_dir"`

	Tunnel TunnelConfig `yaml:"tunnel" mapstructure:"tunnel"`
}

// TunnelConfig describes an optional SSH tunnel to the sensor host. When
// Host is set, requests go through a local forward instead of hitting
// Server directly.
type TunnelConfig struct {
	// Host is an SSH destination: hostname, user@host, or ~/.ssh/config alias.
	// Empty disables tunneling.
	Host string `yaml:"host" mapstructure:"host"`

	// Remote is the API address from the sensor host's point of view.
	Remote string `yaml:"remote" mapstructure:"remote"`
}

// Enabled reports whether a tunnel should be opened.
func (t TunnelConfig) Enabled() bool {
	return t.Host != ""
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:        CurrentConfigVersion,
		Server:         "http://127.0.0.1:8000",
		PollInterval:   5 * time.Second,
		SettleDelay:    1500 * time.Millisecond,
		RequestTimeout: 30 * time.Second,
		NotifyLimit:    6,
		DownloadDir:    ".",
		Tunnel: TunnelConfig{
			Remote: "127.0.0.1:8000",
		},
	}
}
