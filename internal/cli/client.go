package cli

import (
	"github.com/Mehak261124/AI-IDS/internal/api"
	"github.com/Mehak261124/AI-IDS/internal/config"
	"github.com/Mehak261124/AI-IDS/internal/logger"
	"github.com/Mehak261124/AI-IDS/pkg/tunnel"
)

// loadConfig resolves the effective configuration: the --config flag wins,
// then .aids.yaml discovery, then defaults. The --server flag overrides
// whatever was loaded.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error

	if configFlag != "" {
		cfg, err = config.Load(configFlag)
	} else {
		cfg, err = config.LoadOrDefault()
	}
	if err != nil {
		return nil, err
	}

	if serverFlag != "" {
		cfg.Server = serverFlag
	}
	return cfg, nil
}

// newClient builds the API client from config, opening the SSH tunnel
// first when one is configured. The returned cleanup closes the tunnel
// and is safe to call when no tunnel was opened.
func newClient(cfg *config.Config) (*api.Client, func(), error) {
	base := cfg.Server
	cleanup := func() {}

	if cfg.Tunnel.Enabled() {
		tun, err := tunnel.Open(cfg.Tunnel.Host, cfg.Tunnel.Remote, logger.NewEnvLogger("[tunnel]"))
		if err != nil {
			return nil, nil, err
		}
		base = tun.URL()
		cleanup = func() { tun.Close() } //nolint:errcheck
	}

	client := api.New(base, api.Options{Timeout: cfg.RequestTimeout})
	return client, cleanup, nil
}
