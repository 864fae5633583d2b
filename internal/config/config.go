// Package config loads runtime settings for the rehi client.
//
// Sources are applied in order: built-in defaults, then a JSON file
// (located via -c/-config), then command-line overrides supplied by the CLI.
// Later sources take precedence.
package config

import "time"

// Config holds runtime settings for the rehi client.
//
// Fields:
//   - DatabasePath: location of the local SQLite database file.
//   - ListenAddr: host:port the local reader HTTP server binds to.
//   - RemoteEndpointAddr: base URL of the remote sync API. Empty disables
//     sync entirely; the client then runs purely local.
//   - RemoteAuthToken: bearer token attached to sync requests.
//   - RemoteTimeout: per-call timeout for remote sync notifications.
type Config struct {
	DatabasePath       string
	ListenAddr         string
	RemoteEndpointAddr string
	RemoteAuthToken    string
	RemoteTimeout      time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "rehi.db"
	c.ListenAddr = "127.0.0.1:8484"
	c.RemoteEndpointAddr = "https://api.rehi.app"
	c.RemoteTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if a config file was supplied). CLI flag overrides are applied by the
// command layer on top of the returned value.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	return cfg
}
