package config

import "time"

// Config holds runtime settings for the idkeeper CLI.
//
// Fields:
//   - ServerURL: base URL of the identity service API, including the /api prefix.
//   - DBPath: SQLite file holding the persisted session.
//   - RequestTimeout: uniform timeout applied to every API request.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - SessionPassphrase: when set, the stored token is sealed with a key derived from it.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	ServerURL           string
	DBPath              string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	SessionPassphrase   string
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000/api"
	c.DBPath = "idkeeper/session.db"
	c.RequestTimeout = 15 * time.Second
	c.OnlineCheckInterval = 5 * time.Second
	c.SessionPassphrase = ""
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
