package config

import (
	"time"

	"github.com/dmitrijs2005/sealnote/internal/cryptox"
)

// Config holds runtime settings for the SealNote clients.
type Config struct {
	ServerEndpointAddr string
	AccessToken        string
	KDFIterations      int
	RequestTimeout     time.Duration
	LogLevel           string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.AccessToken = ""
	c.KDFIterations = cryptox.DefaultIterations
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the config file (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
