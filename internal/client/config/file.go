package config

import (
	"github.com/dmitrijs2005/sealnote/internal/flagx"
	"github.com/dmitrijs2005/sealnote/internal/timex"
)

// FileConfig is a DTO used exclusively for decoding the config file. Absent
// keys keep their current value.
type FileConfig struct {
	ServerEndpointAddr string          `json:"server_endpoint_addr" yaml:"server_endpoint_addr"`
	AccessToken        string          `json:"access_token" yaml:"access_token"`
	KDFIterations      int             `json:"kdf_iterations" yaml:"kdf_iterations"`
	RequestTimeout     *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	LogLevel           string          `json:"log_level" yaml:"log_level"`
}

// parseFile overlays cfg with the file named by -c/-config. It panics on
// read or decode errors.
func parseFile(cfg *Config) {
	path := flagx.ConfigFile()
	if path == "" {
		return
	}

	var fc FileConfig
	if err := flagx.DecodeFile(path, &fc); err != nil {
		panic(err)
	}

	if fc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = fc.ServerEndpointAddr
	}
	if fc.AccessToken != "" {
		cfg.AccessToken = fc.AccessToken
	}
	if fc.KDFIterations > 0 {
		cfg.KDFIterations = fc.KDFIterations
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
}
