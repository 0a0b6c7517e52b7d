// Package config handles configuration for the store server: defaults, an
// optional JSON or YAML file named by -c/-config, then command-line flags.
package config

import "time"

// Storage backends accepted by Config.Storage.
const (
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
	StorageMongo    = "mongo"
	StorageMemory   = "memory"
)

// Config holds runtime settings for the SealNote store server.
//
// DatabaseDSN is interpreted by the selected Storage: a pgx DSN, a SQLite
// file path or URI, or a MongoDB connection URI. Backups are disabled while
// S3Bucket is empty.
type Config struct {
	EndpointAddrGRPC string
	Storage          string
	DatabaseDSN      string
	MongoDatabase    string
	SecretKey        string
	AuthRequired     bool
	TokenValidity    time.Duration
	SweepInterval    time.Duration
	BackupInterval   time.Duration
	S3RootUser       string
	S3RootPassword   string
	S3Bucket         string
	S3Region         string
	S3BaseEndpoint   string
	LogLevel         string
	// IssueToken, when set, makes the server print a token for this subject
	// and exit.
	IssueToken string
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.EndpointAddrGRPC = ":50051"
	c.Storage = StorageSQLite
	c.DatabaseDSN = "data/sealnote.db"
	c.MongoDatabase = "sealnote"
	c.SecretKey = "secretKey"
	c.AuthRequired = false
	c.TokenValidity = 30 * 24 * time.Hour
	c.SweepInterval = time.Minute
	c.BackupInterval = time.Hour
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = ""
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
	c.LogLevel = "info"
}

// LoadConfig applies defaults, then the optional config file, then flags.
// Malformed files or flags panic, as the server cannot start without them.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
