package config

import (
	"github.com/dmitrijs2005/sealnote/internal/flagx"
	"github.com/dmitrijs2005/sealnote/internal/timex"
)

// FileConfig is the on-disk shape of the server config. Durations accept
// strings such as "1m" or integer nanoseconds. Absent keys keep the
// current value.
type FileConfig struct {
	EndpointAddrGRPC string          `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	Storage          string          `json:"storage" yaml:"storage"`
	DatabaseDSN      string          `json:"database_dsn" yaml:"database_dsn"`
	MongoDatabase    string          `json:"mongo_database" yaml:"mongo_database"`
	SecretKey        string          `json:"secret_key" yaml:"secret_key"`
	AuthRequired     *bool           `json:"auth_required" yaml:"auth_required"`
	TokenValidity    *timex.Duration `json:"token_validity" yaml:"token_validity"`
	SweepInterval    *timex.Duration `json:"sweep_interval" yaml:"sweep_interval"`
	BackupInterval   *timex.Duration `json:"backup_interval" yaml:"backup_interval"`
	S3RootUser       string          `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword   string          `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket         string          `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region         string          `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint   string          `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	LogLevel         string          `json:"log_level" yaml:"log_level"`
}

// parseFile loads the file named by -c/-config, if any, into config.
// It panics when the file cannot be read or decoded.
func parseFile(config *Config) {
	path := flagx.ConfigFile()
	if path == "" {
		return
	}

	c := &FileConfig{}
	if err := flagx.DecodeFile(path, c); err != nil {
		panic(err)
	}
	c.apply(config)
}

func (c *FileConfig) apply(config *Config) {
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.Storage, c.Storage)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.MongoDatabase, c.MongoDatabase)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.LogLevel, c.LogLevel)

	if c.AuthRequired != nil {
		config.AuthRequired = *c.AuthRequired
	}
	if c.TokenValidity != nil {
		config.TokenValidity = c.TokenValidity.Duration
	}
	if c.SweepInterval != nil {
		config.SweepInterval = c.SweepInterval.Duration
	}
	if c.BackupInterval != nil {
		config.BackupInterval = c.BackupInterval.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
