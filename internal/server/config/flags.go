package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/sealnote/internal/flagx"
)

var serverFlags = []string{
	"-a", "-storage", "-d", "-m", "-s", "-auth", "-token-ttl", "-sweep", "-backup",
	"-u", "-p", "-b", "-g", "-e", "-l", "-issue-token",
}

// parseFlags overlays command-line flags onto config.
//
//	-a string           gRPC bind address (e.g. ":50051")
//	-storage string     postgres | sqlite | mongo | memory
//	-d string           DSN for the storage backend
//	-m string           MongoDB database name
//	-s string           JWT HMAC secret key
//	-auth               require access tokens
//	-token-ttl dur      validity of issued tokens (0 = no expiry)
//	-sweep dur          expired-note sweep interval (0 = off)
//	-backup dur         S3 backup interval (0 = off)
//	-u, -p string       S3 user / password
//	-b string           S3 bucket (empty = backups off)
//	-g string           S3 region
//	-e string           S3 base endpoint
//	-l string           log level
//	-issue-token string print an access token for this subject and exit
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.Storage, "storage", config.Storage, "storage backend: postgres, sqlite, mongo or memory")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.MongoDatabase, "m", config.MongoDatabase, "MongoDB database name")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.BoolVar(&config.AuthRequired, "auth", config.AuthRequired, "require access tokens")
	fs.DurationVar(&config.TokenValidity, "token-ttl", config.TokenValidity, "issued token validity")
	fs.DurationVar(&config.SweepInterval, "sweep", config.SweepInterval, "expired note sweep interval")
	fs.DurationVar(&config.BackupInterval, "backup", config.BackupInterval, "S3 backup interval")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.IssueToken, "issue-token", config.IssueToken, "print an access token for this subject and exit")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
