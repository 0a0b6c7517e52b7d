// Package config loads runtime configuration for the SealNote clients (the
// REPL and the MCP server).
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     address:port of the note store
//	-t string     access token sent with every call
//	-k int        PBKDF2 iterations; must match every other client of the store
//	-timeout dur  per-request timeout
//	-l string     log level
//
// # File schema
//
// Durations accept strings like "10s" or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "access_token": "eyJ...",
//	  "kdf_iterations": 200000,
//	  "request_timeout": "10s"
//	}
package config
