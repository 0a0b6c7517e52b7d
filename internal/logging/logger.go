// Package logging is the structured logger shared by the store server, the
// REPL client and the MCP bridge. The server logs JSON to stdout; the
// clients log text to stderr so stdout stays free for notes and MCP frames.
package logging

import "context"

// Logger takes a message plus key/value pairs. Components add their name
// once through With("module", ...) and note ids through "note_id".
//
//	logger.Info(ctx, "note stored", "note_id", id, "one_time", oneTime)
//
// Passwords, derived keys and plaintext are never logged.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that adds args to every record.
	With(args ...any) Logger
}
