// Package client implements the notes.Store port against a remote
// sealnote.NoteStore over gRPC. It converts between notes.Record and the
// wire form, attaches the access token and maps gRPC status codes back to
// the sentinel errors in internal/common.
package client
