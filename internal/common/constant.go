// Package common contains shared constants and sentinel errors used across
// SealNote components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// PublicRetrieveFailure is the only message shown to users when a note
// cannot be returned for a password, whatever the underlying reason.
const PublicRetrieveFailure = "incorrect password or not found"
