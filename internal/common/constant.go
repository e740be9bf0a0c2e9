// Package common contains shared constants and helpers used across
// idkeeper components.
package common

// AuthorizationHeaderName carries the bearer session token on outbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token inside the Authorization header value.
const BearerPrefix = "Bearer "

// RequestIDHeaderName carries a per-request correlation id.
const RequestIDHeaderName = "X-Request-ID"

// Well-known metadata keys under which the session is persisted.
const (
	SessionTokenKey = "authToken"
	SessionUserKey  = "user"
	SessionSaltKey  = "sessionSalt"
)
