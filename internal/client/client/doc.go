// Package client is the transport layer of the identity client.
//
// # Overview
//
// HTTPClient talks JSON over HTTP to the identity service. Send is the single
// request path: it attaches the bearer token of the current session, tags the
// request with an X-Request-ID, enforces one uniform timeout, and maps every
// failure onto a small set of kinds (ErrValidation, ErrInvalidCredentials,
// ErrUnauthenticated, ErrNotFound, ErrConflict, ErrNetwork, ErrServer) wrapped
// in *RequestError.
//
// A 401 on a session-bearing request clears that session from the store, so
// a rejected token cannot be reused by later calls. Endpoints that check a
// password opt out with CredentialCheck. Login is anonymous, so any 401 is a
// wrong password; change-password opts out only for the service's
// wrong-old-password message. verify-token sends an explicit bearer and a
// 401 there rejects the checked token, never the session.
//
// # Retries
//
// Nothing in this package retries. Request bodies may describe
// non-idempotent actions such as credential creation; retry policy belongs to
// the caller.
//
// The Client interface lists the typed operations of the service contract;
// HTTPClient implements it on top of Send.
package client
