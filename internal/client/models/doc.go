// Package models defines the data shapes exchanged with the identity service
// and held by the client: the session, user summaries, credentials, and the
// results of the creation and verification flows.
//
// Optional parts of server responses are pointers (BlockchainTx,
// BlockchainVerification, Proof). A nil pointer means the server reported the
// value as absent.
package models
