// Package cli provides the interactive idkeeper command-line client.
//
// It wires configuration, the local session database, the API client and
// services, and an interactive REPL. On start it probes the service with
// backoff, restores a session saved by a previous run, and keeps a
// background watcher that shows online/offline in the prompt.
//
// Key features:
//   - Register / Login / Logout, profile and password management
//   - Create, list, show and revoke credentials
//   - Verify a credential hash together with its blockchain proof
//   - Token checks and blockchain status
//
// When the service rejects the session, the CLI drops it and returns to the
// signed-out command set. The REPL is started via App.Run(ctx), which blocks
// until the user exits. See App, StartOnlineStatusWatcher, and runREPL.
package cli
