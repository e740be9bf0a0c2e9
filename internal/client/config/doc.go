// Package config loads runtime configuration for the idkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the identity service API
//	-d string   path of the local session database
//	-i int      online status check interval (seconds)
//	-t int      request timeout (seconds)
//	-l string   log level (debug, info, warn, error)
//
// The session passphrase is accepted from the JSON file only, so it does not
// show up in the process list.
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds. Keys that are absent keep their
// current value:
//
//	{
//	  "server_url": "http://127.0.0.1:5000/api",
//	  "db_path": "idkeeper/session.db",
//	  "request_timeout": "15s",
//	  "online_check_interval": "5s",
//	  "session_passphrase": "correct horse battery staple",
//	  "log_level": "info"
//	}
package config
