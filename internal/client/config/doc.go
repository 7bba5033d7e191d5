// Package config loads runtime configuration for the gophauth CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file given with -c/-config or GOPHAUTH_CLIENT_CONFIG.
//  3. GOPHAUTH_SERVER_URL, GOPHAUTH_CLIENT_TIMEOUT, GOPHAUTH_CHECK_INTERVAL.
//  4. Command-line flags.
//
// Supported flags
//
//	-a string   base URL of the gophauth HTTP API
//	-t int      request timeout (seconds)
//	-i int      online status check interval (seconds)
//
// Durations in JSON are either strings like "3s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "request_timeout": "10s",
//	  "online_check_interval": "3s"
//	}
package config
