// Package config loads runtime configuration for the NoteMarket CLI.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. NOTEMARKET_SERVER_ADDR, NOTEMARKET_REQUEST_TIMEOUT,
//     NOTEMARKET_ONLINE_CHECK_INTERVAL and NOTEMARKET_REPORTS_DIR.
//  4. Command-line flags -a, -t, -i and -r.
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "request_timeout": "12s",
//	  "online_check_interval": "3s",
//	  "reports_dir": "reports"
//	}
package config
