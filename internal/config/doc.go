// Package config handles configuration loading for tidelist.
//
// # Overview
//
// Configuration is loaded from a YAML file with environment variable
// expansion, then overlaid with container-style environment overrides so
// the server runs with no config file at all.
//
// # Configuration File
//
// The path comes from the TIDELIST_CONFIG environment variable, falling
// back to ./tidelist.yaml. Sections:
//
//	server:
//	  http_addr: "0.0.0.0:8080"
//
//	redis:
//	  host: "localhost"
//	  port: 6379
//	  db: 0
//	  dial_timeout: "5s"
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// # Environment Variable Expansion
//
// Values can reference environment variables with ${VAR_NAME} syntax:
//
//	redis:
//	  host: "${REDIS_HOST}"
//
// # Environment Overrides
//
// After file load, these variables take precedence when set:
//
//   - REDIS_HOST, REDIS_PORT, REDIS_DB: key-value store connection
//   - PORT: rewrites server.http_addr to 0.0.0.0:<PORT>
//
// # Duration Parsing
//
// Duration values use Go's time.ParseDuration syntax ("5s", "250ms").
package config
