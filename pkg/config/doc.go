// Package config provides configuration management for the agentsmd toolkit.
//
// This package handles loading, validating, and defaulting configuration from
// YAML files with environment variable overrides.
//
// # Configuration Loading
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("agentsmd.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("agentsmd.yaml")
//
//  3. From a file if it exists, otherwise defaults (used by the CLI):
//     cfg, err := config.LoadOptional("agentsmd.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention AGENTSMD_SECTION_FIELD:
//
//   - AGENTSMD_FETCH_TIMEOUT overrides fetch.timeout
//   - AGENTSMD_MONITOR_SITES overrides monitor.sites (comma-separated)
//   - AGENTSMD_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Example
//
//	fetch:
//	  enforce_https: true
//	  timeout: 10s
//	monitor:
//	  sites:
//	    - https://example.com
//	  schedule: "*/30 * * * *"
//	history:
//	  backend: sqlite
//	  sqlite:
//	    path: data/agentsmd.db
//	  retention_days: 90
//	telemetry:
//	  logging:
//	    level: info
//	    format: text
package config
