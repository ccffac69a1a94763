// Package config loads the dashboard configuration.
//
// Values come from three layers, later layers winning:
//
//  1. Default()
//  2. a YAML file (FD_CONFIG_FILE, or config.yaml in the working directory)
//  3. FD_* environment variables
//
// Environment variables follow the nesting of the Config struct:
//
//	FD_SERVER_PORT=8080
//	FD_LOGGING_LEVEL=debug
//	FD_PATHS_INPUT_DIR=/srv/exports
//	FD_UPLOAD_ALLOWED_EXTENSIONS=xlsx,csv
//	FD_RESOLVER_UNKNOWN_LABEL=N/A
//	FD_PROCESSING_WORKERS=8
//
// The merged result is checked with validator struct tags before Load
// returns it.
package config
