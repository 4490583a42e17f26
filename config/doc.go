// Package config provides configuration loading and validation for stowfront.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (STOWFRONT_ prefix, plus S3_BUCKET, KEY_PREFIX and
//     AWS_ENDPOINT_URL_S3)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"config.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	service := stowfront.NewProxyService(cfg.Proxy(), store)
//
// # Environment Variables
//
// All config keys map to environment variables with STOWFRONT_ prefix:
//   - server.port → STOWFRONT_SERVER_PORT
//   - storage.bucket → STOWFRONT_STORAGE_BUCKET (or S3_BUCKET)
//   - storage.key_prefix → STOWFRONT_STORAGE_KEY_PREFIX (or KEY_PREFIX)
//
// # Validation
//
// Configuration is validated using struct tags:
//   - Port must be 1-65535
//   - Backend must be s3 or filesystem; s3 requires a bucket, filesystem a path
//   - Chunk size must be between 1 KiB and 16 MiB
//   - Log level must be debug, info, warn, or error
package config
