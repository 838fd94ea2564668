// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv for .env files,
// github.com/caarlos0/env/v11 for parsing and
// github.com/go-playground/validator/v10 for `validate` struct tags.
//
// Each configuration type is parsed and validated once and then served from
// an in-memory cache keyed by the type name. Failed loads are not cached.
//
// # Usage
//
//	type ServiceConfig struct {
//		Addr      string `env:"SCHEMAKIT_HTTP_ADDR" envDefault:":8080" validate:"required"`
//		SchemaDir string `env:"SCHEMAKIT_SCHEMA_DIR" envDefault:"./schemas"`
//	}
//
//	if err := config.LoadEnv("./config/.env"); err != nil {
//		log.Fatalf("loading env: %v", err)
//	}
//
//	var cfg ServiceConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatalf("parsing env: %v", err)
//	}
//
// # Error Handling
//
//   - ErrParsingConfig: env vars could not be parsed into the struct.
//   - ErrInvalidConfig: the parsed struct failed its validate tags.
//   - ErrLoadingEnvFile: a .env file could not be read.
//   - ErrNilPointer: nil pointer passed to Load or Reload.
//
// # Testing Helpers
//
// ResetCache clears every cached type; Reload re-parses one type after the
// process environment changed.
package config
