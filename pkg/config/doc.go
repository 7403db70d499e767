// Package config loads configuration from environment variables into typed,
// cached structs.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - LoadEnv reads one or more .env files into the process environment.
//   - Load parses the environment into any struct using `env` field tags and
//     caches the result per type, so each type is parsed once per process.
//   - MustLoad and MustLoadEnv panic instead of returning an error.
//   - ResetCache and ForceReloadConfig drop cached values, mainly for tests.
//
// App is the generator's own settings block (SEEDKIT_* variables). Database
// settings live next to their clients in the mongo and pg packages.
//
// # Usage
//
//	if err := config.LoadEnv("./seed.env"); err != nil {
//	    return err
//	}
//	app, err := config.LoadApp()
//	if err != nil {
//	    return err
//	}
//
// # Error Handling
//
//   - ErrParsingConfig: env vars could not be parsed into the struct.
//   - ErrLoadingEnvFile: an explicitly requested .env file could not be read.
//   - ErrInvalidConfig: parsed values are out of range.
//   - ErrNilPointer: nil pointer passed to Load.
package config
