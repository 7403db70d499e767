// Package environment names the environment a seeding run targets
// (development, staging or production) and parses it from configuration,
// accepting the short aliases dev, stage and prod.
//
// The logger package uses it to pick per-environment defaults.
package environment
