// Package config handles configuration management for homevault.
// It supports loading configuration from multiple sources including
// TOML or YAML files, environment variables, and command-line flags,
// and loads the invocation context files consumed by the operation driver.
package config
