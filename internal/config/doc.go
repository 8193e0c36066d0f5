// Package config defines the application's configuration structure and
// loading logic, backed by viper with DRILL_-prefixed environment variables
// taking precedence over an optional config.yaml.
package config
