// Package config manages user-level settings stored at ~/.moddle/config.yaml:
// the package search paths, the log level and the default output format.
// Every key can be overridden from the environment with the MODDLE_ prefix.
package config
