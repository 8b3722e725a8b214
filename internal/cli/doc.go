// Package cli defines the Cobra command tree for the moddle CLI. Each file
// in this package registers one top-level command (packages, types,
// describe, create, ...) with the root command. Commands load the configured
// package definitions through internal/loader, build a model with
// internal/moddle and only handle flag parsing and output formatting.
package cli
