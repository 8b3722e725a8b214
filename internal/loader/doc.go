// Package loader reads package definition files (YAML, JSON or TOML),
// validates them against the embedded package JSON schema, orders them so
// that extended packages are registered first, and watches definition
// directories for changes.
package loader
