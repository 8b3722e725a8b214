package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/moddle-labs/moddle/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys understood by the CLI.
const (
	KeyPackages = "packages"
	KeyLogLevel = "log_level"
	KeyOutput   = "output"
)

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
)

// Keys lists every supported key in display order.
var Keys = []string{KeyPackages, KeyLogLevel, KeyOutput}

// Dir returns the path to the config directory (~/.moddle/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.moddle/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyLogLevel, "warn")
	viper.SetDefault(KeyOutput, OutputTable)
	viper.SetDefault(KeyPackages, []string{filepath.Join(Dir(), "packages")})

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// GetStringSlice returns a list value. Entries joined with the OS path list
// separator (as in MODDLE_PACKAGES=a:b) are split.
func GetStringSlice(key string) []string {
	var out []string
	for _, v := range viper.GetStringSlice(key) {
		out = append(out, splitList(v)...)
	}
	return out
}

// IsKnown reports whether key is a supported config key.
func IsKnown(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !IsKnown(key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	if key == KeyOutput && value != OutputTable && value != OutputJSON {
		return fmt.Errorf("output must be %q or %q", OutputTable, OutputJSON)
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	if key == KeyPackages {
		viper.Set(key, splitList(value))
	} else {
		viper.Set(key, value)
	}

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range filepath.SplitList(value) {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
