package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/moddle-labs/moddle/internal/config"
	"github.com/moddle-labs/moddle/internal/loader"
	"github.com/moddle-labs/moddle/internal/logging"
	"github.com/moddle-labs/moddle/internal/meta"
	"github.com/moddle-labs/moddle/internal/moddle"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// packagePaths returns the --packages flag if given, else the configured
// search paths.
func packagePaths() []string {
	if len(flagPackages) > 0 {
		return flagPackages
	}
	return config.GetStringSlice(config.KeyPackages)
}

// loggerConfig applies, in increasing precedence: the runtime profile, the
// configured log_level, the environment and --log-level.
func loggerConfig() logging.Config {
	cfg := logging.DefaultConfig(logging.ProfileRuntime)
	if lvl, ok := logging.ParseLevel(config.Get(config.KeyLogLevel)); ok {
		cfg.Level = lvl
	}
	logging.ApplyEnvOverrides(&cfg)
	if lvl, ok := logging.ParseLevel(flagLogLevel); ok {
		cfg.Level = lvl
	}
	return cfg
}

func loaderOptions(logger zerolog.Logger) loader.Options {
	return loader.Options{Validate: true, Logger: logger}
}

// loadModel loads every package on the search paths into a new model.
func loadModel() (*moddle.Moddle, error) {
	paths := packagePaths()
	if len(paths) == 0 {
		return nil, fmt.Errorf("no package paths configured; pass --packages or run 'config set packages <dir>'")
	}

	pkgs, err := loader.Load(paths, loaderOptions(log.Logger))
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}
	return buildModel(pkgs, log.Logger)
}

func buildModel(pkgs []*meta.Package, logger zerolog.Logger) (*moddle.Moddle, error) {
	m, err := moddle.New(pkgs, moddle.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("building model: %w", err)
	}
	logger.Debug().Int("packages", len(pkgs)).Msg("model ready")
	return m, nil
}

// wantJSON reports whether output should be JSON: the --json flag or the
// configured output format.
func wantJSON(flag bool) bool {
	return flag || config.Get(config.KeyOutput) == config.OutputJSON
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
