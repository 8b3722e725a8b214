package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw    string
		want   zerolog.Level
		wantOK bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, true},
		{" WARN ", zerolog.WarnLevel, true},
		{"warning", zerolog.WarnLevel, true},
		{"off", zerolog.Disabled, true},
		{"loud", zerolog.InfoLevel, false},
	}
	for _, tt := range tests {
		got, ok := ParseLevel(tt.raw)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseLevel(%q) = %v, %v, want %v, %v", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogNoColor, "true")

	cfg := DefaultConfig(ProfileRuntime)
	ApplyEnvOverrides(&cfg)

	if cfg.Level != zerolog.ErrorLevel {
		t.Errorf("Level = %v, want error", cfg.Level)
	}
	if !cfg.NoColor {
		t.Error("NoColor should be set from env")
	}
}

func TestApplyEnvOverridesIgnoresGarbage(t *testing.T) {
	t.Setenv(EnvLogLevel, "loud")
	t.Setenv(EnvLogNoColor, "maybe")

	cfg := DefaultConfig(ProfileTest)
	ApplyEnvOverrides(&cfg)

	if cfg.Level != zerolog.DebugLevel || !cfg.NoColor {
		t.Errorf("cfg = %+v, want test defaults", cfg)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: zerolog.InfoLevel, NoColor: true, Out: &buf})

	logger.Debug().Msg("hidden")
	logger.Info().Str("type", "b:Root").Msg("resolved")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message written at info level: %q", out)
	}
	if !strings.Contains(out, "resolved") || !strings.Contains(out, "type=b:Root") {
		t.Errorf("output = %q", out)
	}
}

func TestConfigureInstallsGlobal(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })

	var buf bytes.Buffer
	logger := Configure(Config{Level: zerolog.WarnLevel, NoColor: true, Out: &buf})

	log.Info().Msg("quiet")
	log.Warn().Str("prefix", "b").Msg("duplicate")

	if logger.GetLevel() != zerolog.WarnLevel || log.Logger.GetLevel() != zerolog.WarnLevel {
		t.Errorf("levels = %v, %v, want warn", logger.GetLevel(), log.Logger.GetLevel())
	}
	out := buf.String()
	if strings.Contains(out, "quiet") || !strings.Contains(out, "prefix=b") {
		t.Errorf("output = %q", out)
	}
}
