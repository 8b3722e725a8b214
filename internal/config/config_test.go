package config

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return home
}

func TestDirUsesHome(t *testing.T) {
	home := setupHome(t)

	if got, want := Dir(), filepath.Join(home, ".moddle"); got != want {
		t.Errorf("Dir() = %q, want %q", got, want)
	}
	if !strings.HasSuffix(FilePath(), filepath.Join(".moddle", "config.yaml")) {
		t.Errorf("FilePath() = %q", FilePath())
	}
}

func TestLoadDefaults(t *testing.T) {
	home := setupHome(t)
	Load()

	if Get(KeyLogLevel) != "warn" || Get(KeyOutput) != OutputTable {
		t.Errorf("defaults = %q %q", Get(KeyLogLevel), Get(KeyOutput))
	}
	want := []string{filepath.Join(home, ".moddle", "packages")}
	if got := GetStringSlice(KeyPackages); !reflect.DeepEqual(got, want) {
		t.Errorf("packages = %v, want %v", got, want)
	}
}

func TestEnvOverride(t *testing.T) {
	setupHome(t)
	t.Setenv("MODDLE_OUTPUT", "json")
	t.Setenv("MODDLE_PACKAGES", "a"+string(filepath.ListSeparator)+"b")
	Load()

	if Get(KeyOutput) != OutputJSON {
		t.Errorf("output = %q, want json", Get(KeyOutput))
	}
	if got := GetStringSlice(KeyPackages); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("packages = %v", got)
	}
}

func TestSetPersists(t *testing.T) {
	setupHome(t)
	Load()

	if err := Set(KeyPackages, "defs"+string(filepath.ListSeparator)+"more"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := Set(KeyOutput, OutputJSON); err != nil {
		t.Fatalf("Set: %v", err)
	}

	viper.Reset()
	Load()
	if got := GetStringSlice(KeyPackages); !reflect.DeepEqual(got, []string{"defs", "more"}) {
		t.Errorf("packages = %v", got)
	}
	if Get(KeyOutput) != OutputJSON {
		t.Errorf("output = %q", Get(KeyOutput))
	}
}

func TestSetRejects(t *testing.T) {
	setupHome(t)
	Load()

	tests := []struct{ key, value string }{
		{"mirror", "x"},
		{KeyOutput, "xml"},
	}
	for _, tt := range tests {
		if err := Set(tt.key, tt.value); err == nil {
			t.Errorf("Set(%q, %q) should fail", tt.key, tt.value)
		}
	}
}
