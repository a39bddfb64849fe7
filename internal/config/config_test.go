package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cpc.yml")
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
max_depth: 50
max_diagnostics: 3
builtins: [int, bool]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxDepth != 50 || cfg.MaxDiagnostics != 3 {
		t.Errorf("cfg = %+v", cfg)
	}
	if strings.Join(cfg.Builtins, ",") != "int,bool" {
		t.Errorf("Builtins = %v", cfg.Builtins)
	}
}

func TestLoadEmpty(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxDepth != 0 || cfg.MaxDiagnostics != 0 || len(cfg.Builtins) != 0 {
		t.Errorf("empty config = %+v, want defaults", cfg)
	}
}

func TestBuiltinsScalar(t *testing.T) {
	cfg, err := Decode("inline", strings.NewReader("builtins: float\n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(cfg.Builtins) != 1 || cfg.Builtins[0] != "float" {
		t.Errorf("Builtins = %v", cfg.Builtins)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown_key", "max_dpeth: 3\n", "field max_dpeth not found"},
		{"bad_type", "max_depth: deep\n", "config: parse"},
		{"negative_depth", "max_depth: -1\n", "max_depth must not be negative"},
		{"negative_diagnostics", "max_diagnostics: -2\n", "max_diagnostics must not be negative"},
		{"unknown_builtin", "builtins: [int, string]\n", `unknown type "string"`},
		{"duplicate_builtin", "builtins: [int, int]\n", `duplicate type "int"`},
		{"builtins_mapping", "builtins: {a: b}\n", "expected a name or a list of names"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.src))
			if err == nil {
				t.Fatal("Load succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestValidationErrorLists(t *testing.T) {
	_, err := Load(writeConfig(t, "max_depth: -1\nmax_diagnostics: -1\n"))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error is %T (%v), want *ValidationError", err, err)
	}
	if len(verr.Issues) != 2 {
		t.Errorf("Issues = %v, want 2", verr.Issues)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want it to wrap os.ErrNotExist", err)
	}
	if _, err := Load(""); err == nil {
		t.Error("Load(\"\") succeeded")
	}
}

func TestCheckerConfig(t *testing.T) {
	cfg := &Config{MaxDepth: 20, MaxDiagnostics: 5, Builtins: nameList{"int", "char"}}
	conf, err := cfg.CheckerConfig()
	if err != nil {
		t.Fatalf("CheckerConfig: %v", err)
	}
	if conf.MaxDepth != 20 || conf.MaxDiagnostics != 5 {
		t.Errorf("conf = %+v", conf)
	}
	if conf.Universe == nil || conf.Universe.Lookup("char") == nil || conf.Universe.Lookup("float") != nil {
		t.Errorf("universe = %v", conf.Universe)
	}

	conf, err = (&Config{}).CheckerConfig()
	if err != nil || conf.Universe != nil {
		t.Errorf("default config: universe %v, err %v", conf.Universe, err)
	}
}
