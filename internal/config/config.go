// Package config loads front-end options for the cp driver from a YAML
// file such as cpc.yml.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/you-not-fish/cp/internal/types"
	"github.com/you-not-fish/cp/internal/types2"
)

// Config holds the options read from a configuration file.
type Config struct {
	// MaxDepth bounds parser and checker nesting. 0 selects the default.
	MaxDepth int `yaml:"max_depth"`

	// MaxDiagnostics stops reporting after that many diagnostics.
	// 0 means unlimited.
	MaxDiagnostics int `yaml:"max_diagnostics"`

	// Builtins restricts the predeclared primitive types. Empty means all
	// of them.
	Builtins nameList `yaml:"builtins"`
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "config: %s is invalid:", e.Path)
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()
	return Decode(path, file)
}

// Decode reads a configuration from r. Unknown keys are errors; an empty
// document yields the defaults.
func Decode(path string, r io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	cfg := &Config{}
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate(path string) error {
	var errs ValidationError
	if c.MaxDepth < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_depth must not be negative (got %d)", c.MaxDepth))
	}
	if c.MaxDiagnostics < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_diagnostics must not be negative (got %d)", c.MaxDiagnostics))
	}
	seen := make(map[string]bool)
	for i, name := range c.Builtins {
		switch {
		case !isPredeclared(name):
			errs.Issues = append(errs.Issues, fmt.Sprintf("builtins[%d]: unknown type %q", i, name))
		case seen[name]:
			errs.Issues = append(errs.Issues, fmt.Sprintf("builtins[%d]: duplicate type %q", i, name))
		}
		seen[name] = true
	}
	if len(errs.Issues) > 0 {
		errs.Path = path
		return &errs
	}
	return nil
}

func isPredeclared(name string) bool {
	for _, p := range types.PredeclaredTypes {
		if p == name {
			return true
		}
	}
	return false
}

// CheckerConfig returns the type checker configuration described by c.
func (c *Config) CheckerConfig() (*types2.Config, error) {
	conf := &types2.Config{
		MaxDepth:       c.MaxDepth,
		MaxDiagnostics: c.MaxDiagnostics,
	}
	if len(c.Builtins) > 0 {
		universe, err := types.NewUniverse(c.Builtins...)
		if err != nil {
			return nil, fmt.Errorf("config: builtins: %w", err)
		}
		conf.Universe = universe
	}
	return conf, nil
}

// nameList accepts either a single name or a sequence of names.
type nameList []string

func (l *nameList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = nil
			return nil
		}
		*l = nameList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			if str = strings.TrimSpace(str); str != "" {
				items = append(items, str)
			}
		}
		*l = nameList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	default:
		return fmt.Errorf("config: expected a name or a list of names, found %s", value.ShortTag())
	}
}
