package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/calcterm"
)

// config is a batch of terms to evaluate. It is loaded from a YAML file with
// -config and then overridden by flags.
//
//	format: "%.6f"
//	vars:
//	  y: "pi/2"
//	grid:
//	  x: "0:1:0.25"
//	exprs:
//	  - "sin(x) * y"
type config struct {
	// Format is the fmt verb used to print results.
	Format string `yaml:"format"`
	// Vars maps variable names to terms giving their values.
	Vars map[string]string `yaml:"vars"`
	// Grid maps variable names to from:to:step sampling axes.
	Grid map[string]string `yaml:"grid"`
	// Exprs are the terms to evaluate, in order.
	Exprs []string `yaml:"exprs"`
}

// loadConfig reads a config from a YAML file.
func loadConfig(name string) (*config, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return parseConfig(b)
}

func parseConfig(b []byte) (*config, error) {
	var cfg config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	vars, grid := cfg.Vars, cfg.Grid
	cfg.Vars, cfg.Grid = nil, nil
	for name, v := range vars {
		if err := set(&cfg.Vars, name+"="+v); err != nil {
			return nil, fmt.Errorf("config vars: %w", err)
		}
	}
	for name, v := range grid {
		if err := set(&cfg.Grid, name+"="+v); err != nil {
			return nil, fmt.Errorf("config grid: %w", err)
		}
	}
	return &cfg, nil
}

// set applies a name=value pair to m, replacing any earlier value for the
// same variable.
func set(m *map[string]string, s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
	}
	name = strings.ToLower(strings.TrimSpace(name))
	if _, err := slot(name); err != nil {
		return err
	}
	if *m == nil {
		*m = make(map[string]string)
	}
	(*m)[name] = strings.TrimSpace(value)
	return nil
}

// merge overrides c with the non-empty fields of flags.
func (c *config) merge(flags *config) error {
	if flags.Format != "" {
		c.Format = flags.Format
	}
	for name, v := range flags.Vars {
		if err := set(&c.Vars, name+"="+v); err != nil {
			return err
		}
	}
	for name, v := range flags.Grid {
		if err := set(&c.Grid, name+"="+v); err != nil {
			return err
		}
	}
	c.Exprs = append(c.Exprs, flags.Exprs...)
	return nil
}

// vars evaluates the configured variables. Variables which are not given take
// calcterm.Unused. The returned set holds the lowercase names that were bound.
func (c *config) vars() (calcterm.Vars, map[string]bool, error) {
	v := calcterm.Bind()
	bound := make(map[string]bool, len(c.Vars))
	for name, src := range c.Vars {
		i, err := slot(name)
		if err != nil {
			return v, nil, err
		}
		r, err := calcterm.Eval(src)
		if err != nil {
			return v, nil, fmt.Errorf("setting %s: %w", name, err)
		}
		setSlot(&v, i, r)
		bound[name] = true
	}
	return v, bound, nil
}

// axes parses the configured grid. Axes are ordered x, y, z.
func (c *config) axes() ([]axis, error) {
	var r []axis
	for _, name := range []string{"x", "y", "z"} {
		spec, ok := c.Grid[name]
		if !ok {
			continue
		}
		a, err := parseAxis(name, spec)
		if err != nil {
			return nil, err
		}
		r = append(r, a)
	}
	return r, nil
}
