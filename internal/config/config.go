// Package config loads estimate scenarios from HCL files and environment
// overrides.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/shuffleodds/internal/deck"
	"github.com/lox/shuffleodds/internal/estimator"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "SHUFFLEODDS_"

// DefaultSplitCount is used when a scenario omits split_count
const DefaultSplitCount = 2

// Config is the complete scenario file
type Config struct {
	Defaults  *Defaults  `hcl:"defaults,block"`
	Scenarios []Scenario `hcl:"scenario,block"`
}

// Defaults apply to every scenario that does not set its own value
type Defaults struct {
	Iterations int   `hcl:"iterations,optional" env:"ITERATIONS"`
	DeckSize   int   `hcl:"deck_size,optional" env:"DECK_SIZE"`
	Workers    int   `hcl:"workers,optional" env:"WORKERS"`
	Seed       int64 `hcl:"seed,optional" env:"SEED"`
}

// Scenario is one named estimate
type Scenario struct {
	Name         string `hcl:"name,label"`
	TargetCard   int    `hcl:"target_card"`
	TopX         int    `hcl:"top_x"`
	ShuffleCount int    `hcl:"shuffle_count"`
	SplitCount   *int   `hcl:"split_count,optional"` // nil means DefaultSplitCount
	Iterations   int    `hcl:"iterations,optional"`
	DeckSize     int    `hcl:"deck_size,optional"`
	Seed         int64  `hcl:"seed,optional"`
}

// ReferenceScenario is card 94 in the top 10 after two three-way shuffles
func ReferenceScenario() Scenario {
	splits := 3
	return Scenario{
		Name:         "reference",
		TargetCard:   94,
		TopX:         10,
		ShuffleCount: 2,
		SplitCount:   &splits,
	}
}

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig() *Config {
	cfg := &Config{
		Scenarios: []Scenario{ReferenceScenario()},
	}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from an HCL file. A missing file yields
// DefaultConfig.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file)
}

// Parse decodes configuration from HCL source. filename is used in
// diagnostics only.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file)
}

func decode(file *hcl.File) (*Config, error) {
	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Defaults == nil {
		c.Defaults = &Defaults{}
	}
	if c.Defaults.Iterations == 0 {
		c.Defaults.Iterations = estimator.DefaultIterations
	}
	if c.Defaults.DeckSize == 0 {
		c.Defaults.DeckSize = deck.DefaultSize
	}
}

// ApplyEnv overrides defaults from SHUFFLEODDS_* variables. Unset or zero
// variables leave the file values alone. A nil environ reads the process
// environment.
func (c *Config) ApplyEnv(environ map[string]string) error {
	var overrides Defaults
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(&overrides, opts); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	if c.Defaults == nil {
		c.Defaults = &Defaults{}
	}
	if overrides.Iterations != 0 {
		c.Defaults.Iterations = overrides.Iterations
	}
	if overrides.DeckSize != 0 {
		c.Defaults.DeckSize = overrides.DeckSize
	}
	if overrides.Workers != 0 {
		c.Defaults.Workers = overrides.Workers
	}
	if overrides.Seed != 0 {
		c.Defaults.Seed = overrides.Seed
	}
	return nil
}

// Validate validates every scenario
func (c *Config) Validate() error {
	if len(c.Scenarios) == 0 {
		return fmt.Errorf("at least one scenario must be configured")
	}
	if c.Defaults != nil && c.Defaults.Workers < 0 {
		return fmt.Errorf("workers must not be negative: %d", c.Defaults.Workers)
	}

	seen := make(map[string]bool, len(c.Scenarios))
	for _, s := range c.Scenarios {
		if seen[s.Name] {
			return fmt.Errorf("scenario %s: defined more than once", s.Name)
		}
		seen[s.Name] = true

		if err := c.Params(s).Validate(); err != nil {
			return fmt.Errorf("scenario %s: %w", s.Name, err)
		}
	}
	return nil
}

// Params resolves a scenario against the defaults
func (c *Config) Params(s Scenario) estimator.Params {
	d := Defaults{}
	if c.Defaults != nil {
		d = *c.Defaults
	}

	p := estimator.Params{
		TargetCard:   s.TargetCard,
		TopX:         s.TopX,
		ShuffleCount: s.ShuffleCount,
		SplitCount:   DefaultSplitCount,
		Iterations:   s.Iterations,
		DeckSize:     s.DeckSize,
		Seed:         s.Seed,
	}
	if s.SplitCount != nil {
		p.SplitCount = *s.SplitCount
	}
	if p.Iterations == 0 {
		p.Iterations = d.Iterations
	}
	if p.DeckSize == 0 {
		p.DeckSize = d.DeckSize
	}
	if p.Seed == 0 {
		p.Seed = d.Seed
	}
	return p
}

// Select returns the named scenarios in the order given, or every scenario
// when names is empty.
func (c *Config) Select(names []string) ([]Scenario, error) {
	if len(names) == 0 {
		return c.Scenarios, nil
	}

	selected := make([]Scenario, 0, len(names))
	for _, name := range names {
		s := c.Scenario(name)
		if s == nil {
			return nil, fmt.Errorf("unknown scenario: %s", name)
		}
		selected = append(selected, *s)
	}
	return selected, nil
}

// Scenario returns a scenario by name
func (c *Config) Scenario(name string) *Scenario {
	for i := range c.Scenarios {
		if c.Scenarios[i].Name == name {
			return &c.Scenarios[i]
		}
	}
	return nil
}
