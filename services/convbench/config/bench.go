package config

import (
	"strings"

	"github.com/xichen2020/objcstr/convert"
)

const (
	defaultInput      = "aaa\ue0b0 🍺"
	defaultRepeat     = 100
	defaultIterations = 100000
)

// BenchConfiguration provides benchmark configuration.
type BenchConfiguration struct {
	// Strategies to run, defaults to all of them.
	Strategies []convert.Strategy `yaml:"strategies"`

	// Text converted on every iteration before repetition.
	Input *string `yaml:"input"`

	// Number of times the input is repeated.
	Repeat *int `yaml:"repeat"`

	// Number of conversions per strategy.
	Iterations *int `yaml:"iterations"`
}

// StrategiesOrDefault returns the configured strategies or all strategies.
func (c *BenchConfiguration) StrategiesOrDefault() []convert.Strategy {
	if len(c.Strategies) == 0 {
		return convert.ValidStrategies()
	}
	return c.Strategies
}

// InputText returns the repeated input text.
func (c *BenchConfiguration) InputText() string {
	input, repeat := defaultInput, defaultRepeat
	if c.Input != nil {
		input = *c.Input
	}
	if c.Repeat != nil {
		repeat = *c.Repeat
	}
	return strings.Repeat(input, repeat)
}

// IterationsOrDefault returns the configured number of iterations.
func (c *BenchConfiguration) IterationsOrDefault() int {
	if c.Iterations == nil {
		return defaultIterations
	}
	return *c.Iterations
}
