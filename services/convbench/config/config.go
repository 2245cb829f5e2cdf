package config

import (
	"github.com/m3db/m3x/instrument"
	"github.com/m3db/m3x/log"
)

// Configuration holds all convbench config options.
type Configuration struct {
	// Logging configuration.
	Logging log.Configuration `yaml:"logging"`

	// Metrics configuration, metrics are discarded if unset.
	Metrics *instrument.MetricsConfiguration `yaml:"metrics"`

	// Foreign runtime configuration.
	Runtime RuntimeConfiguration `yaml:"runtime"`

	// Converter configuration.
	Converter ConverterConfiguration `yaml:"converter"`

	// Benchmark configuration.
	Bench BenchConfiguration `yaml:"bench"`
}
