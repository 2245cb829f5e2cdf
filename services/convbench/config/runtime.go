package config

import (
	"fmt"

	"github.com/xichen2020/objcstr/foundation"
	"github.com/xichen2020/objcstr/foundation/objc"
	"github.com/xichen2020/objcstr/foundation/sim"

	"github.com/m3db/m3x/instrument"
)

// RuntimeKind is the kind of foreign runtime to convert strings from.
type RuntimeKind string

// A list of supported runtime kinds.
const (
	SimRuntime  RuntimeKind = "sim"
	ObjcRuntime RuntimeKind = "objc"
)

// RuntimeConfiguration provides foreign runtime configuration.
type RuntimeConfiguration struct {
	// Kind of runtime, defaults to sim.
	Kind RuntimeKind `yaml:"kind"`

	// Whether the simulated runtime poisons deallocated memory.
	PoisonOnDealloc *bool `yaml:"poisonOnDealloc"`
}

// NewRuntime creates a foreign runtime from configuration.
func (c *RuntimeConfiguration) NewRuntime(instrumentOpts instrument.Options) (foundation.Runtime, error) {
	switch c.Kind {
	case "", SimRuntime:
		opts := sim.NewOptions().SetInstrumentOptions(instrumentOpts)
		if c.PoisonOnDealloc != nil {
			opts = opts.SetPoisonOnDealloc(*c.PoisonOnDealloc)
		}
		return sim.NewRuntime(opts), nil
	case ObjcRuntime:
		rt, err := objc.NewRuntime(instrumentOpts)
		if err != nil {
			return nil, err
		}
		return rt, nil
	}
	return nil, fmt.Errorf("unknown runtime kind %s", c.Kind)
}
