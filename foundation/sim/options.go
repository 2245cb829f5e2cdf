package sim

import (
	"github.com/m3db/m3x/instrument"
)

const (
	defaultPoisonOnDealloc = true
	poisonByte             = 0xdd
)

// FillFailureFn decides whether filling a buffer with the given
// content should fail.
type FillFailureFn func(content []byte) bool

// Options provide a set of options for the simulated runtime.
type Options struct {
	instrumentOpts  instrument.Options
	fillFailureFn   FillFailureFn
	poisonOnDealloc bool
}

// NewOptions creates a new set of runtime options.
func NewOptions() *Options {
	return &Options{
		instrumentOpts:  instrument.NewOptions(),
		poisonOnDealloc: defaultPoisonOnDealloc,
	}
}

// SetInstrumentOptions sets the instrument options.
func (o *Options) SetInstrumentOptions(v instrument.Options) *Options {
	opts := *o
	opts.instrumentOpts = v
	return &opts
}

// InstrumentOptions returns the instrument options.
func (o *Options) InstrumentOptions() instrument.Options {
	return o.instrumentOpts
}

// SetFillFailureFn sets the function used to inject GetCString failures.
func (o *Options) SetFillFailureFn(v FillFailureFn) *Options {
	opts := *o
	opts.fillFailureFn = v
	return &opts
}

// FillFailureFn returns the function used to inject GetCString failures.
func (o *Options) FillFailureFn() FillFailureFn {
	return o.fillFailureFn
}

// SetPoisonOnDealloc sets whether the content of deallocated objects is
// overwritten, which makes reads through dangling views observable.
func (o *Options) SetPoisonOnDealloc(v bool) *Options {
	opts := *o
	opts.poisonOnDealloc = v
	return &opts
}

// PoisonOnDealloc returns whether the content of deallocated objects is overwritten.
func (o *Options) PoisonOnDealloc() bool {
	return o.poisonOnDealloc
}
