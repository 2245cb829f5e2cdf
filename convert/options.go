package convert

import (
	"fmt"

	xbytes "github.com/xichen2020/objcstr/x/bytes"

	"github.com/m3db/m3x/instrument"
)

const (
	defaultCopyDataMode      = xbytes.DontCopyData
	defaultInvalidUTF8Policy = ReplaceInvalidUTF8
	defaultMaxBufferSize     = 1 << 30
)

// InvalidUTF8Policy determines how a filled buffer that is not valid
// UTF-8 is decoded.
type InvalidUTF8Policy int

// A list of supported invalid UTF-8 policies.
const (
	// ReplaceInvalidUTF8 substitutes each invalid sequence with U+FFFD.
	ReplaceInvalidUTF8 InvalidUTF8Policy = iota

	// RejectInvalidUTF8 fails the conversion with ErrInvalidUTF8.
	RejectInvalidUTF8
)

var validInvalidUTF8Policies = []InvalidUTF8Policy{
	ReplaceInvalidUTF8,
	RejectInvalidUTF8,
}

func (p InvalidUTF8Policy) String() string {
	switch p {
	case ReplaceInvalidUTF8:
		return "replace"
	case RejectInvalidUTF8:
		return "reject"
	}
	return "unknown"
}

// UnmarshalYAML unmarshals an invalid UTF-8 policy from its string form.
func (p *InvalidUTF8Policy) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var str string
	if err := unmarshal(&str); err != nil {
		return err
	}
	for _, valid := range validInvalidUTF8Policies {
		if valid.String() == str {
			*p = valid
			return nil
		}
	}
	return fmt.Errorf("invalid utf8 policy %s, valid policies are %v", str, validInvalidUTF8Policies)
}

// Options provide a set of converter options.
type Options struct {
	instrumentOpts    instrument.Options
	bufferAllocator   BufferAllocator
	copyDataMode      xbytes.CopyDataMode
	invalidUTF8Policy InvalidUTF8Policy
	maxBufferSize     int
}

// NewOptions creates a new set of converter options.
func NewOptions() *Options {
	return &Options{
		instrumentOpts:    instrument.NewOptions(),
		bufferAllocator:   HeapAllocator,
		copyDataMode:      defaultCopyDataMode,
		invalidUTF8Policy: defaultInvalidUTF8Policy,
		maxBufferSize:     defaultMaxBufferSize,
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

// SetBufferAllocator sets the allocator for fill buffers.
func (o *Options) SetBufferAllocator(v BufferAllocator) *Options {
	opts := *o
	opts.bufferAllocator = v
	return &opts
}

// BufferAllocator returns the allocator for fill buffers.
func (o *Options) BufferAllocator() BufferAllocator {
	return o.bufferAllocator
}

// SetCopyDataMode sets whether the converted string copies the fill buffer.
// With DontCopyData the buffer is handed over to the string and never
// returned to the allocator.
func (o *Options) SetCopyDataMode(v xbytes.CopyDataMode) *Options {
	opts := *o
	opts.copyDataMode = v
	return &opts
}

// CopyDataMode returns whether the converted string copies the fill buffer.
func (o *Options) CopyDataMode() xbytes.CopyDataMode {
	return o.copyDataMode
}

// SetInvalidUTF8Policy sets the invalid UTF-8 policy.
func (o *Options) SetInvalidUTF8Policy(v InvalidUTF8Policy) *Options {
	opts := *o
	opts.invalidUTF8Policy = v
	return &opts
}

// InvalidUTF8Policy returns the invalid UTF-8 policy.
func (o *Options) InvalidUTF8Policy() InvalidUTF8Policy {
	return o.invalidUTF8Policy
}

// SetMaxBufferSize sets the largest fill buffer, terminator included,
// the converter allocates.
func (o *Options) SetMaxBufferSize(v int) *Options {
	opts := *o
	opts.maxBufferSize = v
	return &opts
}

// MaxBufferSize returns the largest fill buffer the converter allocates.
func (o *Options) MaxBufferSize() int {
	return o.maxBufferSize
}
