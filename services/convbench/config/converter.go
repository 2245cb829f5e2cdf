package config

import (
	"github.com/xichen2020/objcstr/convert"
	xbytes "github.com/xichen2020/objcstr/x/bytes"
	"github.com/xichen2020/objcstr/x/pool"

	"github.com/m3db/m3x/instrument"
)

// ConverterConfiguration provides converter configuration.
type ConverterConfiguration struct {
	// Pool of fill buffers, buffers come from the heap if unset.
	BufferPool *pool.BucketizedBytesPoolConfiguration `yaml:"bufferPool"`

	// Whether converted strings copy the fill buffer.
	CopyDataMode *xbytes.CopyDataMode `yaml:"copyDataMode"`

	// How buffers that are not valid utf8 are decoded.
	InvalidUTF8Policy *convert.InvalidUTF8Policy `yaml:"invalidUTF8Policy"`

	// Largest fill buffer in bytes.
	MaxBufferSize *int `yaml:"maxBufferSize"`
}

// NewOptions creates a new set of converter options from configuration.
func (c *ConverterConfiguration) NewOptions(instrumentOpts instrument.Options) *convert.Options {
	opts := convert.NewOptions().SetInstrumentOptions(instrumentOpts)
	if c.BufferPool != nil {
		scope := instrumentOpts.MetricsScope()
		iOpts := instrumentOpts.SetMetricsScope(scope.SubScope("buffer-pool"))
		opts = opts.SetBufferAllocator(c.BufferPool.NewPool(iOpts))
		// Handing pooled buffers over to strings would drain the pool.
		opts = opts.SetCopyDataMode(xbytes.CopyData)
	}
	if c.CopyDataMode != nil {
		opts = opts.SetCopyDataMode(*c.CopyDataMode)
	}
	if c.InvalidUTF8Policy != nil {
		opts = opts.SetInvalidUTF8Policy(*c.InvalidUTF8Policy)
	}
	if c.MaxBufferSize != nil {
		opts = opts.SetMaxBufferSize(*c.MaxBufferSize)
	}
	return opts
}
