package pool

import (
	"errors"
	"math"
	"sync/atomic"

	"github.com/m3db/m3x/instrument"
	"github.com/uber-go/tally"
)

const (
	defaultBytesPoolSize = 4096
)

// BytesPoolOptions provide a set of options for the bytes pool.
type BytesPoolOptions struct {
	instrumentOpts      instrument.Options
	size                int
	refillLowWatermark  float64
	refillHighWatermark float64
}

// NewBytesPoolOptions create a new set of bytes pool options.
func NewBytesPoolOptions() *BytesPoolOptions {
	return &BytesPoolOptions{
		instrumentOpts: instrument.NewOptions(),
		size:           defaultBytesPoolSize,
	}
}

// SetInstrumentOptions sets the instrument options.
func (o *BytesPoolOptions) SetInstrumentOptions(v instrument.Options) *BytesPoolOptions {
	opts := *o
	opts.instrumentOpts = v
	return &opts
}

// InstrumentOptions returns the instrument options.
func (o *BytesPoolOptions) InstrumentOptions() instrument.Options {
	return o.instrumentOpts
}

// SetSize sets the pool size.
func (o *BytesPoolOptions) SetSize(v int) *BytesPoolOptions {
	opts := *o
	opts.size = v
	return &opts
}

// Size returns pool size.
func (o *BytesPoolOptions) Size() int { return o.size }

// SetRefillLowWatermark sets the low watermark for refilling the pool.
func (o *BytesPoolOptions) SetRefillLowWatermark(v float64) *BytesPoolOptions {
	opts := *o
	opts.refillLowWatermark = v
	return &opts
}

// RefillLowWatermark returns the low watermark for refilling the pool.
func (o *BytesPoolOptions) RefillLowWatermark() float64 { return o.refillLowWatermark }

// SetRefillHighWatermark sets the high watermark for refilling the pool.
func (o *BytesPoolOptions) SetRefillHighWatermark(v float64) *BytesPoolOptions {
	opts := *o
	opts.refillHighWatermark = v
	return &opts
}

// RefillHighWatermark returns the high watermark for stop refilling the pool.
func (o *BytesPoolOptions) RefillHighWatermark() float64 { return o.refillHighWatermark }

type bytesPoolMetrics struct {
	free       tally.Gauge
	total      tally.Gauge
	getOnEmpty tally.Counter
	putOnFull  tally.Counter
}

func newBytesPoolMetrics(m tally.Scope) bytesPoolMetrics {
	return bytesPoolMetrics{
		free:       m.Gauge("free"),
		total:      m.Gauge("total"),
		getOnEmpty: m.Counter("get-on-empty"),
		putOnFull:  m.Counter("put-on-full"),
	}
}

// BytesPool is a pool of fixed capacity byte buffers.
type BytesPool struct {
	buffers             chan []byte
	alloc               func() []byte
	size                int
	refillLowWatermark  int
	refillHighWatermark int
	filling             int32
	initialized         int32
	dice                int32
	metrics             bytesPoolMetrics
}

// NewBytesPool creates a new pool.
func NewBytesPool(opts *BytesPoolOptions) *BytesPool {
	if opts == nil {
		opts = NewBytesPoolOptions()
	}

	p := &BytesPool{
		buffers: make(chan []byte, opts.Size()),
		size:    opts.Size(),
		refillLowWatermark: int(math.Ceil(
			opts.RefillLowWatermark() * float64(opts.Size()))),
		refillHighWatermark: int(math.Ceil(
			opts.RefillHighWatermark() * float64(opts.Size()))),
		metrics: newBytesPoolMetrics(opts.InstrumentOptions().MetricsScope()),
	}

	p.setGauges()

	return p
}

// Init initializes the pool.
func (p *BytesPool) Init(alloc func() []byte) {
	if !atomic.CompareAndSwapInt32(&p.initialized, 0, 1) {
		panic(errors.New("pool is already initialized"))
	}

	p.alloc = alloc

	for i := 0; i < cap(p.buffers); i++ {
		p.buffers <- p.alloc()
	}

	p.setGauges()
}

// Get gets a buffer from the pool. The buffer has zero length and
// its capacity is determined by the allocation function.
func (p *BytesPool) Get() []byte {
	if atomic.LoadInt32(&p.initialized) != 1 {
		panic(errors.New("get before pool is initialized"))
	}

	var b []byte
	select {
	case b = <-p.buffers:
	default:
		b = p.alloc()
		p.metrics.getOnEmpty.Inc(1)
	}

	p.trySetGauges()

	if p.refillLowWatermark > 0 && len(p.buffers) <= p.refillLowWatermark {
		p.tryFill()
	}

	return b[:0]
}

// Put returns a buffer to pool.
func (p *BytesPool) Put(b []byte) {
	if atomic.LoadInt32(&p.initialized) != 1 {
		panic(errors.New("put before pool is initialized"))
	}

	select {
	case p.buffers <- b[:0]:
	default:
		p.metrics.putOnFull.Inc(1)
	}

	p.trySetGauges()
}

func (p *BytesPool) trySetGauges() {
	if atomic.AddInt32(&p.dice, 1)%100 == 0 {
		p.setGauges()
	}
}

func (p *BytesPool) setGauges() {
	p.metrics.free.Update(float64(len(p.buffers)))
	p.metrics.total.Update(float64(p.size))
}

func (p *BytesPool) tryFill() {
	if !atomic.CompareAndSwapInt32(&p.filling, 0, 1) {
		return
	}

	go func() {
		defer atomic.StoreInt32(&p.filling, 0)

		for len(p.buffers) < p.refillHighWatermark {
			select {
			case p.buffers <- p.alloc():
			default:
				return
			}
		}
	}()
}
