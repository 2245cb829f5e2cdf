package pool

import (
	"fmt"
	"sort"

	xbytes "github.com/xichen2020/objcstr/x/bytes"

	"github.com/uber-go/tally"
)

// BytesBucket specifies a bucket.
type BytesBucket struct {
	// Capacity is the capacity of each buffer in the bucket.
	Capacity int

	// Count is the number of fixed buffers in the bucket.
	Count int

	// Options is an optional override to specify options to use for a bucket,
	// specify nil to use the options specified to the bucketized pool
	// constructor for this bucket.
	Options *BytesPoolOptions
}

type bytesBucketByCapacity []BytesBucket

func (x bytesBucketByCapacity) Len() int           { return len(x) }
func (x bytesBucketByCapacity) Swap(i, j int)      { x[i], x[j] = x[j], x[i] }
func (x bytesBucketByCapacity) Less(i, j int) bool { return x[i].Capacity < x[j].Capacity }

type bytesBucketPool struct {
	capacity int
	pool     *BytesPool
}

// BucketizedBytesPool is a pool of byte buffers bucketized by capacity.
// Buffers handed out by Get are zeroed and have the requested length.
type BucketizedBytesPool struct {
	sizesAsc          []BytesBucket
	buckets           []bytesBucketPool
	maxBucketCapacity int
	opts              *BytesPoolOptions
	alloc             func(capacity int) []byte
	maxAlloc          tally.Counter
}

// NewBucketizedBytesPool creates a bucketized bytes pool.
func NewBucketizedBytesPool(sizes []BytesBucket, opts *BytesPoolOptions) *BucketizedBytesPool {
	if opts == nil {
		opts = NewBytesPoolOptions()
	}

	sizesAsc := make([]BytesBucket, len(sizes))
	copy(sizesAsc, sizes)
	sort.Sort(bytesBucketByCapacity(sizesAsc))

	var maxBucketCapacity int
	if len(sizesAsc) != 0 {
		maxBucketCapacity = sizesAsc[len(sizesAsc)-1].Capacity
	}

	return &BucketizedBytesPool{
		opts:              opts,
		sizesAsc:          sizesAsc,
		maxBucketCapacity: maxBucketCapacity,
		maxAlloc:          opts.InstrumentOptions().MetricsScope().Counter("alloc-max"),
	}
}

// Init initializes the bucketized pool.
func (p *BucketizedBytesPool) Init(alloc func(capacity int) []byte) {
	buckets := make([]bytesBucketPool, len(p.sizesAsc))
	for i := range p.sizesAsc {
		size := p.sizesAsc[i].Count
		capacity := p.sizesAsc[i].Capacity

		opts := p.opts
		if perBucketOpts := p.sizesAsc[i].Options; perBucketOpts != nil {
			opts = perBucketOpts
		}

		opts = opts.SetSize(size)
		iOpts := opts.InstrumentOptions()
		opts = opts.SetInstrumentOptions(iOpts.SetMetricsScope(iOpts.MetricsScope().Tagged(map[string]string{
			"bucket-capacity": fmt.Sprintf("%d", capacity),
		})))

		buckets[i].capacity = capacity
		buckets[i].pool = NewBytesPool(opts)
		buckets[i].pool.Init(func() []byte {
			return alloc(capacity)
		})
	}
	p.buckets = buckets
	p.alloc = alloc
}

// Get returns a zeroed buffer of length size.
func (p *BucketizedBytesPool) Get(size int) []byte {
	return p.resize(p.get(size), size)
}

func (p *BucketizedBytesPool) get(size int) []byte {
	if size > p.maxBucketCapacity {
		p.maxAlloc.Inc(1)
		return p.alloc(size)
	}
	for i := range p.buckets {
		if p.buckets[i].capacity >= size {
			return p.buckets[i].pool.Get()
		}
	}
	return p.alloc(size)
}

func (p *BucketizedBytesPool) resize(b []byte, size int) []byte {
	b = xbytes.EnsureBufferSize(b[:cap(b)], size, xbytes.DontCopyData)[:size]
	xbytes.Zero(b)
	return b
}

// Put returns a buffer to the pool. Buffers larger than the
// largest bucket are left to the garbage collector.
func (p *BucketizedBytesPool) Put(b []byte) {
	capacity := cap(b)
	if capacity > p.maxBucketCapacity {
		return
	}

	for i := len(p.buckets) - 1; i >= 0; i-- {
		if capacity >= p.buckets[i].capacity {
			p.buckets[i].pool.Put(b)
			return
		}
	}
}
