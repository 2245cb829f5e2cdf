package pool

import "github.com/m3db/m3x/instrument"

// BytesPoolWatermarkConfiguration contains watermark configuration for pools.
type BytesPoolWatermarkConfiguration struct {
	// The low watermark to start refilling the pool, if zero none.
	RefillLowWatermark float64 `yaml:"low" validate:"min=0.0,max=1.0"`

	// The high watermark to stop refilling the pool, if zero none.
	RefillHighWatermark float64 `yaml:"high" validate:"min=0.0,max=1.0"`
}

// BytesPoolBucketConfiguration contains configuration for a pool bucket.
type BytesPoolBucketConfiguration struct {
	// The count of the buffers in the bucket.
	Count int `yaml:"count"`

	// The capacity of each buffer in the bucket.
	Capacity int `yaml:"capacity"`
}

// NewBucket creates a new bucket.
func (c *BytesPoolBucketConfiguration) NewBucket() BytesBucket {
	return BytesBucket{
		Capacity: c.Capacity,
		Count:    c.Count,
	}
}

// BucketizedBytesPoolConfiguration contains configuration for bucketized pools.
type BucketizedBytesPoolConfiguration struct {
	// The pool bucket configuration.
	Buckets []BytesPoolBucketConfiguration `yaml:"buckets"`

	// The watermark configuration.
	Watermark BytesPoolWatermarkConfiguration `yaml:"watermark"`
}

// NewPoolOptions creates a new set of pool options.
func (c *BucketizedBytesPoolConfiguration) NewPoolOptions(
	instrumentOptions instrument.Options,
) *BytesPoolOptions {
	return NewBytesPoolOptions().
		SetInstrumentOptions(instrumentOptions).
		SetRefillLowWatermark(c.Watermark.RefillLowWatermark).
		SetRefillHighWatermark(c.Watermark.RefillHighWatermark)
}

// NewBuckets create a new list of buckets.
func (c *BucketizedBytesPoolConfiguration) NewBuckets() []BytesBucket {
	buckets := make([]BytesBucket, 0, len(c.Buckets))
	for _, bconfig := range c.Buckets {
		bucket := bconfig.NewBucket()
		buckets = append(buckets, bucket)
	}
	return buckets
}

// NewPool creates and initializes a bucketized bytes pool from configuration.
func (c *BucketizedBytesPoolConfiguration) NewPool(
	instrumentOptions instrument.Options,
) *BucketizedBytesPool {
	p := NewBucketizedBytesPool(c.NewBuckets(), c.NewPoolOptions(instrumentOptions))
	p.Init(func(capacity int) []byte { return make([]byte, 0, capacity) })
	return p
}
