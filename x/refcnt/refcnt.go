package refcnt

import (
	"fmt"
	"sync/atomic"
)

// RefCountable is an object that is reference counted.
type RefCountable interface {
	// IncRef increments the reference count.
	IncRef() int32

	// DecRef decrements the reference count.
	// When the reference count goes to zero,
	// an optional callback is executed.
	DecRef() int32

	// RefCount returns the current reference count.
	RefCount() int32
}

// OnZeroRefCountFn is a callback that gets called when the reference
// count of an object goes to zero.
type OnZeroRefCountFn func()

// RefCounter is a reference counter.
type RefCounter struct {
	n                int32
	onZeroRefCountFn OnZeroRefCountFn
}

// NewRefCounter creates a new reference counter, with an initial
// refcount of 1.
func NewRefCounter() *RefCounter {
	return &RefCounter{n: 1}
}

// NewRefCounterWithCallback creates a new reference counter with an initial
// refcount of 1 that invokes fn once the count drops to zero.
func NewRefCounterWithCallback(fn OnZeroRefCountFn) *RefCounter {
	return &RefCounter{n: 1, onZeroRefCountFn: fn}
}

// IncRef increments the ref count. Reviving a counter that already
// dropped to zero is invalid.
func (c *RefCounter) IncRef() int32 {
	n := atomic.AddInt32(&c.n, 1)
	if n > 1 {
		return n
	}
	panic(fmt.Errorf("invalid ref count %d", n))
}

// DecRef decrements the ref count, and optionally executes the
// callback where applicable.
func (c *RefCounter) DecRef() int32 {
	n := atomic.AddInt32(&c.n, -1)
	if n > 0 {
		return n
	}
	if n == 0 {
		if c.onZeroRefCountFn != nil {
			c.onZeroRefCountFn()
		}
		return n
	}
	panic(fmt.Errorf("invalid ref count %d", n))
}

// RefCount returns the current reference count.
func (c *RefCounter) RefCount() int32 {
	return atomic.LoadInt32(&c.n)
}
