package convert

import (
	xbytes "github.com/xichen2020/objcstr/x/bytes"
	"github.com/xichen2020/objcstr/x/safe"
	"github.com/xichen2020/objcstr/x/unsafe"
)

// BufferAllocator allocates and frees the transient buffers filled by
// the foreign runtime.
type BufferAllocator interface {
	// Get returns a zeroed buffer of length size.
	Get(size int) []byte

	// Put frees a buffer previously returned by Get.
	Put(b []byte)
}

type heapAllocator struct{}

func (heapAllocator) Get(size int) []byte { return make([]byte, size) }
func (heapAllocator) Put([]byte)          {}

// HeapAllocator allocates buffers on the Go heap and leaves freeing
// to the garbage collector.
var HeapAllocator BufferAllocator = heapAllocator{}

// ownedBuffer exclusively owns a buffer from an allocator. The buffer is
// returned to the allocator by Free unless ownership moved to a string.
type ownedBuffer struct {
	alloc BufferAllocator
	buf   []byte
}

func newOwnedBuffer(alloc BufferAllocator, size int) ownedBuffer {
	return ownedBuffer{alloc: alloc, buf: alloc.Get(size)}
}

func (b *ownedBuffer) Bytes() []byte { return b.buf }

// Content returns the n content bytes preceding the terminator, or
// false if the terminator is not where it should be.
func (b *ownedBuffer) Content(n int) ([]byte, bool) {
	if n < 0 || n >= len(b.buf) || b.buf[n] != 0 {
		return nil, false
	}
	return b.buf[:n], true
}

// ToString converts the first n bytes into a string. With DontCopyData the
// string takes over the buffer, and Free becomes a no-op.
func (b *ownedBuffer) ToString(n int, mode xbytes.CopyDataMode) string {
	if n == 0 {
		return ""
	}
	if mode == xbytes.CopyData {
		return safe.ToString(b.buf[:n])
	}
	s := unsafe.ToString(b.buf[:n])
	b.buf = nil
	return s
}

// Free returns the buffer to the allocator if it is still owned.
func (b *ownedBuffer) Free() {
	if b.buf == nil {
		return
	}
	b.alloc.Put(b.buf)
	b.buf = nil
}
