// Package foundation describes the contract this module relies on from a
// reference counted Foundation runtime, and wraps foreign string objects in
// handles whose lifetime is checked on every use.
package foundation

// Encoding identifies a byte representation of string content.
type Encoding uint

// Foundation string encodings used by this module.
const (
	ASCIIStringEncoding Encoding = 1
	UTF8StringEncoding  Encoding = 4
)

func (e Encoding) String() string {
	switch e {
	case ASCIIStringEncoding:
		return "ascii"
	case UTF8StringEncoding:
		return "utf8"
	}
	return "unknown"
}

// ID is an opaque reference to an object owned by the foreign runtime.
type ID uintptr

// Nil is the nil object reference.
const Nil ID = 0

// PoolToken marks an autorelease pool pushed onto the calling thread.
type PoolToken uintptr

// Runtime is a reference counted foreign runtime that owns string objects.
type Runtime interface {
	// NewString creates a string object with the content of s. The caller
	// owns the returned reference.
	NewString(s string) ID

	// Retain increments the reference count of the object.
	Retain(id ID)

	// Release decrements the reference count of the object, deallocating
	// it when the count reaches zero.
	Release(id ID)

	// LengthOfBytes returns the number of bytes needed to store the content
	// in the given encoding, excluding the terminator. It returns 0 for empty
	// content and for content that cannot be represented in the encoding.
	LengthOfBytes(id ID, enc Encoding) int

	// GetCString writes at most maxLength-1 content bytes in the given encoding
	// followed by a NUL terminator into buf, and reports whether it succeeded.
	GetCString(id ID, buf []byte, maxLength int, enc Encoding) bool

	// UTF8String returns a borrowed view of the UTF-8 content. The view is
	// backed by a temporary object autoreleased into the innermost pool of
	// the calling thread and becomes invalid once that pool is popped.
	UTF8String(id ID) []byte

	// PushAutoreleasePool pushes a new autorelease pool on the calling thread.
	PushAutoreleasePool() PoolToken

	// PopAutoreleasePool pops the pool identified by token, and any pool
	// pushed after it, releasing every object autoreleased into them.
	PopAutoreleasePool(token PoolToken)
}
