package foundation

import (
	"errors"
	"fmt"

	"github.com/xichen2020/objcstr/x/refcnt"
)

var (
	// ErrUseAfterRelease is raised when a released string handle is used.
	ErrUseAfterRelease = errors.New("foundation: string used after release")

	errNilObject = errors.New("foundation: runtime returned nil object")
)

// String is a handle to a foreign string object. Every reference held
// through the handle is mirrored by a foreign reference, and the handle
// asserts it is still alive before every call into the runtime.
type String struct {
	rt  Runtime
	id  ID
	cnt *refcnt.RefCounter
}

// NewString creates a foreign string with the content of s and returns
// a handle owning a single reference to it.
func NewString(rt Runtime, s string) *String {
	id := rt.NewString(s)
	if id == Nil {
		panic(errNilObject)
	}
	return WrapString(rt, id)
}

// WrapString takes ownership of an already retained foreign string object.
func WrapString(rt Runtime, id ID) *String {
	return &String{rt: rt, id: id, cnt: refcnt.NewRefCounter()}
}

// Runtime returns the runtime owning the string.
func (s *String) Runtime() Runtime { return s.rt }

// ID returns the foreign object reference.
func (s *String) ID() ID {
	s.mustBeValid()
	return s.id
}

// Valid returns true if the handle still holds a reference to the object.
func (s *String) Valid() bool { return s.cnt.RefCount() > 0 }

// RefCount returns the number of references held through this handle.
func (s *String) RefCount() int32 { return s.cnt.RefCount() }

// Retain keeps the foreign object alive until a matching Release.
func (s *String) Retain() *String {
	s.mustBeValid()
	s.cnt.IncRef()
	s.rt.Retain(s.id)
	return s
}

// Release drops a reference. The handle becomes invalid once the last
// reference held through it is dropped.
func (s *String) Release() {
	s.mustBeValid()
	s.cnt.DecRef()
	s.rt.Release(s.id)
}

// LengthOfBytes returns the byte length of the content in enc, excluding
// the terminator.
func (s *String) LengthOfBytes(enc Encoding) int {
	s.mustBeValid()
	return s.rt.LengthOfBytes(s.id, enc)
}

// GetCString fills buf with the content in enc followed by a terminator.
func (s *String) GetCString(buf []byte, maxLength int, enc Encoding) bool {
	s.mustBeValid()
	if maxLength > len(buf) {
		panic(fmt.Errorf("foundation: max length %d exceeds buffer size %d", maxLength, len(buf)))
	}
	return s.rt.GetCString(s.id, buf, maxLength, enc)
}

// UTF8String returns a borrowed view of the UTF-8 content. See
// Runtime.UTF8String for the lifetime of the view.
func (s *String) UTF8String() []byte {
	s.mustBeValid()
	return s.rt.UTF8String(s.id)
}

func (s *String) mustBeValid() {
	if !s.Valid() {
		panic(ErrUseAfterRelease)
	}
}
