//go:build darwin && cgo

package objc

/*
#cgo CFLAGS: -x objective-c -fno-objc-arc
#cgo LDFLAGS: -framework Foundation
#include <stdlib.h>
#include <objc/runtime.h>
#include <objc/message.h>

extern void *objc_autoreleasePoolPush(void);
extern void objc_autoreleasePoolPop(void *pool);

static id objcstr_new_string(const char *s, unsigned long n) {
	id cls = (id)objc_getClass("NSString");
	id obj = ((id (*)(id, SEL))objc_msgSend)(cls, sel_registerName("alloc"));
	return ((id (*)(id, SEL, const void *, unsigned long, unsigned long))objc_msgSend)(
		obj, sel_registerName("initWithBytes:length:encoding:"), s, n, 4);
}

static void objcstr_retain(id obj) {
	((id (*)(id, SEL))objc_msgSend)(obj, sel_registerName("retain"));
}

static void objcstr_release(id obj) {
	((void (*)(id, SEL))objc_msgSend)(obj, sel_registerName("release"));
}

static unsigned long objcstr_length_of_bytes(id obj, unsigned long enc) {
	return ((unsigned long (*)(id, SEL, unsigned long))objc_msgSend)(
		obj, sel_registerName("lengthOfBytesUsingEncoding:"), enc);
}

static int objcstr_get_cstring(id obj, char *buf, unsigned long max, unsigned long enc) {
	return ((BOOL (*)(id, SEL, char *, unsigned long, unsigned long))objc_msgSend)(
		obj, sel_registerName("getCString:maxLength:encoding:"), buf, max, enc) ? 1 : 0;
}

static const char *objcstr_utf8_string(id obj) {
	return ((const char *(*)(id, SEL))objc_msgSend)(obj, sel_registerName("UTF8String"));
}
*/
import "C"

import (
	"unsafe"

	"github.com/xichen2020/objcstr/foundation"

	"github.com/m3db/m3x/instrument"
)

// Runtime is the Objective-C Foundation runtime.
type Runtime struct {
	instrumentOpts instrument.Options
}

var _ foundation.Runtime = (*Runtime)(nil)

// NewRuntime returns the Objective-C Foundation runtime.
func NewRuntime(instrumentOpts instrument.Options) (*Runtime, error) {
	if instrumentOpts == nil {
		instrumentOpts = instrument.NewOptions()
	}
	return &Runtime{instrumentOpts: instrumentOpts}, nil
}

// NewString creates an NSString from the UTF-8 bytes of s.
func (r *Runtime) NewString(s string) foundation.ID {
	cstr := C.CString(s)
	defer C.free(unsafe.Pointer(cstr))
	return toID(C.objcstr_new_string(cstr, C.ulong(len(s))))
}

// Retain sends retain to the object.
func (r *Runtime) Retain(id foundation.ID) {
	C.objcstr_retain(fromID(id))
}

// Release sends release to the object.
func (r *Runtime) Release(id foundation.ID) {
	C.objcstr_release(fromID(id))
}

// LengthOfBytes sends lengthOfBytesUsingEncoding: to the object.
func (r *Runtime) LengthOfBytes(id foundation.ID, enc foundation.Encoding) int {
	return int(C.objcstr_length_of_bytes(fromID(id), C.ulong(enc)))
}

// GetCString sends getCString:maxLength:encoding: to the object.
func (r *Runtime) GetCString(
	id foundation.ID,
	buf []byte,
	maxLength int,
	enc foundation.Encoding,
) bool {
	if len(buf) == 0 || maxLength <= 0 {
		return false
	}
	ok := C.objcstr_get_cstring(
		fromID(id),
		(*C.char)(unsafe.Pointer(&buf[0])),
		C.ulong(maxLength),
		C.ulong(enc),
	)
	return ok != 0
}

// UTF8String sends UTF8String to the object and returns a view of the
// autoreleased buffer without copying it. The view is sized by the UTF-8
// byte length of the object so embedded NUL characters are kept.
func (r *Runtime) UTF8String(id foundation.ID) []byte {
	obj := fromID(id)
	n := int(C.objcstr_length_of_bytes(obj, C.ulong(foundation.UTF8StringEncoding)))
	if n == 0 {
		return nil
	}
	p := C.objcstr_utf8_string(obj)
	if p == nil {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), n)
}

// PushAutoreleasePool pushes an autorelease pool on the current thread.
func (r *Runtime) PushAutoreleasePool() foundation.PoolToken {
	return foundation.PoolToken(uintptr(C.objc_autoreleasePoolPush()))
}

// PopAutoreleasePool pops the autorelease pool on the current thread.
func (r *Runtime) PopAutoreleasePool(token foundation.PoolToken) {
	C.objc_autoreleasePoolPop(unsafe.Pointer(uintptr(token)))
}

func toID(obj C.id) foundation.ID {
	return foundation.ID(uintptr(unsafe.Pointer(obj)))
}

func fromID(id foundation.ID) C.id {
	return C.id(unsafe.Pointer(uintptr(id)))
}
