package unsafe

import (
	"unsafe"
)

// ToString converts a byte slice to a string with zero allocation.
// NB: The byte slice is fully owned by the string returned and must not be mutated
// or returned to a pool afterwards.
// Adapted from https://golang.org/src/strings/builder.go#46.
func ToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}
