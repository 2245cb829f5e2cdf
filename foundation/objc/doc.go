// Package objc binds foundation.Runtime to the Objective-C runtime and
// Foundation's NSString through cgo. It is only functional on darwin with
// cgo enabled; elsewhere NewRuntime returns ErrUnsupportedPlatform.
package objc

import "errors"

// ErrUnsupportedPlatform is returned when the Objective-C runtime is unavailable.
var ErrUnsupportedPlatform = errors.New("objc: Objective-C runtime requires darwin with cgo")
