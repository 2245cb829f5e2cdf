package foundation

import "runtime"

// WithAutoreleasePool runs fn inside a fresh autorelease pool. Temporaries
// autoreleased by fn are released when fn returns or panics. The calling
// goroutine is locked to its OS thread for the duration of the scope since
// pools belong to the thread that pushed them.
func WithAutoreleasePool(rt Runtime, fn func()) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	token := rt.PushAutoreleasePool()
	defer rt.PopAutoreleasePool(token)

	fn()
}
