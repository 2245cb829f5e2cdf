//go:build !darwin || !cgo

package objc

import (
	"github.com/xichen2020/objcstr/foundation"

	"github.com/m3db/m3x/instrument"
)

// Runtime is unavailable on this platform.
type Runtime struct {
	foundation.Runtime
}

// NewRuntime returns ErrUnsupportedPlatform.
func NewRuntime(instrumentOpts instrument.Options) (*Runtime, error) {
	return nil, ErrUnsupportedPlatform
}
