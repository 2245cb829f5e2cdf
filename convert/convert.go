// Package convert converts foreign Foundation strings into Go strings.
//
// Three strategies are provided. ViaBorrow reads the borrowed UTF-8 view
// without an autorelease pool, which leaks the temporary backing the view
// unless the caller drains an ambient pool, and is kept as a baseline.
// ViaScope copies the same view inside an autorelease pool. ViaBuffer asks
// the string to fill an owned buffer through getCString and never depends
// on autoreleased temporaries.
package convert

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/xichen2020/objcstr/foundation"
	"github.com/xichen2020/objcstr/x/safe"
	"github.com/xichen2020/objcstr/x/unsafe"

	xerrors "github.com/m3db/m3x/errors"
	"github.com/m3db/m3x/log"
	"github.com/uber-go/tally"
)

const (
	replacementChar = "\uFFFD"
)

var (
	// ErrFillFailed is returned when the foreign string could not be
	// rendered into the fill buffer.
	ErrFillFailed = errors.New("convert: foreign string could not fill the buffer")

	// ErrInvalidUTF8 is returned when the filled buffer is not valid UTF-8
	// and the converter rejects invalid content.
	ErrInvalidUTF8 = errors.New("convert: filled buffer is not valid utf8")

	// ErrBufferTooLarge is returned when the fill buffer would exceed the
	// configured maximum size.
	ErrBufferTooLarge = xerrors.NewInvalidParamsError(errors.New("convert: fill buffer exceeds max buffer size"))

	defaultConverter = NewConverter(nil)
)

// ViaBorrow converts s with the default converter. See Converter.ViaBorrow.
func ViaBorrow(s *foundation.String) string { return defaultConverter.ViaBorrow(s) }

// ViaScope converts s with the default converter. See Converter.ViaScope.
func ViaScope(s *foundation.String) string { return defaultConverter.ViaScope(s) }

// ViaBuffer converts s with the default converter. See Converter.ViaBuffer.
func ViaBuffer(s *foundation.String) string { return defaultConverter.ViaBuffer(s) }

// TryViaBuffer converts s with the default converter. See Converter.TryViaBuffer.
func TryViaBuffer(s *foundation.String) (string, error) { return defaultConverter.TryViaBuffer(s) }

type strategyMetrics struct {
	success      tally.Counter
	bytes        tally.Counter
	fillErrors   tally.Counter
	decodeErrors tally.Counter
	allocErrors  tally.Counter
}

func newStrategyMetrics(scope tally.Scope, strategy Strategy) strategyMetrics {
	subScope := scope.Tagged(map[string]string{"strategy": strategy.String()})
	return strategyMetrics{
		success:      subScope.Counter("success"),
		bytes:        subScope.Counter("bytes"),
		fillErrors:   subScope.Counter("fill-errors"),
		decodeErrors: subScope.Counter("decode-errors"),
		allocErrors:  subScope.Counter("alloc-errors"),
	}
}

func (m strategyMetrics) onSuccess(n int) {
	m.success.Inc(1)
	m.bytes.Inc(int64(n))
}

type converterMetrics struct {
	borrow      strategyMetrics
	autorelease strategyMetrics
	buffer      strategyMetrics
}

func newConverterMetrics(scope tally.Scope) converterMetrics {
	return converterMetrics{
		borrow:      newStrategyMetrics(scope, BorrowStrategy),
		autorelease: newStrategyMetrics(scope, AutoreleaseStrategy),
		buffer:      newStrategyMetrics(scope, BufferStrategy),
	}
}

// Converter converts foreign strings into Go strings. A converter holds
// no per call state and may be shared across goroutines as long as the
// runtime owning the strings allows it.
type Converter struct {
	opts    *Options
	logger  log.Logger
	metrics converterMetrics
}

// NewConverter creates a new converter.
func NewConverter(opts *Options) *Converter {
	if opts == nil {
		opts = NewOptions()
	}
	iOpts := opts.InstrumentOptions()
	return &Converter{
		opts:    opts,
		logger:  iOpts.Logger(),
		metrics: newConverterMetrics(iOpts.MetricsScope().SubScope("converter")),
	}
}

// Convert converts s using the given strategy. It panics on a strategy
// that is not one of ValidStrategies.
func (c *Converter) Convert(strategy Strategy, s *foundation.String) string {
	switch strategy {
	case BorrowStrategy:
		return c.ViaBorrow(s)
	case AutoreleaseStrategy:
		return c.ViaScope(s)
	case BufferStrategy:
		return c.ViaBuffer(s)
	}
	panic(xerrors.NewInvalidParamsError(fmt.Errorf("unknown conversion strategy %d", int(strategy))))
}

// ViaBorrow returns a string aliasing the borrowed UTF-8 view of s.
//
// NB: The view is backed by a temporary autoreleased into whatever pool is
// current. Without one the temporary is never reclaimed, and once the pool
// is drained the returned string points at freed memory.
func (c *Converter) ViaBorrow(s *foundation.String) string {
	s.Retain()
	defer s.Release()

	b := s.UTF8String()
	c.metrics.borrow.onSuccess(len(b))
	return unsafe.ToString(b)
}

// ViaScope copies the UTF-8 content of s inside an autorelease pool so the
// temporary backing the borrowed view is released before returning.
func (c *Converter) ViaScope(s *foundation.String) string {
	s.Retain()
	defer s.Release()

	var res string
	foundation.WithAutoreleasePool(s.Runtime(), func() {
		res = safe.ToString(s.UTF8String())
	})
	c.metrics.autorelease.onSuccess(len(res))
	return res
}

// ViaBuffer converts s through an owned buffer, returning the empty string
// if the conversion fails.
func (c *Converter) ViaBuffer(s *foundation.String) string {
	res, err := c.TryViaBuffer(s)
	if err != nil {
		return ""
	}
	return res
}

// TryViaBuffer queries the UTF-8 byte length of s, allocates a buffer one
// byte larger for the terminator, and has s fill it. The buffer is freed on
// every failure path.
func (c *Converter) TryViaBuffer(s *foundation.String) (string, error) {
	s.Retain()
	defer s.Release()

	m := c.metrics.buffer
	n := s.LengthOfBytes(foundation.UTF8StringEncoding)
	if n < 0 || n >= c.opts.MaxBufferSize() {
		m.allocErrors.Inc(1)
		c.logger.Debugf("refusing fill buffer for %d bytes, max buffer size is %d", n, c.opts.MaxBufferSize())
		return "", ErrBufferTooLarge
	}

	size := n + 1
	buf := newOwnedBuffer(c.opts.BufferAllocator(), size)
	defer buf.Free()

	if !s.GetCString(buf.Bytes(), size, foundation.UTF8StringEncoding) {
		m.fillErrors.Inc(1)
		c.logger.Debugf("getCString failed for %d bytes", n)
		return "", ErrFillFailed
	}
	content, ok := buf.Content(n)
	if !ok {
		m.fillErrors.Inc(1)
		c.logger.Debugf("getCString did not terminate %d bytes", n)
		return "", ErrFillFailed
	}

	if !utf8.Valid(content) {
		m.decodeErrors.Inc(1)
		if c.opts.InvalidUTF8Policy() == RejectInvalidUTF8 {
			return "", ErrInvalidUTF8
		}
		res := strings.ToValidUTF8(unsafe.ToString(content), replacementChar)
		m.onSuccess(len(res))
		return res, nil
	}

	res := buf.ToString(n, c.opts.CopyDataMode())
	m.onSuccess(n)
	return res, nil
}
