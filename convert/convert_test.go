package convert

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/xichen2020/objcstr/foundation"
	"github.com/xichen2020/objcstr/foundation/sim"
	xbytes "github.com/xichen2020/objcstr/x/bytes"
	"github.com/xichen2020/objcstr/x/pool"

	xerrors "github.com/m3db/m3x/errors"
	"github.com/m3db/m3x/instrument"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"
)

var testInputs = []string{
	"",
	"a",
	"aaa🍺",
	"aaaЫбbbb",
	"aaa\ue0b0bbb🍺Ыض",
	"aé€🍺",
	"日本語のテキスト",
	"a\x00b",
}

type countingAllocator struct {
	gets int
	puts int
}

func (a *countingAllocator) Get(size int) []byte {
	a.gets++
	return make([]byte, size)
}

func (a *countingAllocator) Put([]byte) { a.puts++ }

func TestRoundTrip(t *testing.T) {
	rt := sim.NewRuntime(nil)
	for _, input := range testInputs {
		s := foundation.NewString(rt, input)
		require.Equal(t, input, ViaBuffer(s))
		require.Equal(t, input, ViaScope(s))

		res, err := TryViaBuffer(s)
		require.NoError(t, err)
		require.Equal(t, input, res)
		s.Release()
	}
	require.NoError(t, rt.Close())
}

func TestConvertEmoji(t *testing.T) {
	rt := sim.NewRuntime(nil)
	s := foundation.NewString(rt, "aaa🍺")
	defer s.Release()

	require.Equal(t, 7, s.LengthOfBytes(foundation.UTF8StringEncoding))
	require.Equal(t, "aaa🍺", ViaBuffer(s))
	require.Equal(t, "aaa🍺", ViaScope(s))
}

func TestConvertIsIdempotent(t *testing.T) {
	rt := sim.NewRuntime(nil)
	s := foundation.NewString(rt, "aaaЫбbbb")
	defer s.Release()

	for _, strategy := range ValidStrategies() {
		first := defaultConverter.Convert(strategy, s)
		second := defaultConverter.Convert(strategy, s)
		require.Equal(t, "aaaЫбbbb", first, strategy.String())
		require.Equal(t, first, second, strategy.String())
	}
	require.Equal(t, int32(1), s.RefCount())
}

func TestBorrowLeaksTemporaries(t *testing.T) {
	rt := sim.NewRuntime(nil)
	s := foundation.NewString(rt, "aaa🍺")

	for i := 0; i < 10; i++ {
		require.Equal(t, "aaa🍺", ViaBorrow(s))
	}
	stats := rt.Stats()
	require.Equal(t, 10, stats.AmbientAutoreleased)
	require.Equal(t, 11, stats.LiveObjects)

	require.Equal(t, 10, rt.DrainAmbientPool())
	s.Release()
	require.NoError(t, rt.Close())
}

func TestBorrowedStringDanglesAfterDrain(t *testing.T) {
	rt := sim.NewRuntime(nil)
	s := foundation.NewString(rt, "abc")
	defer s.Release()

	borrowed := ViaBorrow(s)
	scoped := ViaScope(s)
	rt.DrainAmbientPool()

	require.NotEqual(t, "abc", borrowed)
	require.Equal(t, "abc", scoped)
}

func TestScopeAndBufferDoNotLeak(t *testing.T) {
	rt := sim.NewRuntime(nil)
	s := foundation.NewString(rt, "aaaЫбbbb")

	for i := 0; i < 10; i++ {
		ViaScope(s)
		ViaBuffer(s)
	}
	stats := rt.Stats()
	require.Equal(t, 0, stats.AmbientAutoreleased)
	require.Equal(t, 0, stats.ScopedAutoreleased)
	require.Equal(t, 0, stats.PoolDepth)
	require.Equal(t, 1, stats.LiveObjects)
	require.Equal(t, int64(11), stats.Allocations)

	s.Release()
	require.NoError(t, rt.Close())
}

func TestViaBufferFillFailureFreesBufferOnce(t *testing.T) {
	opts := sim.NewOptions().SetFillFailureFn(func([]byte) bool { return true })
	rt := sim.NewRuntime(opts)
	s := foundation.NewString(rt, "aaa🍺")
	defer s.Release()

	alloc := &countingAllocator{}
	c := NewConverter(NewOptions().SetBufferAllocator(alloc))

	res, err := c.TryViaBuffer(s)
	require.Equal(t, ErrFillFailed, err)
	require.Equal(t, "", res)
	require.Equal(t, "", c.ViaBuffer(s))
	require.Equal(t, 2, alloc.gets)
	require.Equal(t, 2, alloc.puts)
}

func TestViaBufferOwnershipTransfer(t *testing.T) {
	rt := sim.NewRuntime(nil)
	s := foundation.NewString(rt, "aaa🍺")
	defer s.Release()

	alloc := &countingAllocator{}
	c := NewConverter(NewOptions().SetBufferAllocator(alloc))
	require.Equal(t, "aaa🍺", c.ViaBuffer(s))
	require.Equal(t, 1, alloc.gets)
	require.Equal(t, 0, alloc.puts)

	c = NewConverter(NewOptions().
		SetBufferAllocator(alloc).
		SetCopyDataMode(xbytes.CopyData))
	require.Equal(t, "aaa🍺", c.ViaBuffer(s))
	require.Equal(t, 2, alloc.gets)
	require.Equal(t, 1, alloc.puts)
}

func TestViaBufferEmptyStringFreesBuffer(t *testing.T) {
	rt := sim.NewRuntime(nil)
	s := foundation.NewString(rt, "")
	defer s.Release()

	alloc := &countingAllocator{}
	c := NewConverter(NewOptions().SetBufferAllocator(alloc))
	res, err := c.TryViaBuffer(s)
	require.NoError(t, err)
	require.Equal(t, "", res)
	require.Equal(t, 1, alloc.gets)
	require.Equal(t, 1, alloc.puts)
}

func TestViaBufferTooLarge(t *testing.T) {
	rt := sim.NewRuntime(nil)
	s := foundation.NewString(rt, "aaa🍺")
	defer s.Release()

	alloc := &countingAllocator{}
	c := NewConverter(NewOptions().
		SetBufferAllocator(alloc).
		SetMaxBufferSize(7))
	_, err := c.TryViaBuffer(s)
	require.Equal(t, ErrBufferTooLarge, err)
	require.Equal(t, 0, alloc.gets)

	c = NewConverter(NewOptions().SetMaxBufferSize(8))
	res, err := c.TryViaBuffer(s)
	require.NoError(t, err)
	require.Equal(t, "aaa🍺", res)
}

func TestViaBufferWithBytesPool(t *testing.T) {
	p := pool.NewBucketizedBytesPool([]pool.BytesBucket{
		{Capacity: 8, Count: 1},
		{Capacity: 64, Count: 1},
	}, nil)
	p.Init(func(capacity int) []byte { return make([]byte, 0, capacity) })

	rt := sim.NewRuntime(nil)
	c := NewConverter(NewOptions().
		SetBufferAllocator(p).
		SetCopyDataMode(xbytes.CopyData))
	for _, input := range testInputs {
		s := foundation.NewString(rt, input)
		require.Equal(t, input, c.ViaBuffer(s))
		require.Equal(t, input, c.ViaBuffer(s))
		s.Release()
	}
	require.NoError(t, rt.Close())
}

func TestConvertUseAfterReleasePanics(t *testing.T) {
	rt := sim.NewRuntime(nil)
	s := foundation.NewString(rt, "abc")
	s.Release()

	for _, strategy := range ValidStrategies() {
		require.PanicsWithValue(t, foundation.ErrUseAfterRelease, func() {
			defaultConverter.Convert(strategy, s)
		}, strategy.String())
	}
}

func TestConverterMetrics(t *testing.T) {
	scope := tally.NewTestScope("", nil)
	c := NewConverter(NewOptions().
		SetInstrumentOptions(instrument.NewOptions().SetMetricsScope(scope)))

	failing := map[string]bool{"fail": true}
	rt := sim.NewRuntime(sim.NewOptions().SetFillFailureFn(func(content []byte) bool {
		return failing[string(content)]
	}))
	ok := foundation.NewString(rt, "aaa🍺")
	fail := foundation.NewString(rt, "fail")
	defer ok.Release()
	defer fail.Release()

	c.ViaBuffer(ok)
	c.ViaBuffer(fail)
	c.ViaScope(ok)

	counters := make(map[string]int64)
	for _, counter := range scope.Snapshot().Counters() {
		counters[counter.Tags()["strategy"]+"."+counter.Name()] += counter.Value()
	}
	require.Equal(t, int64(1), counters["buffer.converter.success"])
	require.Equal(t, int64(7), counters["buffer.converter.bytes"])
	require.Equal(t, int64(1), counters["buffer.converter.fill-errors"])
	require.Equal(t, int64(1), counters["autorelease.converter.success"])
	require.Equal(t, int64(0), counters["borrow.converter.success"])
}

func TestConvertUnknownStrategyPanics(t *testing.T) {
	rt := sim.NewRuntime(nil)
	s := foundation.NewString(rt, "abc")
	defer s.Release()

	err := func() (err error) {
		defer func() { err = recover().(error) }()
		defaultConverter.Convert(Strategy(42), s)
		return nil
	}()
	require.True(t, xerrors.IsInvalidParams(err))
	require.Equal(t, int32(1), s.RefCount())
	require.Equal(t, 0, rt.Stats().AmbientAutoreleased)
}

func TestViaScopeConcurrent(t *testing.T) {
	rt := sim.NewRuntime(nil)

	var (
		wg         sync.WaitGroup
		mismatches int32
	)
	for i := 0; i < 8; i++ {
		input := fmt.Sprintf("aaa🍺 %d Ыб", i)
		wg.Add(1)
		go func() {
			defer wg.Done()

			s := foundation.NewString(rt, input)
			defer s.Release()
			for j := 0; j < 100; j++ {
				if ViaScope(s) != input {
					atomic.AddInt32(&mismatches, 1)
				}
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(0), mismatches)
	stats := rt.Stats()
	require.Equal(t, 0, stats.PoolDepth)
	require.Equal(t, 0, stats.ScopedAutoreleased)
	require.Equal(t, 0, stats.AmbientAutoreleased)
	require.NoError(t, rt.Close())
}
