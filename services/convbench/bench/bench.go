// Package bench runs conversion strategies in a loop against a runtime and
// reports throughput along with the foreign temporaries each strategy
// leaves behind.
package bench

import (
	"fmt"
	"time"

	"github.com/xichen2020/objcstr/convert"
	"github.com/xichen2020/objcstr/foundation"
	"github.com/xichen2020/objcstr/foundation/sim"
)

// LeakTracker is implemented by runtimes that account for autoreleased
// temporaries.
type LeakTracker interface {
	// Stats returns a snapshot of the runtime objects.
	Stats() sim.Stats

	// DrainAmbientPool releases objects autoreleased outside any pool.
	DrainAmbientPool() int
}

// Result is the outcome of running a strategy.
type Result struct {
	Strategy   convert.Strategy
	Iterations int
	Mismatches int
	Bytes      int64
	Duration   time.Duration

	// Leaked is the number of temporaries left autoreleased outside any
	// pool, or -1 if the runtime does not track them.
	Leaked int
}

// Throughput returns the conversions per second.
func (r Result) Throughput() float64 {
	return float64(r.Iterations) / r.Duration.Seconds()
}

// BytesThroughput returns the converted bytes per second.
func (r Result) BytesThroughput() float64 {
	return float64(r.Bytes) / r.Duration.Seconds()
}

func (r Result) String() string {
	return fmt.Sprintf(
		"%s: %d conversions in %v (%.0f conversions / s, %.0f bytes / s), %d mismatches, %d leaked",
		r.Strategy, r.Iterations, r.Duration, r.Throughput(), r.BytesThroughput(), r.Mismatches, r.Leaked,
	)
}

// Run constructs a foreign string from input and converts it back with the
// given strategy, iterations times. Leaked temporaries are counted and then
// drained so that runs do not affect each other.
func Run(
	rt foundation.Runtime,
	converter *convert.Converter,
	strategy convert.Strategy,
	input string,
	iterations int,
) Result {
	tracker, tracked := rt.(LeakTracker)
	var before int
	if tracked {
		before = tracker.Stats().AmbientAutoreleased
	}

	res := Result{Strategy: strategy, Iterations: iterations, Leaked: -1}
	start := time.Now()
	for i := 0; i < iterations; i++ {
		s := foundation.NewString(rt, input)
		out := converter.Convert(strategy, s)
		if out != input {
			res.Mismatches++
		}
		res.Bytes += int64(len(out))
		s.Release()
	}
	res.Duration = time.Since(start)

	if tracked {
		res.Leaked = tracker.Stats().AmbientAutoreleased - before
		tracker.DrainAmbientPool()
	}
	return res
}
