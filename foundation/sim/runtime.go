// Package sim provides an in-process Foundation runtime with reference
// counted string objects and autorelease pools. It accounts for every
// object it allocates so that leaks are observable on any platform.
//
// Like Foundation, every goroutine has its own stack of autorelease pools.
// Callers pin the goroutine to its thread for the lifetime of a pool, which
// foundation.WithAutoreleasePool does.
package sim

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/xichen2020/objcstr/foundation"
	"github.com/xichen2020/objcstr/x/refcnt"

	xerrors "github.com/m3db/m3x/errors"
	"github.com/m3db/m3x/log"
	"github.com/petermattis/goid"
	"github.com/uber-go/tally"
)

// Stats is a snapshot of the objects owned by the runtime.
type Stats struct {
	// LiveObjects is the number of objects not yet deallocated.
	LiveObjects int

	// ScopedAutoreleased is the number of objects waiting in pushed pools
	// across all goroutines.
	ScopedAutoreleased int

	// AmbientAutoreleased is the number of objects autoreleased while no
	// pool was pushed. They are only released by DrainAmbientPool.
	AmbientAutoreleased int

	// PoolDepth is the number of pushed pools across all goroutines.
	PoolDepth int

	// Allocations is the total number of objects ever allocated.
	Allocations int64
}

type object struct {
	id   foundation.ID
	data []byte
	cnt  *refcnt.RefCounter
}

type autoreleasePool struct {
	token   foundation.PoolToken
	objects []*object
}

type runtimeMetrics struct {
	allocations   tally.Counter
	deallocations tally.Counter
	poolPushes    tally.Counter
	poolPops      tally.Counter
	fillFailures  tally.Counter
	liveObjects   tally.Gauge
	ambient       tally.Gauge
}

func newRuntimeMetrics(scope tally.Scope) runtimeMetrics {
	return runtimeMetrics{
		allocations:   scope.Counter("allocations"),
		deallocations: scope.Counter("deallocations"),
		poolPushes:    scope.Counter("pool-pushes"),
		poolPops:      scope.Counter("pool-pops"),
		fillFailures:  scope.Counter("fill-failures"),
		liveObjects:   scope.Gauge("live-objects"),
		ambient:       scope.Gauge("ambient-autoreleased"),
	}
}

// Runtime is a simulated Foundation runtime.
type Runtime struct {
	sync.Mutex

	opts    *Options
	logger  log.Logger
	metrics runtimeMetrics

	lastID      foundation.ID
	lastToken   foundation.PoolToken
	objects     map[foundation.ID]*object
	pools       map[int64][]autoreleasePool
	poolOwners  map[foundation.PoolToken]int64
	ambient     []*object
	allocations int64
}

var _ foundation.Runtime = (*Runtime)(nil)

// NewRuntime creates a new simulated runtime.
func NewRuntime(opts *Options) *Runtime {
	if opts == nil {
		opts = NewOptions()
	}
	iOpts := opts.InstrumentOptions()
	return &Runtime{
		opts:    opts,
		logger:  iOpts.Logger(),
		metrics: newRuntimeMetrics(iOpts.MetricsScope()),
		objects:    make(map[foundation.ID]*object),
		pools:      make(map[int64][]autoreleasePool),
		poolOwners: make(map[foundation.PoolToken]int64),
	}
}

// NewString creates a string object. It returns foundation.Nil for content
// that is not valid UTF-8, as Foundation does.
func (r *Runtime) NewString(s string) foundation.ID {
	if !utf8.ValidString(s) {
		return foundation.Nil
	}
	r.Lock()
	defer r.Unlock()

	return r.allocLocked([]byte(s)).id
}

// Retain increments the reference count of the object.
func (r *Runtime) Retain(id foundation.ID) {
	r.Lock()
	defer r.Unlock()

	r.objectLocked(id).cnt.IncRef()
}

// Release decrements the reference count of the object.
func (r *Runtime) Release(id foundation.ID) {
	r.Lock()
	defer r.Unlock()

	r.objectLocked(id).cnt.DecRef()
}

// LengthOfBytes returns the byte length of the content in enc.
func (r *Runtime) LengthOfBytes(id foundation.ID, enc foundation.Encoding) int {
	r.Lock()
	defer r.Unlock()

	encoded, ok := encode(r.objectLocked(id).data, enc)
	if !ok {
		return 0
	}
	return len(encoded)
}

// GetCString fills buf with the content in enc followed by a NUL byte.
func (r *Runtime) GetCString(
	id foundation.ID,
	buf []byte,
	maxLength int,
	enc foundation.Encoding,
) bool {
	r.Lock()
	defer r.Unlock()

	encoded, ok := encode(r.objectLocked(id).data, enc)
	if !ok || len(encoded)+1 > maxLength || maxLength > len(buf) {
		r.metrics.fillFailures.Inc(1)
		return false
	}
	if fn := r.opts.FillFailureFn(); fn != nil && fn(encoded) {
		r.metrics.fillFailures.Inc(1)
		return false
	}
	n := copy(buf, encoded)
	buf[n] = 0
	return true
}

// UTF8String returns a view of the content backed by an autoreleased
// temporary object.
func (r *Runtime) UTF8String(id foundation.ID) []byte {
	r.Lock()
	defer r.Unlock()

	src := r.objectLocked(id).data
	data := make([]byte, len(src)+1)
	copy(data, src)
	tmp := r.allocLocked(data)
	r.autoreleaseLocked(tmp)
	return tmp.data[:len(src)]
}

// PushAutoreleasePool pushes a new autorelease pool onto the pool stack
// of the calling goroutine.
func (r *Runtime) PushAutoreleasePool() foundation.PoolToken {
	r.Lock()
	defer r.Unlock()

	gid := goid.Get()
	r.lastToken++
	r.pools[gid] = append(r.pools[gid], autoreleasePool{token: r.lastToken})
	r.poolOwners[r.lastToken] = gid
	r.metrics.poolPushes.Inc(1)
	return r.lastToken
}

// PopAutoreleasePool pops the pool identified by token along with every
// pool pushed after it. The pool must have been pushed by the calling
// goroutine.
func (r *Runtime) PopAutoreleasePool(token foundation.PoolToken) {
	r.Lock()
	defer r.Unlock()

	owner, exists := r.poolOwners[token]
	if !exists {
		panic(xerrors.NewInvalidParamsError(fmt.Errorf("unknown autorelease pool %d", token)))
	}
	gid := goid.Get()
	if owner != gid {
		panic(xerrors.NewInvalidParamsError(fmt.Errorf(
			"autorelease pool %d pushed by goroutine %d popped by goroutine %d", token, owner, gid,
		)))
	}

	stack := r.pools[gid]
	idx := len(stack) - 1
	for idx >= 0 && stack[idx].token != token {
		idx--
	}
	if nested := len(stack) - 1 - idx; nested > 0 {
		r.logger.Warnf("popping autorelease pool %d with %d nested pools still pushed", token, nested)
	}
	r.popLocked(gid, idx)
	r.updateGaugesLocked()
}

// DrainAmbientPool releases every object autoreleased while no pool was
// pushed, and returns how many were released.
func (r *Runtime) DrainAmbientPool() int {
	r.Lock()
	defer r.Unlock()

	n := r.drainAmbientLocked()
	r.logger.Debugf("drained %d objects from the ambient autorelease pool", n)
	return n
}

// Stats returns a snapshot of the runtime objects.
func (r *Runtime) Stats() Stats {
	r.Lock()
	defer r.Unlock()

	var scoped, depth int
	for _, stack := range r.pools {
		depth += len(stack)
		for _, p := range stack {
			scoped += len(p.objects)
		}
	}
	return Stats{
		LiveObjects:         len(r.objects),
		ScopedAutoreleased:  scoped,
		AmbientAutoreleased: len(r.ambient),
		PoolDepth:           depth,
		Allocations:         r.allocations,
	}
}

// Close pops the pools of every goroutine, drains the ambient pool, and
// returns an error for each object that is still alive afterwards.
func (r *Runtime) Close() error {
	r.Lock()
	defer r.Unlock()

	for gid := range r.pools {
		r.popLocked(gid, 0)
	}
	r.drainAmbientLocked()

	var multiErr xerrors.MultiError
	for id, obj := range r.objects {
		multiErr = multiErr.Add(fmt.Errorf(
			"object %d leaked with ref count %d and %d bytes", id, obj.cnt.RefCount(), len(obj.data),
		))
	}
	if !multiErr.Empty() {
		r.logger.Errorf("runtime closed with %d leaked objects", multiErr.NumErrors())
	}
	return multiErr.FinalError()
}

func (r *Runtime) allocLocked(data []byte) *object {
	r.lastID++
	obj := &object{id: r.lastID, data: data}
	obj.cnt = refcnt.NewRefCounterWithCallback(func() { r.deallocLocked(obj) })
	r.objects[obj.id] = obj
	r.allocations++
	r.metrics.allocations.Inc(1)
	r.metrics.liveObjects.Update(float64(len(r.objects)))
	return obj
}

// deallocLocked runs from the zero ref count callback, which only fires
// while the runtime lock is held.
func (r *Runtime) deallocLocked(obj *object) {
	delete(r.objects, obj.id)
	if r.opts.PoisonOnDealloc() {
		data := obj.data[:cap(obj.data)]
		for i := range data {
			data[i] = poisonByte
		}
	}
	obj.data = nil
	r.metrics.deallocations.Inc(1)
	r.metrics.liveObjects.Update(float64(len(r.objects)))
}

// popLocked releases the pools of goroutine gid from idx to the top of
// its stack.
func (r *Runtime) popLocked(gid int64, idx int) {
	stack := r.pools[gid]
	for i := len(stack) - 1; i >= idx; i-- {
		releaseAll(stack[i].objects)
		stack[i].objects = nil
		delete(r.poolOwners, stack[i].token)
		r.metrics.poolPops.Inc(1)
	}
	if idx == 0 {
		delete(r.pools, gid)
		return
	}
	r.pools[gid] = stack[:idx]
}

func (r *Runtime) drainAmbientLocked() int {
	n := len(r.ambient)
	releaseAll(r.ambient)
	r.ambient = nil
	r.updateGaugesLocked()
	return n
}

func (r *Runtime) autoreleaseLocked(obj *object) {
	stack := r.pools[goid.Get()]
	if len(stack) == 0 {
		r.ambient = append(r.ambient, obj)
		r.metrics.ambient.Update(float64(len(r.ambient)))
		return
	}
	top := &stack[len(stack)-1]
	top.objects = append(top.objects, obj)
}

func (r *Runtime) objectLocked(id foundation.ID) *object {
	obj, exists := r.objects[id]
	if !exists {
		panic(xerrors.NewInvalidParamsError(fmt.Errorf("message sent to deallocated object %d", id)))
	}
	return obj
}

func (r *Runtime) updateGaugesLocked() {
	r.metrics.liveObjects.Update(float64(len(r.objects)))
	r.metrics.ambient.Update(float64(len(r.ambient)))
}

func releaseAll(objects []*object) {
	for i := len(objects) - 1; i >= 0; i-- {
		objects[i].cnt.DecRef()
	}
}

func encode(data []byte, enc foundation.Encoding) ([]byte, bool) {
	switch enc {
	case foundation.UTF8StringEncoding:
		return data, true
	case foundation.ASCIIStringEncoding:
		for _, b := range data {
			if b >= utf8.RuneSelf {
				return nil, false
			}
		}
		return data, true
	}
	return nil, false
}
