package idgen

import "sync/atomic"

var counter int64

// NextFunc returns the next identifier. Package variable so tests can stub it
// for determinism.
var NextFunc = func() int64 { return atomic.AddInt64(&counter, 1) }

// Next returns a process-wide monotonically increasing identifier.
func Next() int64 { return NextFunc() }

// Reset rewinds the counter. Intended for tests only.
func Reset() { atomic.StoreInt64(&counter, 0) }
