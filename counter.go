package rotato

import (
	"sync/atomic"
	"unsafe"
)

// cacheLine is the typical size of a cache line.
const cacheLine = 64

// RefCounted is the capability a value must expose to live in a
// Publication. Acquire and Release balance each other one to one; Refs is
// consulted only by the publisher to decide whether a slot is safe to
// reuse. Embedding a Counter satisfies it.
type RefCounted interface {
	// Acquire unconditionally increments the reference count.
	Acquire()

	// Release unconditionally decrements the reference count. Callers
	// must make exactly one Release per Acquire; mismatches silently
	// corrupt slot reuse with no built-in detection.
	Release()

	// Refs returns the current reference count. Zero means no reader
	// holds the value.
	Refs() int64
}

// Counter is a ready-to-use RefCounted implementation meant to be embedded
// in the values a Publication manages. The zero value is ready to use. It
// is padded so that counters embedded in adjacent values do not share a
// cache line. A value must not be copied while it is installed in a
// Publication: the copy would carry the live count with it.
type Counter struct {
	refs atomic.Int64
	_    [cacheLine - unsafe.Sizeof(atomic.Int64{})]byte
}

// Acquire increments the reference count.
func (c *Counter) Acquire() { c.refs.Add(1) }

// Release decrements the reference count.
func (c *Counter) Release() { c.refs.Add(-1) }

// Refs returns the current reference count.
func (c *Counter) Refs() int64 { return c.refs.Load() }
