package rotato

// Handle grants read access to the value that was published at the moment
// Read returned it. The value's reference count was incremented before the
// Handle was handed out and stays up until Release.
type Handle[T RefCounted] struct {
	value T
	gen   uint64
}

// Value returns the published value the Handle is bound to. It must not be
// used after Release.
func (h Handle[T]) Value() T { return h.value }

// Gen reports the head generation the value was published at.
func (h Handle[T]) Gen() uint64 { return h.gen }

// Release invalidates the Handle and must be called exactly once.
func (h Handle[T]) Release() { h.value.Release() }
