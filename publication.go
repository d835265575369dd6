package rotato

import (
	"runtime"
	"sync/atomic"
)

const goschedEvery = 64 // reduce runtime.Gosched() frequency in the reuse scan

// Publication rotates a fixed pool of values so that a single publisher can
// install new versions while any number of readers examine old ones. The
// values never move: the pool is an arena indexed by a ring of atomic
// indices, and only the indices are swapped during slot reuse. The head
// index increases monotonically; head mod len identifies the published
// slot.
type Publication[T RefCounted] struct {
	values []T
	order  []atomic.Uint32
	mask   uint64
	_      [cacheLine]byte
	head   atomic.Uint64
	_      [cacheLine]byte
}

// New creates a Publication over the given values. The pool size must be a
// power of two and at least the maximum number of concurrent readers plus
// two; New panics when it is not a power of two or is less than two, and
// an undersized pool shows up later as BeginUpdate failing to find a free
// slot. The values are owned by the caller and are never freed or replaced
// by the Publication, only rotated.
func New[T RefCounted](values ...T) *Publication[T] {
	n := uint64(len(values))
	if n < 2 || n&(n-1) != 0 {
		panic("pool size must be a power of 2 and >= 2")
	}

	p := &Publication[T]{
		values: values,
		order:  make([]atomic.Uint32, n),
		mask:   n - 1,
	}
	for i := range p.order {
		p.order[i].Store(uint32(i))
	}
	return p
}

// Cap returns the fixed pool size.
func (p *Publication[T]) Cap() int { return len(p.values) }

// Read returns a Handle on the currently published value with its
// reference count already taken. It is safe to call concurrently and never
// blocks; it retries only when a publication lands between loading the
// head and acquiring the slot, which resolves within an iteration or two.
func (p *Publication[T]) Read() Handle[T] {
	gen := p.head.Load()

	for {
		v := p.values[p.order[gen&p.mask].Load()]
		v.Acquire()

		// double check that the head didn't move to ensure the reuse
		// scan in BeginUpdate is aware of our outstanding reference.
		next := p.head.Load()
		if next == gen {
			return Handle[T]{value: v, gen: gen}
		}

		// we lost the race: the slot we grabbed may already be mid-reuse.
		// drop it and try again on the new head.
		v.Release()
		gen = next
	}
}

// Current returns the currently published value without taking a
// reference. Publisher only: the publisher is the sole writer of the head,
// so it always has a consistent view of its own last publication.
func (p *Publication[T]) Current() T {
	return p.values[p.order[p.head.Load()&p.mask].Load()]
}

// BeginUpdate returns a free value for the publisher to mutate into the
// next version, typically starting from a copy of Current. It prefers the
// slot immediately after the head; when readers still hold that one it
// scans forward for any slot with no references and swaps it into the
// adjacent position. The scan never considers the head itself and does not
// terminate while every other slot is held, so an undersized pool spins
// here. Publisher only; must be followed by at most one CommitUpdate.
func (p *Publication[T]) BeginUpdate() T {
	head := p.head.Load()
	first := &p.order[(head+1)&p.mask]
	idx := first.Load()

	if p.values[idx].Refs() != 0 {
		var spins uint32
		for pos := head + 2; ; pos++ {
			if pos&p.mask == head&p.mask {
				continue
			}
			cand := &p.order[pos&p.mask]
			j := cand.Load()
			if p.values[j].Refs() == 0 {
				cand.Store(idx)
				first.Store(j)
				idx = j
				break
			}
			spins++
			if spins%goschedEvery == 0 {
				runtime.Gosched()
			}
		}
	}
	return p.values[idx]
}

// TryBeginUpdate is BeginUpdate with a single lap over the pool: when every
// slot other than the head is still referenced it returns false instead of
// spinning, which makes an undersized or leaking pool detectable.
func (p *Publication[T]) TryBeginUpdate() (T, bool) {
	head := p.head.Load()
	first := &p.order[(head+1)&p.mask]
	idx := first.Load()

	if p.values[idx].Refs() == 0 {
		return p.values[idx], true
	}
	for pos := head + 2; pos&p.mask != (head+1)&p.mask; pos++ {
		if pos&p.mask == head&p.mask {
			continue
		}
		cand := &p.order[pos&p.mask]
		j := cand.Load()
		if p.values[j].Refs() == 0 {
			cand.Store(idx)
			first.Store(j)
			return p.values[j], true
		}
	}
	var zero T
	return zero, false
}

// CommitUpdate publishes the value prepared by the last BeginUpdate by
// advancing the head. This single increment is the whole publication
// protocol: readers re-validate the head after acquiring, so nothing else
// needs to synchronize. Publisher only.
func (p *Publication[T]) CommitUpdate() {
	p.head.Add(1)
}
