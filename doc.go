// package rotato provides a bounded, no-wait way to publish new versions of a shared value.
//
// Consider the case where a single goroutine periodically recomputes some
// lookup table that many other goroutines consult on a hot path. Guarding
// the table with a RWMutex makes readers contend with the writer, and a
// classic read-copy-update scheme makes the writer wait out a grace period
// before it can recycle an old version. This package does neither: every
// candidate value carries its own reference count, and the publisher only
// recycles a slot once its count has dropped to zero.
//
//	type table struct {
//		rotato.Counter
//		routes map[string]int
//	}
//
//	var pub = rotato.New(
//		&table{routes: map[string]int{}},
//		&table{routes: map[string]int{}},
//		&table{routes: map[string]int{}},
//		&table{routes: map[string]int{}},
//	)
//
//	func Lookup(key string) int {
//		h := pub.Read()
//		defer h.Release()
//		return h.Value().routes[key]
//	}
//
//	func Republish(routes map[string]int) {
//		next := pub.BeginUpdate()
//		next.routes = routes
//		pub.CommitUpdate()
//	}
//
// Read never blocks: it acquires the current head slot and re-checks that
// the head did not move underneath it, retrying on the rare publication
// that lands in between. CommitUpdate never blocks either: BeginUpdate
// hands back a slot no reader holds, so there is nothing to wait out. The
// cost of the trade is sizing: the pool needs a power-of-two number of
// slots, at least the maximum number of concurrent readers plus two, or
// BeginUpdate can find every slot held and spin.
//
// There must be at most one publisher. Multiple goroutines calling
// BeginUpdate/CommitUpdate require external serialization; readers need
// nothing.
package rotato
