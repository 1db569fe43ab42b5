// Package known implements the process-wide registry of "known values":
// compact predicates encoded as unsigned 64-bit integers (spec.md §3.4,
// the `known-value` case) instead of full leaf envelopes. The registry is a
// name <-> code lookup table, used by the renderer and by callers who want
// symbolic constants for common predicates; it is not required to decode or
// encode a known-value case, which needs only the bare integer.
package known

import "sync"

// Value is a known value's numeric code.
type Value uint64

// Well-known predicates and markers used by the envelope core and its
// transformations. Allocation is append-only and coordinated the way the
// teacher coordinates its own COSE header-label constants
// (massifs/cose.HeaderLabel*): new entries get the next free code, nothing
// is ever renumbered.
const (
	IsA          Value = 1
	ID           Value = 2
	Verb         Value = 3
	Note         Value = 4
	HasRecipient Value = 5
	Salt         Value = 6
	Date         Value = 7
	Unknown      Value = 8
	Diff         Value = 9
	BodyHash     Value = 10
	Result       Value = 11
	Error        Value = 12
)

var defaults = map[Value]string{
	IsA:          "isA",
	ID:           "id",
	Verb:         "verb",
	Note:         "note",
	HasRecipient: "hasRecipient",
	Salt:         "salt",
	Date:         "date",
	Unknown:      "unknown",
	Diff:         "diff",
	BodyHash:     "bodyHash",
	Result:       "result",
	Error:        "error",
}

var (
	mu    sync.RWMutex
	names = cloneDefaults()
)

func cloneDefaults() map[Value]string {
	out := make(map[Value]string, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	return out
}

// Reset restores the registry to its built-in defaults. Safe to call
// concurrently; re-initialization is idempotent per spec.md §9's guidance
// on global symbol registries.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	names = cloneDefaults()
}

// Register binds a name to a known value code, overwriting any prior
// binding. Concurrent registration is safe; readers never observe a torn
// write.
func Register(v Value, name string) {
	mu.Lock()
	defer mu.Unlock()
	names = cloneNamesLocked()
	names[v] = name
}

func cloneNamesLocked() map[Value]string {
	out := make(map[Value]string, len(names))
	for k, v := range names {
		out[k] = v
	}
	return out
}

// Name returns the registered name for v, and whether one is registered.
func Name(v Value) (string, bool) {
	mu.RLock()
	defer mu.RUnlock()
	n, ok := names[v]
	return n, ok
}

// String returns the registered name for v, or a numeric fallback.
func (v Value) String() string {
	if n, ok := Name(v); ok {
		return n
	}
	return "known(" + itoa(uint64(v)) + ")"
}

func itoa(n uint64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
