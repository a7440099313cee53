// Package id interns node names into compact, comparable handles.
//
// A [NodeId] is the identifier a scene node or edge is addressed by
// throughout the engine: in the graph's id index, in constraints, in
// use_styles references. Interning keeps equality and hashing O(1) and
// keeps every map keyed by NodeId small regardless of how long the
// original name was.
package id

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
)

// NodeId is an interned node name. Two NodeIds compare equal iff they were
// interned from the same string. The zero value is not a valid NodeId.
type NodeId uint32

var interner = newTable()

type table struct {
	mu     sync.RWMutex
	byStr  map[string]NodeId
	byID   []string
}

func newTable() *table {
	return &table{
		byStr: make(map[string]NodeId),
		// index 0 is reserved so the zero value of NodeId is recognizably invalid.
		byID: []string{""},
	}
}

// Intern returns the NodeId for s, minting a new one if s was never seen
// before. Safe for concurrent use; a given string is only ever assigned
// one NodeId for the lifetime of the process.
func Intern(s string) NodeId {
	interner.mu.RLock()
	if nid, ok := interner.byStr[s]; ok {
		interner.mu.RUnlock()
		return nid
	}
	interner.mu.RUnlock()

	interner.mu.Lock()
	defer interner.mu.Unlock()
	if nid, ok := interner.byStr[s]; ok {
		return nid
	}
	nid := NodeId(len(interner.byID))
	interner.byID = append(interner.byID, s)
	interner.byStr[s] = nid
	return nid
}

// Resolve returns the string an interned NodeId was minted from. Resolving
// the zero value or an id from a different process's interner panics —
// both are programmer errors.
func Resolve(nid NodeId) string {
	interner.mu.RLock()
	defer interner.mu.RUnlock()
	if int(nid) == 0 || int(nid) >= len(interner.byID) {
		panic(fmt.Sprintf("id: NodeId %d was never interned", nid))
	}
	return interner.byID[nid]
}

// String returns the node's name, e.g. "login_btn", without the "@";
// prefix it with "@" where the `@id` surface syntax is expected.
func (nid NodeId) String() string {
	return Resolve(nid)
}

// IsValid reports whether nid was produced by Intern or Anonymous.
func (nid NodeId) IsValid() bool {
	interner.mu.RLock()
	defer interner.mu.RUnlock()
	return int(nid) > 0 && int(nid) < len(interner.byID)
}

var anonCounters sync.Map // prefix string -> *uint64

// Anonymous mints a unique id of the form "_<prefix>_<n>" using a
// monotonic counter kept per-prefix, e.g. Anonymous("rect") -> "_rect_0",
// "_rect_1", ... Counters are process-wide and never reused, matching the
// "id matches _<kind>_<N>" pattern the linter's anonymous-id rule looks
// for.
func Anonymous(prefix string) NodeId {
	v, _ := anonCounters.LoadOrStore(prefix, new(uint64))
	counter := v.(*uint64)
	n := atomic.AddUint64(counter, 1) - 1
	return Intern(fmt.Sprintf("_%s_%d", prefix, n))
}

// IsAnonymous reports whether nid's name matches the "_<prefix>_<n>" shape
// minted by Anonymous, e.g. for deciding whether the emitter should print
// an explicit "@id" or omit it.
func IsAnonymous(nid NodeId) bool {
	s := Resolve(nid)
	if len(s) < 3 || s[0] != '_' {
		return false
	}
	idx := strings.LastIndexByte(s, '_')
	if idx <= 0 {
		return false
	}
	suffix := s[idx+1:]
	if suffix == "" {
		return false
	}
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
