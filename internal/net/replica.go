package net

import (
	"cmp"
	"slices"
	"sync"

	"PenBoard/internal/canvas"
	"PenBoard/internal/state"
)

type primitiveID struct {
	site string
	seq  uint64
}

// Replica is a peer's copy of a host's drawing. Primitives may arrive
// twice (snapshot and broadcast) or out of order; duplicates are dropped
// and the log is kept sorted by sequence number.
type Replica struct {
	clock state.Clock

	mu      sync.RWMutex
	seen    map[primitiveID]bool
	prims   []canvas.Primitive
	cleared uint64 // seq of the latest clear
}

func NewReplica() *Replica {
	return &Replica{seen: make(map[primitiveID]bool)}
}

// Add merges p and reports whether it was new. A clear drops everything
// sequenced before it, including primitives that arrive after it.
func (r *Replica) Add(p canvas.Primitive) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := primitiveID{p.Site, p.Seq}
	if r.seen[id] {
		return false
	}
	r.seen[id] = true
	r.clock.Update(p.Seq)

	if p.Seq < r.cleared {
		return false
	}
	if p.Op == canvas.OpClear {
		r.cleared = p.Seq
		r.prims = slices.DeleteFunc(r.prims, func(q canvas.Primitive) bool { return q.Seq < p.Seq })
	}
	i, _ := slices.BinarySearchFunc(r.prims, p, comparePrimitives)
	r.prims = slices.Insert(r.prims, i, p)
	return true
}

func comparePrimitives(a, b canvas.Primitive) int {
	if c := cmp.Compare(a.Seq, b.Seq); c != 0 {
		return c
	}
	return cmp.Compare(a.Site, b.Site)
}

// Merge adds every primitive and returns how many were new.
func (r *Replica) Merge(prims []canvas.Primitive) int {
	added := 0
	for _, p := range prims {
		if r.Add(p) {
			added++
		}
	}
	return added
}

// Primitives returns a copy of the merged log.
func (r *Replica) Primitives() []canvas.Primitive {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]canvas.Primitive, len(r.prims))
	copy(out, r.prims)
	return out
}

// Replay draws the merged log onto s.
func (r *Replica) Replay(s canvas.Surface) {
	canvas.Replay(s, r.Primitives())
}

// Latest returns the highest sequence number seen.
func (r *Replica) Latest() uint64 { return r.clock.Now() }
