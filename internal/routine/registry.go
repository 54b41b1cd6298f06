package routine

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/ashwch/assist/internal/condition"
)

// Registry is the synchronized routine collection. Ids come from a process
// wide monotonic counter starting at 0 and are never reused.
type Registry struct {
	nextID atomic.Int64

	mu       sync.RWMutex
	routines []*Routine
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (g *Registry) NextID() int {
	return int(g.nextID.Add(1) - 1)
}

func (g *Registry) Add(r *Routine) {
	if r == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.routines = append(g.routines, r)
}

// Remove deletes the routine with the given id. Unknown ids leave the
// registry unchanged and return nil.
func (g *Registry) Remove(id int) *Routine {
	g.mu.Lock()
	defer g.mu.Unlock()
	for idx, r := range g.routines {
		if r.ID() == id {
			g.routines = append(g.routines[:idx:idx], g.routines[idx+1:]...)
			return r
		}
	}
	return nil
}

func (g *Registry) Get(id int) (*Routine, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, r := range g.routines {
		if r.ID() == id {
			return r, true
		}
	}
	return nil, false
}

func (g *Registry) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.routines)
}

// Snapshot returns the routines in their current registry order.
func (g *Registry) Snapshot() []*Routine {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]*Routine(nil), g.routines...)
}

// Sort reorders the registry by ascending id and returns the result.
func (g *Registry) Sort() []*Routine {
	g.mu.Lock()
	defer g.mu.Unlock()
	sort.SliceStable(g.routines, func(i, j int) bool {
		return g.routines[i].ID() < g.routines[j].ID()
	})
	return append([]*Routine(nil), g.routines...)
}

// FirstMatch scans routines in current order, not sorted order.
func (g *Registry) FirstMatch(tokens []string) (*Routine, bool) {
	snapshot := g.Snapshot()
	idx := condition.FirstMatch(snapshot, tokens)
	if idx < 0 {
		return nil, false
	}
	return snapshot[idx], true
}
