package arena

import (
	"maps"
	"slices"

	"github.com/udisondev/arenafx/internal/game/combatant"
	"github.com/udisondev/arenafx/internal/game/effect"
)

// snapshot is the per-frame effect.World. It is rebuilt once per frame and
// read-only for the rest of it.
type snapshot struct {
	all   []effect.Target
	live  []effect.Target
	index map[effect.EntityID]int
}

func newSnapshot() *snapshot {
	return &snapshot{index: make(map[effect.EntityID]int)}
}

// refresh rebuilds the snapshot from local combatants (in join order) and
// remote entities (by id).
func (s *snapshot) refresh(local []*combatant.Combatant, remote map[effect.EntityID]effect.Target) {
	s.all = s.all[:0]
	s.live = s.live[:0]
	clear(s.index)

	for _, c := range local {
		s.put(c.Target())
	}
	for _, id := range slices.Sorted(maps.Keys(remote)) {
		s.put(remote[id])
	}
}

func (s *snapshot) put(t effect.Target) {
	s.index[t.ID] = len(s.all)
	s.all = append(s.all, t)
	if t.Alive {
		s.live = append(s.live, t)
	}
}

// LiveTargets returns the living entities. The slice is shared; callers must
// not modify it.
func (s *snapshot) LiveTargets() []effect.Target { return s.live }

// Lookup finds an entity, dead or alive.
func (s *snapshot) Lookup(id effect.EntityID) (effect.Target, bool) {
	i, ok := s.index[id]
	if !ok {
		return effect.Target{}, false
	}
	return s.all[i], true
}
