package testutil

import "github.com/udisondev/arenafx/internal/game/effect"

// StaticWorld is a hand-built entity table implementing effect.World.
// Tests mutate it between frames with Put / Kill / Remove.
type StaticWorld struct {
	order   []effect.EntityID
	targets map[effect.EntityID]effect.Target
}

// NewStaticWorld creates a world holding the given targets in order.
func NewStaticWorld(targets ...effect.Target) *StaticWorld {
	w := &StaticWorld{targets: make(map[effect.EntityID]effect.Target, len(targets))}
	for _, t := range targets {
		w.Put(t)
	}
	return w
}

// Put inserts or replaces a target.
func (w *StaticWorld) Put(t effect.Target) {
	if _, ok := w.targets[t.ID]; !ok {
		w.order = append(w.order, t.ID)
	}
	w.targets[t.ID] = t
}

// Move relocates a target.
func (w *StaticWorld) Move(id effect.EntityID, pos effect.Vec2) {
	if t, ok := w.targets[id]; ok {
		t.Position = pos
		w.targets[id] = t
	}
}

// Kill marks a target dead but keeps it in the table.
func (w *StaticWorld) Kill(id effect.EntityID) {
	if t, ok := w.targets[id]; ok {
		t.Alive = false
		w.targets[id] = t
	}
}

// Remove drops a target from the table.
func (w *StaticWorld) Remove(id effect.EntityID) {
	delete(w.targets, id)
	n := 0
	for _, o := range w.order {
		if o != id {
			w.order[n] = o
			n++
		}
	}
	w.order = w.order[:n]
}

// LiveTargets returns alive targets in insertion order.
func (w *StaticWorld) LiveTargets() []effect.Target {
	out := make([]effect.Target, 0, len(w.order))
	for _, id := range w.order {
		if t := w.targets[id]; t.Alive {
			out = append(out, t)
		}
	}
	return out
}

// Lookup finds a target by handle, dead or alive.
func (w *StaticWorld) Lookup(id effect.EntityID) (effect.Target, bool) {
	t, ok := w.targets[id]
	return t, ok
}

// Monster is a shortcut for an alive monster target.
func Monster(id effect.EntityID, x, y, radius float64) effect.Target {
	return effect.Target{ID: id, Class: effect.ClassMonster, Position: effect.V(x, y), Radius: radius, Alive: true}
}

// Player is a shortcut for an alive player target on team.
func Player(id effect.EntityID, team int32, x, y, radius float64) effect.Target {
	return effect.Target{ID: id, Class: effect.ClassPlayer, Team: team, Position: effect.V(x, y), Radius: radius, Alive: true}
}

// MapFunc adapts a predicate to effect.MapOracle.
type MapFunc func(x, y float64) bool

func (f MapFunc) IsPositionBlocked(x, y float64) bool { return f(x, y) }

func (f MapFunc) IsAreaBlocked(cx, cy, radius float64) bool {
	return f(cx, cy) || f(cx-radius, cy) || f(cx+radius, cy) || f(cx, cy-radius) || f(cx, cy+radius)
}

// OpenMap has no walls.
var OpenMap = MapFunc(func(float64, float64) bool { return false })

// Env builds an effect.Env from test doubles.
func Env(net effect.Network, w effect.World) effect.Env {
	return effect.Env{Net: net, Map: OpenMap, World: w}
}
