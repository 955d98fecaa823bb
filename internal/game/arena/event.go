package arena

import (
	"log/slog"

	"github.com/udisondev/arenafx/internal/game/buff"
	"github.com/udisondev/arenafx/internal/game/effect"
)

// Event is an authoritative message from the combat server. Events are applied
// at the start of a frame, before any local simulation.
type Event interface {
	apply(a *Arena)
}

// Inbox is drained once per frame.
type Inbox interface {
	Drain() []Event
}

// HealthUpdate carries a confirmed health value.
type HealthUpdate struct {
	ID     effect.EntityID `json:"id"`
	Health int32           `json:"health"`
}

// Death announces a confirmed kill.
type Death struct {
	ID       effect.EntityID `json:"id"`
	KillerID effect.EntityID `json:"killer_id,omitempty"`
}

// BuffApplied is a buff the server attached to a combatant.
type BuffApplied struct {
	Target effect.EntityID  `json:"target"`
	Grant  effect.BuffGrant `json:"grant"`
}

// ManaSync overwrites a local combatant's mana pool.
type ManaSync struct {
	ID   effect.EntityID `json:"id"`
	Mana int32           `json:"mana"`
}

// IncomingHit is raw damage aimed at a local combatant; it still has to pass
// the combatant's own defenses.
type IncomingHit struct {
	Target effect.EntityID `json:"target"`
	Amount int32           `json:"amount"`
	Origin effect.Vec2     `json:"origin"`
}

// EntityState upserts a remote entity in the world snapshot.
type EntityState struct {
	Target effect.Target `json:"target"`
}

// EntityRemoved drops a remote entity from the world snapshot.
type EntityRemoved struct {
	ID effect.EntityID `json:"id"`
}

// Respawned brings a combatant back at Position.
type Respawned struct {
	ID       effect.EntityID `json:"id"`
	Position effect.Vec2     `json:"position"`
}

func (e HealthUpdate) apply(a *Arena) {
	if c, ok := a.local[e.ID]; ok {
		c.ConfirmHealth(e.Health)
		return
	}
	if t, ok := a.remote[e.ID]; ok && e.Health <= 0 {
		t.Alive = false
		a.remote[e.ID] = t
	}
}

func (e Death) apply(a *Arena) {
	if c, ok := a.local[e.ID]; ok {
		c.OnDeath()
		return
	}
	if t, ok := a.remote[e.ID]; ok {
		t.Alive = false
		a.remote[e.ID] = t
	}
}

func (e BuffApplied) apply(a *Arena) {
	c, ok := a.local[e.Target]
	if !ok {
		return
	}
	b, err := buff.FromGrant(e.Grant)
	if err != nil {
		slog.Warn("server buff rejected", "target", e.Target, "kind", e.Grant.Kind, "error", err)
		return
	}
	c.ApplyBuff(b)
}

func (e ManaSync) apply(a *Arena) {
	if c, ok := a.local[e.ID]; ok {
		c.SyncMana(e.Mana)
	}
}

func (e IncomingHit) apply(a *Arena) {
	if c, ok := a.local[e.Target]; ok {
		c.ReceiveHit(e.Amount, e.Origin)
	}
}

func (e EntityState) apply(a *Arena) {
	if _, ok := a.local[e.Target.ID]; ok {
		return
	}
	a.remote[e.Target.ID] = e.Target
}

func (e EntityRemoved) apply(a *Arena) {
	delete(a.remote, e.ID)
}

func (e Respawned) apply(a *Arena) {
	if c, ok := a.local[e.ID]; ok {
		c.Respawn(e.Position)
		return
	}
	if t, ok := a.remote[e.ID]; ok {
		t.Alive = true
		t.Position = e.Position
		a.remote[e.ID] = t
	}
}
