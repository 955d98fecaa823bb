// Package arena runs the fixed-step frame loop over local combatants and the
// world snapshot their effects read.
package arena

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/udisondev/arenafx/internal/game/combatant"
	"github.com/udisondev/arenafx/internal/game/effect"
)

const maxQueuedCasts = 64

var (
	ErrQueueFull        = errors.New("cast queue full")
	ErrDuplicateEntity  = errors.New("entity already in arena")
	ErrUnknownCombatant = errors.New("unknown combatant")
)

// CastRequest is an input-layer cast awaiting evaluation.
type CastRequest struct {
	CasterID effect.EntityID
	Slot     int
	Aim      effect.Vec2
}

// Arena owns local combatants and the per-frame world snapshot.
//
// Step and the combatant mutators run on the frame goroutine. Post and
// QueueCast may be called from any goroutine.
type Arena struct {
	net   effect.Network
	geo   effect.MapOracle
	inbox Inbox

	local  map[effect.EntityID]*combatant.Combatant
	order  []*combatant.Combatant
	remote map[effect.EntityID]effect.Target
	snap   *snapshot
	frame  atomic.Uint64

	mu      sync.Mutex
	pending []Event
	casts   []CastRequest

	stopCh   chan struct{}
	stopOnce sync.Once
}

// New creates an empty arena. inbox may be nil when events arrive via Post.
func New(net effect.Network, geo effect.MapOracle, inbox Inbox) *Arena {
	return &Arena{
		net:    net,
		geo:    geo,
		inbox:  inbox,
		local:  make(map[effect.EntityID]*combatant.Combatant),
		remote: make(map[effect.EntityID]effect.Target),
		snap:   newSnapshot(),
		stopCh: make(chan struct{}),
	}
}

// Env is what skills built for this arena must be constructed with.
func (a *Arena) Env() effect.Env {
	return effect.Env{Net: a.net, Map: a.geo, World: a.snap}
}

// World returns the current snapshot.
func (a *Arena) World() effect.World { return a.snap }

// Frame returns the number of completed steps.
func (a *Arena) Frame() uint64 { return a.frame.Load() }

// Join adds a local combatant.
func (a *Arena) Join(c *combatant.Combatant) error {
	if _, ok := a.local[c.ID()]; ok {
		return fmt.Errorf("join %d: %w", c.ID(), ErrDuplicateEntity)
	}
	delete(a.remote, c.ID())
	a.local[c.ID()] = c
	a.order = append(a.order, c)
	a.snap.refresh(a.order, a.remote)

	slog.Info("combatant joined", "combatant", c.ID(), "team", c.Team(), "class", c.Class())
	return nil
}

// Combatant returns a local combatant.
func (a *Arena) Combatant(id effect.EntityID) (*combatant.Combatant, bool) {
	c, ok := a.local[id]
	return c, ok
}

// Combatants returns local combatants in join order.
func (a *Arena) Combatants() []*combatant.Combatant {
	return append([]*combatant.Combatant(nil), a.order...)
}

// Post queues an event for the next frame.
func (a *Arena) Post(ev Event) {
	a.mu.Lock()
	a.pending = append(a.pending, ev)
	a.mu.Unlock()
}

// QueueCast schedules a cast for the end of the next frame.
func (a *Arena) QueueCast(casterID effect.EntityID, slot int, aim effect.Vec2) error {
	if slot < 0 || slot >= combatant.MaxSlots {
		return fmt.Errorf("queue cast slot %d: %w", slot, combatant.ErrSlotOutOfRange)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.casts) >= maxQueuedCasts {
		return ErrQueueFull
	}
	a.casts = append(a.casts, CastRequest{CasterID: casterID, Slot: slot, Aim: aim})
	return nil
}

// Step advances one frame:
//  1. apply inbound events
//  2. rebuild the world snapshot
//  3. update skills and their effects
//  4. update buffs
//  5. evaluate queued casts
//
// Buffs that expire this frame are gone before any cast of this frame reads
// them.
func (a *Arena) Step(dt float64) {
	a.drainInbound()
	a.snap.refresh(a.order, a.remote)

	for _, c := range a.order {
		c.UpdateSkills(dt)
	}
	for _, c := range a.order {
		c.Update(dt)
	}

	a.evaluateCasts()
	a.frame.Add(1)
}

func (a *Arena) drainInbound() {
	if a.inbox != nil {
		for _, ev := range a.inbox.Drain() {
			ev.apply(a)
		}
	}

	a.mu.Lock()
	pending := a.pending
	a.pending = nil
	a.mu.Unlock()

	for _, ev := range pending {
		ev.apply(a)
	}
}

func (a *Arena) evaluateCasts() {
	a.mu.Lock()
	casts := a.casts
	a.casts = nil
	a.mu.Unlock()

	for _, req := range casts {
		c, ok := a.local[req.CasterID]
		if !ok {
			slog.Warn("cast for unknown combatant", "combatant", req.CasterID, "error", ErrUnknownCombatant)
			continue
		}
		out, err := c.Cast(req.Slot, req.Aim)
		if err != nil {
			slog.Warn("cast failed",
				"combatant", req.CasterID,
				"slot", req.Slot,
				"error", err)
			continue
		}
		slog.Debug("cast evaluated",
			"combatant", req.CasterID,
			"slot", req.Slot,
			"outcome", out,
			"frame", a.frame.Load())
	}
}
