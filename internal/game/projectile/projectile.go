// Package projectile implements moving point effects: straight-line travel,
// lifetime and range limits, pierce budgets and damage-over-time windows.
package projectile

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/udisondev/arenafx/internal/game/collision"
	"github.com/udisondev/arenafx/internal/game/effect"
)

// Unlimited is reported by PierceLeft for damage-over-time projectiles.
const Unlimited = -1

const timeEpsilon = 1e-9

// Config describes a projectile at spawn time.
type Config struct {
	Kind      Kind
	OwnerID   effect.EntityID
	OwnerTeam int32
	SkillTag  string

	Origin    effect.Vec2
	Direction effect.Vec2 // normalized by New; must be non-zero
	Speed     float64
	Lifetime  float64
	Radius    float64
	Damage    int32

	// Pierce is the number of targets the projectile may damage; 0 means 1.
	Pierce int
	// DoT makes pierce unlimited and re-arms every target each TickInterval.
	DoT          bool
	TickInterval float64
	// MaxRange caps travelled distance; 0 disables the check.
	MaxRange float64

	// OnHit is an optional buff requested on every damaged target.
	OnHit effect.BuffGrant

	// OnEnd runs once when the projectile dies.
	OnEnd func(*Projectile)
}

// Projectile is a live instance owned by a skill.
type Projectile struct {
	cfg Config
	env effect.Env

	position  effect.Vec2
	velocity  effect.Vec2
	remaining float64
	traveled  float64
	pierce    int

	ledger    *effect.HitLedger
	windowAcc float64
	hits      int

	alive bool
	ended bool
}

// New validates cfg and spawns a projectile. A zero-length direction,
// non-positive speed, lifetime or radius fail with effect.ErrInvalidConfig.
func New(cfg Config, env effect.Env) (*Projectile, error) {
	dir, ok := cfg.Direction.Normalize()
	if !ok {
		return nil, fmt.Errorf("projectile direction %v: %w", cfg.Direction, effect.ErrInvalidConfig)
	}
	if !(cfg.Speed > 0) || !(cfg.Lifetime > 0) || !(cfg.Radius > 0) {
		return nil, fmt.Errorf("projectile speed=%v lifetime=%v radius=%v: %w",
			cfg.Speed, cfg.Lifetime, cfg.Radius, effect.ErrInvalidConfig)
	}
	if cfg.Pierce < 0 || cfg.MaxRange < 0 || cfg.Damage < 0 {
		return nil, fmt.Errorf("projectile pierce=%d range=%v damage=%d: %w",
			cfg.Pierce, cfg.MaxRange, cfg.Damage, effect.ErrInvalidConfig)
	}

	applyKindDefaults(&cfg)
	if cfg.DoT && !(cfg.TickInterval > 0) {
		return nil, fmt.Errorf("dot projectile tick interval %v: %w", cfg.TickInterval, effect.ErrInvalidConfig)
	}
	cfg.Direction = dir

	return &Projectile{
		cfg:       cfg,
		env:       env,
		position:  cfg.Origin,
		velocity:  dir.Scale(cfg.Speed),
		remaining: cfg.Lifetime,
		pierce:    cfg.Pierce,
		ledger:    effect.NewHitLedger(0),
		alive:     true,
	}, nil
}

// Kind returns the projectile variant.
func (p *Projectile) Kind() Kind { return p.cfg.Kind }

// OwnerID returns the caster handle.
func (p *Projectile) OwnerID() effect.EntityID { return p.cfg.OwnerID }

func (p *Projectile) IsAlive() bool          { return p.alive }
func (p *Projectile) Position() effect.Vec2  { return p.position }
func (p *Projectile) Velocity() effect.Vec2  { return p.velocity }
func (p *Projectile) RenderSize() float64    { return p.cfg.Radius * 2 }
func (p *Projectile) Remaining() float64     { return p.remaining }
func (p *Projectile) Traveled() float64      { return p.traveled }
func (p *Projectile) Hits() int              { return p.hits }
func (p *Projectile) Radius() float64        { return p.cfg.Radius }
func (p *Projectile) Direction() effect.Vec2 { return p.cfg.Direction }

// PierceLeft returns the remaining pierce budget, or Unlimited in DoT mode.
func (p *Projectile) PierceLeft() int {
	if p.cfg.DoT {
		return Unlimited
	}
	return p.pierce
}

// Update moves the projectile, applies expiry and resolves hits for this frame.
func (p *Projectile) Update(dt float64) error {
	if !p.alive || dt <= 0 {
		return nil
	}

	prev := p.position
	p.position = p.position.Add(p.velocity.Scale(dt))
	p.traveled += p.cfg.Speed * dt
	p.remaining -= dt

	if p.remaining <= timeEpsilon {
		p.remaining = 0
		p.end("expired")
		return nil
	}
	if p.cfg.MaxRange > 0 && p.traveled > p.cfg.MaxRange+timeEpsilon {
		p.end("out of range")
		return nil
	}
	if p.hitsWall(prev) {
		p.end("wall")
		return nil
	}

	if p.cfg.DoT {
		p.windowAcc += dt
		for p.windowAcc+timeEpsilon >= p.cfg.TickInterval {
			p.windowAcc -= p.cfg.TickInterval
			p.ledger.Advance()
		}
	}

	if p.env.World == nil {
		return fmt.Errorf("projectile %s of %d: %w", p.cfg.Kind, p.cfg.OwnerID, effect.ErrNoSnapshot)
	}

	p.resolveHits(p.env.World.LiveTargets())

	if !p.cfg.DoT && p.pierce <= 0 {
		p.end("pierce spent")
	}
	return nil
}

func (p *Projectile) resolveHits(targets []effect.Target) {
	for _, t := range targets {
		if !p.cfg.DoT && p.pierce <= 0 {
			return
		}
		if !t.Alive || !t.Hostile(p.cfg.OwnerID, p.cfg.OwnerTeam) {
			continue
		}
		if p.ledger.HitThisWindow(t.ID) {
			continue
		}
		if !collision.CirclesOverlap(p.position, p.cfg.Radius, t.Position, t.Radius) {
			continue
		}

		effect.DeliverHit(p.env.Net, effect.Hit{
			Target:   t,
			Amount:   p.cfg.Damage,
			Origin:   p.position,
			SkillTag: p.cfg.SkillTag,
			Grant:    p.grantFor(),
		})
		p.ledger.Mark(t.ID)
		p.hits++
		if !p.cfg.DoT {
			p.pierce--
		}

		slog.Debug("projectile hit",
			"kind", p.cfg.Kind,
			"owner", p.cfg.OwnerID,
			"target", t.ID,
			"damage", p.cfg.Damage,
			"pierceLeft", p.PierceLeft())
	}
}

func (p *Projectile) grantFor() effect.BuffGrant {
	g := p.cfg.OnHit
	if !g.IsZero() {
		g.SourceID = p.cfg.OwnerID
	}
	return g
}

// hitsWall checks the new position and, when the oracle supports it, the
// segment travelled this frame.
func (p *Projectile) hitsWall(prev effect.Vec2) bool {
	if p.env.Map == nil {
		return false
	}
	if p.env.Map.IsPositionBlocked(p.position.X, p.position.Y) {
		return true
	}
	if los, ok := p.env.Map.(effect.LineOfSight); ok {
		return !los.CanSee(prev, p.position)
	}
	return false
}

// Cancel kills the projectile through the same path as natural expiry.
func (p *Projectile) Cancel() {
	p.end("cancelled")
}

func (p *Projectile) end(reason string) {
	p.alive = false
	if p.ended {
		return
	}
	p.ended = true
	if p.cfg.OnEnd != nil {
		p.cfg.OnEnd(p)
	}

	slog.Debug("projectile ended",
		"kind", p.cfg.Kind,
		"owner", p.cfg.OwnerID,
		"reason", reason,
		"hits", p.hits,
		"traveled", math.Round(p.traveled*100)/100)
}
