// Package zone implements area effects: stationary or caster-attached circles
// that damage (or heal) eligible targets on a fixed tick schedule, plus the
// phased falling/impact/lingering variant.
package zone

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/udisondev/arenafx/internal/game/effect"
)

const timeEpsilon = 1e-9

// Config describes a zone at spawn time.
type Config struct {
	Kind      Kind
	OwnerID   effect.EntityID
	OwnerTeam int32
	SkillTag  string

	// Center is the fixed position; attached zones use it until the first
	// successful caster lookup.
	Center   effect.Vec2
	Attached bool

	Radius        float64
	Duration      float64
	TickInterval  float64
	DamagePerTick int32
	Targets       TargetFilter

	// Fan
	Facing    effect.Vec2
	HalfAngle float64

	// Phased (Meteor). Duration is FallTime + LingerTime.
	FallTime     float64
	LingerTime   float64
	ImpactDamage int32

	// OnHit is requested on every target a tick reaches.
	OnHit effect.BuffGrant

	OnPhase func(*Zone, Phase)
	OnEnd   func(*Zone)
}

// Zone is a live area effect owned by a skill.
type Zone struct {
	cfg Config
	env effect.Env

	center    effect.Vec2
	phase     Phase
	remaining float64

	tickAcc   float64
	ticksDone int
	maxTicks  int
	ledger    *effect.HitLedger

	fallTimer   float64
	lingerTimer float64

	hits  int
	ended bool
}

// New validates cfg and spawns a zone.
func New(cfg Config, env effect.Env) (*Zone, error) {
	if !(cfg.Radius > 0) || math.IsInf(cfg.Radius, 0) {
		return nil, fmt.Errorf("zone radius %v: %w", cfg.Radius, effect.ErrInvalidConfig)
	}
	if cfg.DamagePerTick < 0 || cfg.ImpactDamage < 0 {
		return nil, fmt.Errorf("zone damage %d/%d: %w", cfg.DamagePerTick, cfg.ImpactDamage, effect.ErrInvalidConfig)
	}

	applyKindDefaults(&cfg)

	z := &Zone{
		cfg:    cfg,
		env:    env,
		center: cfg.Center,
		ledger: effect.NewHitLedger(0),
	}

	if cfg.Kind == KindFan {
		facing, ok := cfg.Facing.Normalize()
		if !ok {
			return nil, fmt.Errorf("fan zone facing %v: %w", cfg.Facing, effect.ErrInvalidConfig)
		}
		z.cfg.Facing = facing
	}

	if cfg.Kind.IsPhased() {
		if !(cfg.FallTime > 0) || cfg.LingerTime < 0 {
			return nil, fmt.Errorf("phased zone fall=%v linger=%v: %w", cfg.FallTime, cfg.LingerTime, effect.ErrInvalidConfig)
		}
		if z.cfg.ImpactDamage == 0 {
			z.cfg.ImpactDamage = cfg.DamagePerTick
		}
		z.cfg.Duration = cfg.FallTime + cfg.LingerTime
		z.phase = PhaseFalling
		z.fallTimer = cfg.FallTime
		z.lingerTimer = cfg.LingerTime
		z.remaining = z.cfg.Duration
		return z, nil
	}

	if !(cfg.Duration > 0) || !(cfg.TickInterval > 0) {
		return nil, fmt.Errorf("zone duration=%v tick=%v: %w", cfg.Duration, cfg.TickInterval, effect.ErrInvalidConfig)
	}
	z.remaining = cfg.Duration
	z.maxTicks = int(math.Floor((cfg.Duration + timeEpsilon) / cfg.TickInterval))
	return z, nil
}

// Kind returns the zone variant.
func (z *Zone) Kind() Kind { return z.cfg.Kind }

// OwnerID returns the caster handle.
func (z *Zone) OwnerID() effect.EntityID { return z.cfg.OwnerID }

func (z *Zone) IsAlive() bool         { return !z.ended }
func (z *Zone) Position() effect.Vec2 { return z.center }
func (z *Zone) RenderSize() float64   { return z.cfg.Radius * 2 }
func (z *Zone) Phase() Phase          { return z.phase }
func (z *Zone) Remaining() float64    { return z.remaining }
func (z *Zone) Radius() float64       { return z.cfg.Radius }
func (z *Zone) Hits() int             { return z.hits }
func (z *Zone) Ticks() int            { return z.ticksDone }

// Update advances the zone clock by dt seconds.
func (z *Zone) Update(dt float64) error {
	if z.ended || dt <= 0 {
		return nil
	}

	err := z.follow()

	if z.cfg.Kind.IsPhased() {
		z.updatePhased(dt, err == nil)
		return err
	}

	z.remaining -= dt
	z.tickAcc += dt
	for z.ticksDone < z.maxTicks && z.tickAcc+timeEpsilon >= z.cfg.TickInterval {
		z.tickAcc -= z.cfg.TickInterval
		z.ticksDone++
		if err == nil {
			z.applyTick(z.cfg.DamagePerTick)
		}
	}

	if z.remaining <= timeEpsilon {
		z.remaining = 0
		z.finish("expired")
	}
	return err
}

// follow re-binds an attached zone to its caster and checks the snapshot.
// On error the clock still advances but no target is touched this frame.
func (z *Zone) follow() error {
	if z.env.World == nil {
		return fmt.Errorf("zone %s of %d: %w", z.cfg.Kind, z.cfg.OwnerID, effect.ErrNoSnapshot)
	}
	if !z.cfg.Attached {
		return nil
	}
	caster, ok := z.env.World.Lookup(z.cfg.OwnerID)
	if !ok || !caster.Alive {
		return fmt.Errorf("zone %s of %d: %w", z.cfg.Kind, z.cfg.OwnerID, effect.ErrCasterMissing)
	}
	z.center = caster.Position
	return nil
}

// updatePhased runs Falling -> Impact -> Lingering -> Finished. Leftover time
// from one phase carries into the next, so a single large step may run the
// whole machine; no phase is ever re-entered.
func (z *Zone) updatePhased(dt float64, canHit bool) {
	z.remaining = math.Max(0, z.remaining-dt)
	left := dt

	for left > 0 || z.phase == PhaseImpact {
		switch z.phase {
		case PhaseFalling:
			z.fallTimer -= left
			if z.fallTimer > timeEpsilon {
				return
			}
			left = -z.fallTimer
			z.fallTimer = 0
			z.setPhase(PhaseImpact)

		case PhaseImpact:
			if canHit {
				z.applyTick(z.cfg.ImpactDamage)
			}
			z.ticksDone++
			z.setPhase(PhaseLingering)

		case PhaseLingering:
			z.lingerTimer -= left
			if z.lingerTimer > timeEpsilon {
				return
			}
			z.lingerTimer = 0
			z.finish("lingered")
			return

		default:
			return
		}
	}

	// Zero-length linger finishes in the same step as impact.
	if z.phase == PhaseLingering && z.lingerTimer <= timeEpsilon {
		z.finish("lingered")
	}
}

func (z *Zone) setPhase(next Phase) {
	if !z.phase.canAdvance(next) {
		return
	}
	z.phase = next
	if z.cfg.OnPhase != nil {
		z.cfg.OnPhase(z, next)
	}
}

// Cancel ends the zone early through the same path as natural expiry.
func (z *Zone) Cancel() {
	z.finish("cancelled")
}

func (z *Zone) finish(reason string) {
	if z.ended {
		return
	}
	z.ended = true
	if z.cfg.Kind.IsPhased() {
		z.setPhase(PhaseFinished)
	} else {
		z.phase = PhaseFinished
	}
	if z.cfg.OnEnd != nil {
		z.cfg.OnEnd(z)
	}

	slog.Debug("zone ended",
		"kind", z.cfg.Kind,
		"owner", z.cfg.OwnerID,
		"reason", reason,
		"ticks", z.ticksDone,
		"hits", z.hits)
}
