package skill

import (
	"fmt"
	"math"

	"github.com/udisondev/arenafx/internal/game/buff"
	"github.com/udisondev/arenafx/internal/game/effect"
	"github.com/udisondev/arenafx/internal/game/projectile"
	"github.com/udisondev/arenafx/internal/game/zone"
)

// Delivery is how a skill manifests in the world.
type Delivery uint8

const (
	DeliverProjectile Delivery = iota
	DeliverZone
	DeliverSelfBuff
)

func (d Delivery) String() string {
	switch d {
	case DeliverProjectile:
		return "projectile"
	case DeliverZone:
		return "zone"
	case DeliverSelfBuff:
		return "self_buff"
	default:
		return fmt.Sprintf("delivery(%d)", uint8(d))
	}
}

// Placement decides where a zone spawns.
type Placement uint8

const (
	// AtCaster spawns a fixed zone on the caster's position.
	AtCaster Placement = iota
	// AtAim spawns a fixed zone on the aim point (clamped to CastRange).
	AtAim
	// Attached spawns a zone that follows the caster every tick.
	Attached
)

// ProjectileDef holds the projectile half of a skill definition.
type ProjectileDef struct {
	Kind         projectile.Kind
	Speed        float64
	Lifetime     float64
	Radius       float64
	MaxRange     float64
	Pierce       int
	TickInterval float64
	// Count > 1 fires a fan of Count projectiles spread evenly across Spread
	// radians centred on the aim direction.
	Count  int
	Spread float64
	OnHit  effect.BuffGrant
}

// ZoneDef holds the zone half of a skill definition.
type ZoneDef struct {
	Kind         zone.Kind
	Placement    Placement
	Radius       float64
	Duration     float64
	TickInterval float64
	CastRange    float64
	HalfAngle    float64
	FallTime     float64
	LingerTime   float64
	Targets      zone.TargetFilter
	OnHit        effect.BuffGrant
}

// Def is an immutable catalog entry. Runtime state lives in Skill.
type Def struct {
	ID         int32
	Name       string
	Element    string
	ManaCost   int32
	Cooldown   float64
	BaseDamage int32
	Delivery   Delivery

	Projectile ProjectileDef
	Zone       ZoneDef

	// CasterBuff is applied to the caster on every accepted cast. For
	// DeliverSelfBuff it is the whole effect.
	CasterBuff effect.BuffGrant

	// ExplicitOverrides puts speed/radius/lifetime into the cast notice for
	// skills whose remote replica cannot be rebuilt from the id alone.
	ExplicitOverrides bool
}

// Validate checks that the definition can only produce non-degenerate effects.
func (d Def) Validate() error {
	if d.ManaCost < 0 || d.BaseDamage < 0 {
		return fmt.Errorf("skill %d: mana %d damage %d: %w", d.ID, d.ManaCost, d.BaseDamage, effect.ErrInvalidConfig)
	}
	if d.Cooldown < 0 || math.IsNaN(d.Cooldown) || math.IsInf(d.Cooldown, 0) {
		return fmt.Errorf("skill %d: cooldown %v: %w", d.ID, d.Cooldown, effect.ErrInvalidConfig)
	}

	switch d.Delivery {
	case DeliverProjectile:
		p := d.Projectile
		if !(p.Speed > 0) || !(p.Lifetime > 0) || !(p.Radius > 0) {
			return fmt.Errorf("skill %d: projectile speed=%v lifetime=%v radius=%v: %w",
				d.ID, p.Speed, p.Lifetime, p.Radius, effect.ErrInvalidConfig)
		}
		if p.Count < 0 || p.Spread < 0 || p.Spread > 2*math.Pi {
			return fmt.Errorf("skill %d: multishot count=%d spread=%v: %w", d.ID, p.Count, p.Spread, effect.ErrInvalidConfig)
		}
	case DeliverZone:
		z := d.Zone
		if !(z.Radius > 0) {
			return fmt.Errorf("skill %d: zone radius %v: %w", d.ID, z.Radius, effect.ErrInvalidConfig)
		}
		if z.Kind.IsPhased() {
			if !(z.FallTime > 0) || z.LingerTime < 0 {
				return fmt.Errorf("skill %d: phased zone fall=%v linger=%v: %w", d.ID, z.FallTime, z.LingerTime, effect.ErrInvalidConfig)
			}
		} else if !(z.Duration > 0) || !(z.TickInterval > 0) {
			return fmt.Errorf("skill %d: zone duration=%v tick=%v: %w", d.ID, z.Duration, z.TickInterval, effect.ErrInvalidConfig)
		}
	case DeliverSelfBuff:
		if d.CasterBuff.IsZero() || !(d.CasterBuff.Duration > 0) {
			return fmt.Errorf("skill %d: self buff without grant: %w", d.ID, effect.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("skill %d: %s: %w", d.ID, d.Delivery, effect.ErrInvalidConfig)
	}

	if !d.CasterBuff.IsZero() {
		if _, err := buff.FromGrant(d.CasterBuff); err != nil {
			return fmt.Errorf("skill %d caster buff: %w", d.ID, err)
		}
	}
	return nil
}

// needsDirection reports whether a zero-length aim vector is a configuration
// error for this skill.
func (d Def) needsDirection() bool {
	switch d.Delivery {
	case DeliverProjectile:
		return true
	case DeliverZone:
		return d.Zone.Kind == zone.KindFan
	default:
		return false
	}
}
