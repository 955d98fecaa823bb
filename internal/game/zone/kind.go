package zone

import (
	"fmt"
	"strings"

	"github.com/udisondev/arenafx/internal/game/collision"
	"github.com/udisondev/arenafx/internal/game/effect"
)

// Kind is the closed set of area effects.
type Kind uint8

const (
	// KindBlast ticks damage on hostiles inside the radius.
	KindBlast Kind = iota
	// KindShock ticks damage and requests a Slow on every hit.
	KindShock
	// KindFan ticks damage inside a cone opening along Facing.
	KindFan
	// KindMeteor falls, hits once on impact, then lingers (phased).
	KindMeteor
	// KindAura is attached to the caster and follows it.
	KindAura
	// KindSanctuary heals the caster's allies instead of damaging.
	KindSanctuary
)

var kindNames = [...]string{
	KindBlast:     "blast",
	KindShock:     "shock",
	KindFan:       "fan",
	KindMeteor:    "meteor",
	KindAura:      "aura",
	KindSanctuary: "sanctuary",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind maps a config name to a Kind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown zone kind %q: %w", s, effect.ErrInvalidConfig)
}

// IsPhased reports whether the kind runs the falling/impact/lingering machine.
func (k Kind) IsPhased() bool { return k == KindMeteor }

// heals reports whether ticks restore health instead of dealing damage.
func (k Kind) heals() bool { return k == KindSanctuary }

// TargetFilter restricts zones to a target class.
type TargetFilter uint8

const (
	TargetsAll TargetFilter = iota
	TargetsMonsters
	TargetsPlayers
)

// ParseTargetFilter maps "all" / "monsters" / "players" to a filter.
func ParseTargetFilter(s string) (TargetFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return TargetsAll, nil
	case "monsters", "monster", "pve":
		return TargetsMonsters, nil
	case "players", "player", "pvp":
		return TargetsPlayers, nil
	}
	return 0, fmt.Errorf("unknown target filter %q: %w", s, effect.ErrInvalidConfig)
}

func (f TargetFilter) allows(c effect.TargetClass) bool {
	switch f {
	case TargetsMonsters:
		return c == effect.ClassMonster
	case TargetsPlayers:
		return c == effect.ClassPlayer
	default:
		return true
	}
}

const (
	shockSlowMultiplier = 0.7
	fanDefaultHalfAngle = 0.5235987755982988 // 30°
)

// applyKindDefaults fills what a kind implies when the config leaves it unset.
func applyKindDefaults(cfg *Config) {
	switch cfg.Kind {
	case KindShock:
		if cfg.OnHit.IsZero() {
			cfg.OnHit = effect.BuffGrant{
				Kind:      "slow",
				Duration:  cfg.TickInterval,
				Magnitude: shockSlowMultiplier,
			}
		}
	case KindFan:
		if cfg.HalfAngle == 0 {
			cfg.HalfAngle = fanDefaultHalfAngle
		}
	case KindAura:
		cfg.Attached = true
	}
}

// eligible is the only per-kind variation of target selection; tick
// scheduling never looks at the kind.
func (z *Zone) eligible(t effect.Target) bool {
	if !t.Alive || !z.cfg.Targets.allows(t.Class) {
		return false
	}
	if !collision.CirclesOverlap(z.center, z.cfg.Radius, t.Position, t.Radius) {
		return false
	}

	switch z.cfg.Kind {
	case KindSanctuary:
		return t.Friendly(z.cfg.OwnerID, z.cfg.OwnerTeam)
	case KindFan:
		return t.Hostile(z.cfg.OwnerID, z.cfg.OwnerTeam) &&
			collision.InCone(z.center, z.cfg.Facing, t.Position, z.cfg.HalfAngle)
	default:
		return t.Hostile(z.cfg.OwnerID, z.cfg.OwnerTeam)
	}
}
