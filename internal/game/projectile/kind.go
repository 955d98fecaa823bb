package projectile

import (
	"fmt"
	"strings"

	"github.com/udisondev/arenafx/internal/game/effect"
)

// Kind is the closed set of projectile variants.
type Kind uint8

const (
	KindBolt Kind = iota
	KindPiercer
	KindFrost
	KindBeam
	KindVolley
)

var kindNames = [...]string{
	KindBolt:    "bolt",
	KindPiercer: "piercer",
	KindFrost:   "frost",
	KindBeam:    "beam",
	KindVolley:  "volley",
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
	return 0, fmt.Errorf("unknown projectile kind %q: %w", s, effect.ErrInvalidConfig)
}

const (
	piercerDefaultBudget = 3
	frostSlowMultiplier  = 0.6
	frostSlowDuration    = 1.5
	beamDefaultWindow    = 0.5
)

// applyKindDefaults fills in what a kind implies when the config leaves it
// unset. It is the only place where projectile kinds differ in behaviour.
func applyKindDefaults(cfg *Config) {
	switch cfg.Kind {
	case KindPiercer:
		if cfg.Pierce == 0 {
			cfg.Pierce = piercerDefaultBudget
		}
	case KindFrost:
		if cfg.OnHit.IsZero() {
			cfg.OnHit = effect.BuffGrant{
				Kind:      "slow",
				Duration:  frostSlowDuration,
				Magnitude: frostSlowMultiplier,
			}
		}
	case KindBeam:
		cfg.DoT = true
		if cfg.TickInterval == 0 {
			cfg.TickInterval = beamDefaultWindow
		}
	}
	if cfg.Pierce == 0 {
		cfg.Pierce = 1
	}
}
