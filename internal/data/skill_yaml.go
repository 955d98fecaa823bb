package data

import (
	"fmt"
	"math"

	"github.com/udisondev/arenafx/internal/game/effect"
	"github.com/udisondev/arenafx/internal/game/projectile"
	"github.com/udisondev/arenafx/internal/game/skill"
	"github.com/udisondev/arenafx/internal/game/zone"
)

// skillCatalog is the YAML root of a skill catalog file.
type skillCatalog struct {
	Skills []skillYAML `yaml:"skills"`
}

type skillYAML struct {
	ID                int32            `yaml:"id"`
	Name              string           `yaml:"name"`
	Element           string           `yaml:"element"`
	ManaCost          int32            `yaml:"mana_cost"`
	Cooldown          float64          `yaml:"cooldown"`
	Damage            int32            `yaml:"damage"`
	Delivery          string           `yaml:"delivery"`
	ExplicitOverrides bool             `yaml:"explicit_overrides"`
	Projectile        *projectileYAML  `yaml:"projectile"`
	Zone              *zoneYAML        `yaml:"zone"`
	CasterBuff        effect.BuffGrant `yaml:"caster_buff"`
}

type projectileYAML struct {
	Kind         string           `yaml:"kind"`
	Speed        float64          `yaml:"speed"`
	Lifetime     float64          `yaml:"lifetime"`
	Radius       float64          `yaml:"radius"`
	MaxRange     float64          `yaml:"max_range"`
	Pierce       int              `yaml:"pierce"`
	TickInterval float64          `yaml:"tick_interval"`
	Count        int              `yaml:"count"`
	SpreadDeg    float64          `yaml:"spread_deg"`
	OnHit        effect.BuffGrant `yaml:"on_hit"`
}

type zoneYAML struct {
	Kind         string           `yaml:"kind"`
	Placement    string           `yaml:"placement"`
	Radius       float64          `yaml:"radius"`
	Duration     float64          `yaml:"duration"`
	TickInterval float64          `yaml:"tick_interval"`
	CastRange    float64          `yaml:"cast_range"`
	HalfAngleDeg float64          `yaml:"half_angle_deg"`
	FallTime     float64          `yaml:"fall_time"`
	LingerTime   float64          `yaml:"linger_time"`
	Targets      string           `yaml:"targets"`
	OnHit        effect.BuffGrant `yaml:"on_hit"`
}

var deliveries = map[string]skill.Delivery{
	"projectile": skill.DeliverProjectile,
	"zone":       skill.DeliverZone,
	"self_buff":  skill.DeliverSelfBuff,
}

var placements = map[string]skill.Placement{
	"":          skill.AtCaster,
	"at_caster": skill.AtCaster,
	"at_aim":    skill.AtAim,
	"attached":  skill.Attached,
}

// toDef converts one catalog entry. The result is validated by the caller.
func (y skillYAML) toDef() (skill.Def, error) {
	def := skill.Def{
		ID:                y.ID,
		Name:              y.Name,
		Element:           y.Element,
		ManaCost:          y.ManaCost,
		Cooldown:          y.Cooldown,
		BaseDamage:        y.Damage,
		CasterBuff:        y.CasterBuff,
		ExplicitOverrides: y.ExplicitOverrides,
	}

	d, ok := deliveries[y.Delivery]
	if !ok {
		return def, fmt.Errorf("skill %d: unknown delivery %q: %w", y.ID, y.Delivery, effect.ErrInvalidConfig)
	}
	def.Delivery = d

	switch d {
	case skill.DeliverProjectile:
		if y.Projectile == nil {
			return def, fmt.Errorf("skill %d: projectile block missing: %w", y.ID, effect.ErrInvalidConfig)
		}
		p, err := y.Projectile.toDef()
		if err != nil {
			return def, fmt.Errorf("skill %d: %w", y.ID, err)
		}
		def.Projectile = p

	case skill.DeliverZone:
		if y.Zone == nil {
			return def, fmt.Errorf("skill %d: zone block missing: %w", y.ID, effect.ErrInvalidConfig)
		}
		z, err := y.Zone.toDef()
		if err != nil {
			return def, fmt.Errorf("skill %d: %w", y.ID, err)
		}
		def.Zone = z
	}
	return def, nil
}

func (y projectileYAML) toDef() (skill.ProjectileDef, error) {
	kind := projectile.KindBolt
	if y.Kind != "" {
		k, err := projectile.ParseKind(y.Kind)
		if err != nil {
			return skill.ProjectileDef{}, err
		}
		kind = k
	}
	return skill.ProjectileDef{
		Kind:         kind,
		Speed:        y.Speed,
		Lifetime:     y.Lifetime,
		Radius:       y.Radius,
		MaxRange:     y.MaxRange,
		Pierce:       y.Pierce,
		TickInterval: y.TickInterval,
		Count:        y.Count,
		Spread:       degToRad(y.SpreadDeg),
		OnHit:        y.OnHit,
	}, nil
}

func (y zoneYAML) toDef() (skill.ZoneDef, error) {
	kind := zone.KindBlast
	if y.Kind != "" {
		k, err := zone.ParseKind(y.Kind)
		if err != nil {
			return skill.ZoneDef{}, err
		}
		kind = k
	}
	placement, ok := placements[y.Placement]
	if !ok {
		return skill.ZoneDef{}, fmt.Errorf("unknown placement %q: %w", y.Placement, effect.ErrInvalidConfig)
	}
	targets, err := zone.ParseTargetFilter(y.Targets)
	if err != nil {
		return skill.ZoneDef{}, err
	}
	return skill.ZoneDef{
		Kind:         kind,
		Placement:    placement,
		Radius:       y.Radius,
		Duration:     y.Duration,
		TickInterval: y.TickInterval,
		CastRange:    y.CastRange,
		HalfAngle:    degToRad(y.HalfAngleDeg),
		FallTime:     y.FallTime,
		LingerTime:   y.LingerTime,
		Targets:      targets,
		OnHit:        y.OnHit,
	}, nil
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180 }
