package skill

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/arenafx/internal/game/buff"
	"github.com/udisondev/arenafx/internal/game/effect"
	"github.com/udisondev/arenafx/internal/game/projectile"
	"github.com/udisondev/arenafx/internal/game/zone"
)

// TryCast validates and performs a cast toward aim (a world point).
//
// Rejections return a non-Accepted Outcome and a nil error. A non-nil error
// means the cast would build a degenerate effect (effect.ErrInvalidConfig);
// it is also side-effect free.
func (s *Skill) TryCast(caster Caster, aim effect.Vec2) (Outcome, error) {
	if s.cooldownLeft > 0 {
		return RejectedNotReady, nil
	}
	if !caster.CanCast() {
		return RejectedDisabled, nil
	}
	if caster.Mana() < s.def.ManaCost {
		return RejectedInsufficientResource, nil
	}

	origin := caster.Position()
	dir, hasDir := aim.Sub(origin).Normalize()
	if s.def.needsDirection() && !hasDir {
		return RejectedNotReady, fmt.Errorf("skill %d aim %v from %v: zero-length direction: %w",
			s.def.ID, aim, origin, effect.ErrInvalidConfig)
	}

	notice := effect.CastNotice{
		SkillID:   s.def.ID,
		CasterID:  caster.ID(),
		CasterPos: origin,
		TargetPos: aim,
	}

	var spawned []effect.Instance
	switch s.def.Delivery {
	case DeliverProjectile:
		ps, dirs, err := s.spawnProjectiles(caster, origin, dir)
		if err != nil {
			return RejectedNotReady, err
		}
		spawned = ps
		if len(dirs) > 1 {
			notice.Directions = dirs
			notice.MultiShotCount = len(dirs)
			notice.SpreadAngle = s.def.Projectile.Spread
		}
		if s.def.ExplicitOverrides {
			notice.Speed = s.def.Projectile.Speed
			notice.HitboxRadius = s.def.Projectile.Radius
			notice.Lifetime = s.def.Projectile.Lifetime
		}

	case DeliverZone:
		center := s.zoneCenter(origin, aim)
		if s.def.Zone.Placement == AtAim && s.env.Map != nil &&
			s.env.Map.IsAreaBlocked(center.X, center.Y, s.def.Zone.Radius) {
			return RejectedBlocked, nil
		}
		z, err := s.spawnZone(caster, center, dir)
		if err != nil {
			return RejectedNotReady, err
		}
		spawned = []effect.Instance{z}
		notice.TargetPos = center
		if s.def.ExplicitOverrides {
			notice.HitboxRadius = s.def.Zone.Radius
			notice.Lifetime = s.def.Zone.Duration
			if s.def.Zone.Kind.IsPhased() {
				notice.Lifetime = s.def.Zone.FallTime + s.def.Zone.LingerTime
			}
		}
		if s.def.Zone.Kind == zone.KindFan {
			notice.Directions = []effect.Vec2{dir}
		}
	}

	var casterBuff *buff.Buff
	if !s.def.CasterBuff.IsZero() {
		b, err := buff.FromGrant(s.def.CasterBuff)
		if err != nil {
			return RejectedNotReady, fmt.Errorf("skill %d caster buff: %w", s.def.ID, err)
		}
		b.SetSource(caster.ID())
		casterBuff = b
	}

	// Everything is built; from here on the cast cannot fail.
	if !caster.SpendMana(s.def.ManaCost) {
		for _, e := range spawned {
			e.Cancel()
		}
		return RejectedInsufficientResource, nil
	}
	s.cooldownLeft = s.cooldown
	s.effects = append(s.effects, spawned...)
	s.casts++
	if casterBuff != nil {
		caster.ApplyBuff(casterBuff)
	}
	if s.env.Net != nil {
		s.env.Net.NotifyCast(notice)
	}

	slog.Debug("skill cast",
		"caster", caster.ID(),
		"skill", s.def.Name,
		"skillID", s.def.ID,
		"delivery", s.def.Delivery,
		"spawned", len(spawned),
		"mana", caster.Mana())

	return Accepted, nil
}

// spawnProjectiles builds one projectile per shot. Nothing is registered until
// every shot validated.
func (s *Skill) spawnProjectiles(caster Caster, origin, dir effect.Vec2) ([]effect.Instance, []effect.Vec2, error) {
	pd := s.def.Projectile
	dirs := spreadDirections(dir, pd.Count, pd.Spread)

	out := make([]effect.Instance, 0, len(dirs))
	for _, d := range dirs {
		p, err := projectile.New(projectile.Config{
			Kind:         pd.Kind,
			OwnerID:      caster.ID(),
			OwnerTeam:    caster.Team(),
			SkillTag:     s.Tag(),
			Origin:       origin,
			Direction:    d,
			Speed:        pd.Speed,
			Lifetime:     pd.Lifetime,
			Radius:       pd.Radius,
			Damage:       s.damage,
			Pierce:       pd.Pierce,
			TickInterval: pd.TickInterval,
			MaxRange:     pd.MaxRange,
			OnHit:        pd.OnHit,
		}, s.env)
		if err != nil {
			return nil, nil, fmt.Errorf("skill %d: %w", s.def.ID, err)
		}
		out = append(out, p)
	}
	return out, dirs, nil
}

func (s *Skill) spawnZone(caster Caster, center, dir effect.Vec2) (*zone.Zone, error) {
	zd := s.def.Zone
	z, err := zone.New(zone.Config{
		Kind:          zd.Kind,
		OwnerID:       caster.ID(),
		OwnerTeam:     caster.Team(),
		SkillTag:      s.Tag(),
		Center:        center,
		Attached:      zd.Placement == Attached,
		Radius:        zd.Radius,
		Duration:      zd.Duration,
		TickInterval:  zd.TickInterval,
		DamagePerTick: s.damage,
		Targets:       zd.Targets,
		Facing:        dir,
		HalfAngle:     zd.HalfAngle,
		FallTime:      zd.FallTime,
		LingerTime:    zd.LingerTime,
		ImpactDamage:  s.damage,
		OnHit:         zd.OnHit,
	}, s.env)
	if err != nil {
		return nil, fmt.Errorf("skill %d: %w", s.def.ID, err)
	}
	return z, nil
}

// zoneCenter resolves the spawn point for the zone's placement.
func (s *Skill) zoneCenter(origin, aim effect.Vec2) effect.Vec2 {
	if s.def.Zone.Placement != AtAim {
		return origin
	}
	r := s.def.Zone.CastRange
	if r <= 0 {
		return aim
	}
	d := aim.Sub(origin)
	if d.LenSq() <= r*r {
		return aim
	}
	unit, _ := d.Normalize()
	return origin.Add(unit.Scale(r))
}

// spreadDirections fans count unit vectors evenly across spread radians,
// centred on dir. count <= 1 yields dir alone.
func spreadDirections(dir effect.Vec2, count int, spread float64) []effect.Vec2 {
	if count <= 1 {
		return []effect.Vec2{dir}
	}
	out := make([]effect.Vec2, count)
	step := spread / float64(count-1)
	start := -spread / 2
	for i := range count {
		out[i] = dir.Rotate(start + step*float64(i))
	}
	return out
}
