// Package skill implements the cast gate: cooldown and mana checks, upgrades,
// and the registry of projectiles and zones a skill has spawned.
package skill

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/udisondev/arenafx/internal/game/buff"
	"github.com/udisondev/arenafx/internal/game/effect"
)

// Caster is what a skill needs from the combatant that owns it.
type Caster interface {
	ID() effect.EntityID
	Team() int32
	Position() effect.Vec2
	Mana() int32
	// SpendMana debits amount and reports whether it was possible.
	SpendMana(amount int32) bool
	// CanCast is false while stunned, silenced or dead.
	CanCast() bool
	ApplyBuff(b *buff.Buff)
}

// Skill is one equipped slot's runtime state. It lives for the whole match.
//
// Invariant: 0 <= cooldownLeft <= cooldown.
type Skill struct {
	def Def
	env effect.Env

	cooldown     float64
	cooldownLeft float64
	damage       int32
	upgrades     int

	effects []effect.Instance
	casts   int
}

// New creates a ready-to-cast skill from a validated definition.
func New(def Def, env effect.Env) (*Skill, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &Skill{
		def:      def,
		env:      env,
		cooldown: def.Cooldown,
		damage:   def.BaseDamage,
		effects:  make([]effect.Instance, 0, 4),
	}, nil
}

func (s *Skill) ID() int32                  { return s.def.ID }
func (s *Skill) Name() string               { return s.def.Name }
func (s *Skill) Element() string            { return s.def.Element }
func (s *Skill) Def() Def                   { return s.def }
func (s *Skill) ManaCost() int32            { return s.def.ManaCost }
func (s *Skill) Cooldown() float64          { return s.cooldown }
func (s *Skill) CooldownRemaining() float64 { return s.cooldownLeft }
func (s *Skill) Damage() int32              { return s.damage }
func (s *Skill) Upgrades() int              { return s.upgrades }
func (s *Skill) Casts() int                 { return s.casts }
func (s *Skill) IsReady() bool              { return s.cooldownLeft == 0 }

// Tag identifies the skill in PvP damage requests.
func (s *Skill) Tag() string {
	if s.def.Name != "" {
		return s.def.Name
	}
	return "skill-" + strconv.Itoa(int(s.def.ID))
}

// CooldownProgress returns the elapsed fraction of the cooldown in [0, 1];
// 1 means ready.
func (s *Skill) CooldownProgress() float64 {
	if s.cooldown <= 0 {
		return 1
	}
	return 1 - s.cooldownLeft/s.cooldown
}

// ActiveEffects returns a copy of the live projectile/zone registry.
func (s *Skill) ActiveEffects() []effect.Instance {
	out := make([]effect.Instance, len(s.effects))
	copy(out, s.effects)
	return out
}

// Update advances the cooldown, then every live effect, then drops the dead
// ones. An effect's error is logged and never stops its siblings.
func (s *Skill) Update(dt float64) {
	if dt <= 0 {
		return
	}

	s.cooldownLeft -= dt
	if s.cooldownLeft < 0 {
		s.cooldownLeft = 0
	}

	n := 0
	for _, e := range s.effects {
		if err := e.Update(dt); err != nil {
			slog.Warn("effect update failed",
				"skill", s.def.Name,
				"skillID", s.def.ID,
				"error", err)
		}
		if e.IsAlive() {
			s.effects[n] = e
			n++
		}
	}
	clear(s.effects[n:])
	s.effects = s.effects[:n]
}

// ResetCooldown makes the skill castable immediately (respawn).
func (s *Skill) ResetCooldown() {
	s.cooldownLeft = 0
}

// CancelAll ends every live effect through its own finalize path.
func (s *Skill) CancelAll() {
	for _, e := range s.effects {
		e.Cancel()
	}
	clear(s.effects)
	s.effects = s.effects[:0]
}

// Upgrade changes a skill's numbers. Bonuses stack across calls.
type Upgrade struct {
	// DamageBonus is added to the current damage.
	DamageBonus int32
	// CooldownReduction in [0, 1) multiplies the cooldown by (1 - reduction).
	CooldownReduction float64
}

// Upgrade applies u: damage bonus first, then cooldown reduction.
func (s *Skill) Upgrade(u Upgrade) error {
	if u.CooldownReduction < 0 || u.CooldownReduction >= 1 || u.DamageBonus < 0 {
		return fmt.Errorf("skill %d upgrade %+v: %w", s.def.ID, u, effect.ErrInvalidConfig)
	}

	s.damage += u.DamageBonus
	s.cooldown *= 1 - u.CooldownReduction
	if s.cooldownLeft > s.cooldown {
		s.cooldownLeft = s.cooldown
	}
	s.upgrades++

	slog.Debug("skill upgraded",
		"skill", s.def.Name,
		"damage", s.damage,
		"cooldown", s.cooldown,
		"upgrades", s.upgrades)
	return nil
}
