// Package combatant composes one fighter: buff list, up to three skill slots,
// mana and the last server-confirmed health.
package combatant

import (
	"errors"
	"fmt"

	"github.com/udisondev/arenafx/internal/game/buff"
	"github.com/udisondev/arenafx/internal/game/effect"
	"github.com/udisondev/arenafx/internal/game/skill"
)

// MaxSlots is the number of equippable skill slots.
const MaxSlots = 3

var ErrSlotOutOfRange = errors.New("skill slot out of range")

// Config describes a combatant at spawn.
type Config struct {
	ID        effect.EntityID
	Team      int32
	Class     effect.TargetClass
	Position  effect.Vec2
	Radius    float64
	MaxHealth int32
	MaxMana   int32
}

// Combatant: локальный боец. Здоровье меняется только подтверждением сервера,
// мана списывается локально при касте.
type Combatant struct {
	id       effect.EntityID
	team     int32
	class    effect.TargetClass
	position effect.Vec2
	radius   float64

	health    int32
	maxHealth int32
	mana      int32
	maxMana   int32
	alive     bool

	buffs *buff.List
	slots [MaxSlots]*skill.Skill

	net effect.Network
}

// New creates a live combatant at full health and mana.
func New(cfg Config, net effect.Network) (*Combatant, error) {
	if cfg.MaxHealth <= 0 || cfg.MaxMana < 0 || !(cfg.Radius > 0) {
		return nil, fmt.Errorf("combatant %d: health=%d mana=%d radius=%v: %w",
			cfg.ID, cfg.MaxHealth, cfg.MaxMana, cfg.Radius, effect.ErrInvalidConfig)
	}
	return &Combatant{
		id:        cfg.ID,
		team:      cfg.Team,
		class:     cfg.Class,
		position:  cfg.Position,
		radius:    cfg.Radius,
		health:    cfg.MaxHealth,
		maxHealth: cfg.MaxHealth,
		mana:      cfg.MaxMana,
		maxMana:   cfg.MaxMana,
		alive:     true,
		buffs:     buff.NewList(),
		net:       net,
	}, nil
}

func (c *Combatant) ID() effect.EntityID       { return c.id }
func (c *Combatant) Team() int32               { return c.team }
func (c *Combatant) Class() effect.TargetClass { return c.class }
func (c *Combatant) Position() effect.Vec2     { return c.position }
func (c *Combatant) SetPosition(p effect.Vec2) { c.position = p }
func (c *Combatant) Radius() float64           { return c.radius }
func (c *Combatant) Health() int32             { return c.health }
func (c *Combatant) MaxHealth() int32          { return c.maxHealth }
func (c *Combatant) Mana() int32               { return c.mana }
func (c *Combatant) MaxMana() int32            { return c.maxMana }
func (c *Combatant) IsAlive() bool             { return c.alive }
func (c *Combatant) Buffs() *buff.List         { return c.buffs }
func (c *Combatant) SpeedMultiplier() float64  { return c.buffs.SpeedMultiplier() }
func (c *Combatant) ApplyBuff(b *buff.Buff)    { c.buffs.Add(b) }

// Target returns the snapshot value effects see for this combatant.
func (c *Combatant) Target() effect.Target {
	return effect.Target{
		ID:       c.id,
		Class:    c.class,
		Team:     c.team,
		Position: c.position,
		Radius:   c.radius,
		Alive:    c.alive,
	}
}

// CanCast is false while dead, stunned or silenced.
func (c *Combatant) CanCast() bool {
	return c.alive && !c.buffs.IsStunned() && !c.buffs.IsSilenced()
}

// SpendMana debits amount if the pool covers it.
func (c *Combatant) SpendMana(amount int32) bool {
	if amount < 0 || c.mana < amount {
		return false
	}
	c.mana -= amount
	return true
}

// SyncMana overwrites the mana pool with the server's value.
func (c *Combatant) SyncMana(mana int32) {
	c.mana = min(max(mana, 0), c.maxMana)
}
