package skill

import (
	"github.com/udisondev/arenafx/internal/game/buff"
	"github.com/udisondev/arenafx/internal/game/effect"
)

// fakeCaster is a minimal Caster for cast-gate tests.
type fakeCaster struct {
	id       effect.EntityID
	team     int32
	pos      effect.Vec2
	mana     int32
	disabled bool
	buffs    []*buff.Buff
}

func newCaster(mana int32) *fakeCaster {
	return &fakeCaster{id: 1, team: 1, mana: mana}
}

func (c *fakeCaster) ID() effect.EntityID   { return c.id }
func (c *fakeCaster) Team() int32           { return c.team }
func (c *fakeCaster) Position() effect.Vec2 { return c.pos }
func (c *fakeCaster) Mana() int32           { return c.mana }
func (c *fakeCaster) CanCast() bool         { return !c.disabled }

func (c *fakeCaster) SpendMana(amount int32) bool {
	if c.mana < amount {
		return false
	}
	c.mana -= amount
	return true
}

func (c *fakeCaster) ApplyBuff(b *buff.Buff) { c.buffs = append(c.buffs, b) }

func boltDef() Def {
	return Def{
		ID:         1,
		Name:       "firebolt",
		Element:    "fire",
		ManaCost:   10,
		Cooldown:   0.5,
		BaseDamage: 20,
		Delivery:   DeliverProjectile,
		Projectile: ProjectileDef{Speed: 10, Lifetime: 2, Radius: 0.5},
	}
}

func blastDef(placement Placement) Def {
	return Def{
		ID:         2,
		Name:       "blast",
		ManaCost:   30,
		Cooldown:   2,
		BaseDamage: 5,
		Delivery:   DeliverZone,
		Zone: ZoneDef{
			Placement:    placement,
			Radius:       2,
			Duration:     1,
			TickInterval: 0.5,
			CastRange:    8,
		},
	}
}
