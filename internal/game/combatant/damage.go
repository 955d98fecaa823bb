package combatant

import (
	"log/slog"

	"github.com/udisondev/arenafx/internal/game/effect"
)

// Update advances buffs. Regen output is requested from the server, never
// applied locally.
func (c *Combatant) Update(dt float64) {
	heal := c.buffs.Update(dt)
	if heal > 0 && c.alive && c.net != nil {
		c.net.RequestHeal(c.id, heal)
	}
}

// ReceiveHit runs an incoming hit through invincibility, flat defense and
// shields, then requests whatever is left as damage on self. It returns the
// requested amount.
func (c *Combatant) ReceiveHit(amount int32, origin effect.Vec2) int32 {
	if !c.alive || amount <= 0 {
		return 0
	}
	if c.buffs.IsInvincible() {
		slog.Debug("hit ignored", "combatant", c.id, "amount", amount, "reason", "invincible")
		return 0
	}

	rest := max(amount-c.buffs.DefenseBonus(), 0)
	rest = c.buffs.AbsorbDamage(rest)
	if rest <= 0 {
		return 0
	}

	if c.net != nil {
		c.net.RequestDamage(c.id, rest, origin.X, origin.Y)
	}
	slog.Debug("hit received",
		"combatant", c.id,
		"incoming", amount,
		"requested", rest)
	return rest
}

// ConfirmHealth records the server's health value. Zero kills.
func (c *Combatant) ConfirmHealth(hp int32) {
	c.health = min(max(hp, 0), c.maxHealth)
	if c.health == 0 && c.alive {
		c.OnDeath()
	}
}

// OnDeath marks the combatant dead and clears every buff. Effects already in
// flight keep running.
func (c *Combatant) OnDeath() {
	if !c.alive {
		return
	}
	c.alive = false
	c.health = 0
	c.buffs.Clear()
	slog.Info("combatant died", "combatant", c.id, "team", c.team)
}

// Respawn restores health and mana, clears buffs and resets every cooldown.
func (c *Combatant) Respawn(at effect.Vec2) {
	c.buffs.Clear()
	c.alive = true
	c.health = c.maxHealth
	c.mana = c.maxMana
	c.position = at
	for _, s := range c.slots {
		if s != nil {
			s.ResetCooldown()
		}
	}
	slog.Info("combatant respawned", "combatant", c.id, "x", at.X, "y", at.Y)
}
