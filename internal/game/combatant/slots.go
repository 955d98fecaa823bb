package combatant

import (
	"fmt"

	"github.com/udisondev/arenafx/internal/game/effect"
	"github.com/udisondev/arenafx/internal/game/skill"
)

// Equip puts s into slot, replacing (and cancelling the effects of) whatever
// was there. A nil s empties the slot.
func (c *Combatant) Equip(slot int, s *skill.Skill) error {
	if slot < 0 || slot >= MaxSlots {
		return fmt.Errorf("equip slot %d: %w", slot, ErrSlotOutOfRange)
	}
	if old := c.slots[slot]; old != nil && old != s {
		old.CancelAll()
	}
	c.slots[slot] = s
	return nil
}

// Slot returns the skill in slot, or nil if it is empty.
func (c *Combatant) Slot(slot int) (*skill.Skill, error) {
	if slot < 0 || slot >= MaxSlots {
		return nil, fmt.Errorf("slot %d: %w", slot, ErrSlotOutOfRange)
	}
	return c.slots[slot], nil
}

// Skills returns the equipped skills in slot order, skipping empty slots.
func (c *Combatant) Skills() []*skill.Skill {
	out := make([]*skill.Skill, 0, MaxSlots)
	for _, s := range c.slots {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// Cast tries the skill in slot toward aim. An empty slot is NotReady.
func (c *Combatant) Cast(slot int, aim effect.Vec2) (skill.Outcome, error) {
	s, err := c.Slot(slot)
	if err != nil {
		return skill.RejectedNotReady, err
	}
	if s == nil {
		return skill.RejectedNotReady, nil
	}
	return s.TryCast(c, aim)
}

// UpdateSkills advances cooldowns and every live effect of every slot.
func (c *Combatant) UpdateSkills(dt float64) {
	for _, s := range c.slots {
		if s != nil {
			s.Update(dt)
		}
	}
}
