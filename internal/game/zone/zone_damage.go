package zone

import (
	"log/slog"

	"github.com/udisondev/arenafx/internal/game/effect"
)

// applyTick opens a new hit window and delivers amount to every eligible
// target. This is the single damage entry point for all zone kinds.
func (z *Zone) applyTick(amount int32) {
	z.ledger.Advance()

	count := 0
	for _, t := range z.env.World.LiveTargets() {
		if !z.eligible(t) || !z.ledger.Mark(t.ID) {
			continue
		}
		z.deliver(t, amount)
		count++
	}
	z.hits += count

	if count > 0 {
		slog.Debug("zone tick",
			"kind", z.cfg.Kind,
			"owner", z.cfg.OwnerID,
			"targets", count,
			"amount", amount,
			"phase", z.phase)
	}
}

func (z *Zone) deliver(t effect.Target, amount int32) {
	grant := z.cfg.OnHit
	if !grant.IsZero() {
		grant.SourceID = z.cfg.OwnerID
	}

	if z.cfg.Kind.heals() {
		if amount > 0 && z.env.Net != nil {
			z.env.Net.RequestHeal(t.ID, amount)
		}
		if !grant.IsZero() && z.env.Net != nil {
			z.env.Net.RequestBuff(t.ID, grant)
		}
		return
	}

	effect.DeliverHit(z.env.Net, effect.Hit{
		Target:   t,
		Amount:   amount,
		Origin:   z.center,
		SkillTag: z.cfg.SkillTag,
		Grant:    grant,
	})
}
