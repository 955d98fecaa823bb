package effect

import "log/slog"

// Hit describes one damage application resolved by a projectile or zone.
type Hit struct {
	Target   Target
	Amount   int32
	Origin   Vec2
	SkillTag string
	// Grant is an optional buff requested on the target together with damage.
	Grant BuffGrant
}

// DeliverHit is the single damage request entry point shared by projectiles
// and zones. Players are routed through the PvP request, monsters through the
// plain one. It never touches the target's health.
func DeliverHit(net Network, h Hit) {
	if net == nil {
		return
	}
	if h.Amount > 0 {
		switch h.Target.Class {
		case ClassPlayer:
			net.RequestPvpDamage(h.Target.ID, h.Amount, h.SkillTag)
		default:
			net.RequestDamage(h.Target.ID, h.Amount, h.Origin.X, h.Origin.Y)
		}
	}
	if !h.Grant.IsZero() {
		net.RequestBuff(h.Target.ID, h.Grant)
	}

	slog.Debug("hit delivered",
		"target", h.Target.ID,
		"class", h.Target.Class,
		"amount", h.Amount,
		"skill", h.SkillTag,
		"buff", h.Grant.Kind)
}
