package buff

import "log/slog"

// maxBuffs caps a single combatant's list; the oldest buff is finalized and
// dropped when a new one would exceed it.
const maxBuffs = 32

// List holds every buff on one combatant. Buffs of the same kind coexist and
// expire independently; aggregated modifiers are recomputed on every query.
//
// Not safe for concurrent use: the frame loop is single-threaded.
type List struct {
	buffs []*Buff
}

// NewList creates an empty buff list.
func NewList() *List {
	return &List{buffs: make([]*Buff, 0, 8)}
}

// Add appends b. Inactive buffs are ignored.
func (l *List) Add(b *Buff) {
	if b == nil || !b.IsActive() {
		return
	}
	if len(l.buffs) >= maxBuffs {
		oldest := l.buffs[0]
		oldest.Cancel()
		l.buffs = l.buffs[1:]

		slog.Debug("buff limit reached, removed oldest", "kind", oldest.Kind())
	}
	l.buffs = append(l.buffs, b)
}

// Update ticks every buff, drops the expired ones and returns the total
// regen heal produced this step.
func (l *List) Update(dt float64) int32 {
	var heal int32
	n := 0
	for _, b := range l.buffs {
		heal += b.Update(dt)
		if b.IsActive() {
			l.buffs[n] = b
			n++
		}
	}
	clear(l.buffs[n:])
	l.buffs = l.buffs[:n]
	return heal
}

// Clear finalizes and removes every buff (death, respawn).
func (l *List) Clear() {
	for _, b := range l.buffs {
		b.Cancel()
	}
	clear(l.buffs)
	l.buffs = l.buffs[:0]
}

// Len returns the number of active buffs.
func (l *List) Len() int { return len(l.buffs) }

// Active returns a copy of the active buffs.
func (l *List) Active() []*Buff {
	out := make([]*Buff, len(l.buffs))
	copy(out, l.buffs)
	return out
}

// Count returns how many active buffs of kind k are present.
func (l *List) Count(k Kind) int {
	n := 0
	for _, b := range l.buffs {
		if b.IsActive() && b.Kind() == k {
			n++
		}
	}
	return n
}

// Has reports whether at least one active buff of kind k is present.
func (l *List) Has(k Kind) bool { return l.Count(k) > 0 }

// SpeedMultiplier is the product of every active Speed and Slow multiplier.
func (l *List) SpeedMultiplier() float64 {
	m := 1.0
	for _, b := range l.buffs {
		m *= b.SpeedMultiplier()
	}
	return m
}

// DefenseBonus is the sum of every active Defense bonus.
func (l *List) DefenseBonus() int32 {
	var sum int32
	for _, b := range l.buffs {
		if b.IsActive() && b.Kind() == KindDefense {
			sum += b.payload.Bonus
		}
	}
	return sum
}

// ShieldCapacity is the total capacity left across active shields.
func (l *List) ShieldCapacity() int32 {
	var sum int32
	for _, b := range l.buffs {
		if b.IsActive() && b.Kind() == KindShield {
			sum += b.payload.Capacity
		}
	}
	return sum
}

// IsStunned reports whether an active Stun is present.
func (l *List) IsStunned() bool { return l.Has(KindStun) }

// IsSilenced reports whether an active Silence is present.
func (l *List) IsSilenced() bool { return l.Has(KindSilence) }

// IsInvincible reports whether an active Invincible is present.
func (l *List) IsInvincible() bool { return l.Has(KindInvincible) }

// AbsorbDamage drains shields oldest first and returns the damage left over.
// Depleted shields stay in the list until their timer runs out.
func (l *List) AbsorbDamage(amount int32) int32 {
	for _, b := range l.buffs {
		if amount <= 0 {
			break
		}
		amount -= b.Absorb(amount)
	}
	return amount
}
