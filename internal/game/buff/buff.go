// Package buff implements duration-bounded status modifiers on combatants.
package buff

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/udisondev/arenafx/internal/game/effect"
)

// ErrInvalidConfig is returned for non-positive durations and payloads that
// would make a buff meaningless.
var ErrInvalidConfig = errors.New("invalid buff configuration")

// expiryEpsilon treats float leftovers of accumulated frame deltas as zero.
const expiryEpsilon = 1e-9

// Buff is a single status modifier. It is owned by exactly one List.
type Buff struct {
	kind      Kind
	payload   Payload
	duration  float64
	remaining float64
	sourceID  effect.EntityID

	active    bool
	finalized bool

	regenAcc float64

	onFinalize func(*Buff)
}

// New creates an active buff. Duration must be positive.
func New(kind Kind, duration float64, payload Payload) (*Buff, error) {
	if _, ok := kindNames[kind]; !ok {
		return nil, fmt.Errorf("buff kind %d: %w", kind, ErrInvalidConfig)
	}
	if !(duration > 0) || math.IsInf(duration, 0) {
		return nil, fmt.Errorf("%s duration %v: %w", kind, duration, ErrInvalidConfig)
	}
	if err := validatePayload(kind, payload); err != nil {
		return nil, err
	}

	return &Buff{
		kind:      kind,
		payload:   payload,
		duration:  duration,
		remaining: duration,
		active:    true,
	}, nil
}

// NewShield is a convenience constructor for a shield of the given capacity.
func NewShield(duration float64, capacity int32) (*Buff, error) {
	return New(KindShield, duration, Payload{Capacity: capacity})
}

// NewRegen builds a regen buff healing hpPerSecond, emitted in whole ticks of
// tickInterval seconds.
func NewRegen(duration float64, hpPerSecond float64, tickInterval float64) (*Buff, error) {
	if !(tickInterval > 0) {
		return nil, fmt.Errorf("regen tick interval %v: %w", tickInterval, ErrInvalidConfig)
	}
	return New(KindRegen, duration, Payload{
		HPPerTick:    int32(math.Round(hpPerSecond * tickInterval)),
		TickInterval: tickInterval,
	})
}

// FromGrant converts a server/effect buff grant into a Buff.
func FromGrant(g effect.BuffGrant) (*Buff, error) {
	kind, err := ParseKind(g.Kind)
	if err != nil {
		return nil, err
	}

	var p Payload
	switch kind {
	case KindShield:
		p.Capacity = int32(g.Magnitude)
	case KindSpeed, KindSlow:
		p.Multiplier = g.Magnitude
	case KindDefense:
		p.Bonus = int32(g.Magnitude)
	case KindRegen:
		if !(g.TickInterval > 0) {
			return nil, fmt.Errorf("regen grant without tick interval: %w", ErrInvalidConfig)
		}
		p.HPPerTick = int32(g.Magnitude)
		p.TickInterval = g.TickInterval
	}

	b, err := New(kind, g.Duration, p)
	if err != nil {
		return nil, err
	}
	b.sourceID = g.SourceID
	return b, nil
}

func validatePayload(kind Kind, p Payload) error {
	switch kind {
	case KindShield:
		if p.Capacity < 0 {
			return fmt.Errorf("shield capacity %d: %w", p.Capacity, ErrInvalidConfig)
		}
	case KindSpeed, KindSlow:
		if !(p.Multiplier > 0) {
			return fmt.Errorf("%s multiplier %v: %w", kind, p.Multiplier, ErrInvalidConfig)
		}
	case KindRegen:
		if !(p.TickInterval > 0) || p.HPPerTick < 0 {
			return fmt.Errorf("regen %d hp every %vs: %w", p.HPPerTick, p.TickInterval, ErrInvalidConfig)
		}
	}
	return nil
}

// Kind returns the buff type tag.
func (b *Buff) Kind() Kind { return b.kind }

// IsActive reports whether the buff still applies. It turns false exactly once.
func (b *Buff) IsActive() bool { return b.active }

// Remaining returns seconds left, never negative.
func (b *Buff) Remaining() float64 { return b.remaining }

// Duration returns the configured total duration.
func (b *Buff) Duration() float64 { return b.duration }

// Progress returns remaining/max in [0, 1].
func (b *Buff) Progress() float64 {
	p := b.remaining / b.duration
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Payload returns a copy of the current payload (finalized buffs report the
// neutral values set by the finalize hook).
func (b *Buff) Payload() Payload { return b.payload }

// SourceID is the entity that applied the buff, NoEntity when unknown.
func (b *Buff) SourceID() effect.EntityID { return b.sourceID }

// SetSource records who applied the buff.
func (b *Buff) SetSource(id effect.EntityID) { b.sourceID = id }

// OnFinalize registers a callback invoked once, right after the kind specific
// finalize hook.
func (b *Buff) OnFinalize(fn func(*Buff)) { b.onFinalize = fn }

// SpeedMultiplier is the buff's contribution to movement speed (1 when none).
func (b *Buff) SpeedMultiplier() float64 {
	if !b.active || !b.kind.modifiesSpeed() {
		return 1
	}
	return b.payload.Multiplier
}

// Update advances the buff clock by dt seconds and returns the heal emitted
// by a regen buff during this step (0 for every other kind).
func (b *Buff) Update(dt float64) int32 {
	if !b.active || dt <= 0 {
		return 0
	}

	step := dt
	if step > b.remaining {
		step = b.remaining
	}

	var heal int32
	if b.kind == KindRegen {
		heal = b.accumulateRegen(step)
	}

	b.remaining -= dt
	if b.remaining <= expiryEpsilon {
		b.remaining = 0
		b.expire()
	}
	return heal
}

// accumulateRegen adds dt to the sub-accumulator and emits whole ticks only,
// keeping the remainder. The emitted total therefore depends on elapsed time,
// not on how frames split it.
func (b *Buff) accumulateRegen(dt float64) int32 {
	b.regenAcc += dt
	ticks := math.Floor((b.regenAcc + expiryEpsilon) / b.payload.TickInterval)
	if ticks <= 0 {
		return 0
	}
	b.regenAcc -= ticks * b.payload.TickInterval
	if b.regenAcc < 0 {
		b.regenAcc = 0
	}
	return int32(ticks) * b.payload.HPPerTick
}

// Absorb soaks up to the shield's remaining capacity and returns how much was
// absorbed. Non-shield or inactive buffs absorb nothing.
func (b *Buff) Absorb(incoming int32) int32 {
	if !b.active || b.kind != KindShield || incoming <= 0 {
		return 0
	}
	absorbed := min(incoming, b.payload.Capacity)
	b.payload.Capacity -= absorbed
	return absorbed
}

// Cancel ends the buff early. Idempotent; runs the same finalize hook as
// natural expiry.
func (b *Buff) Cancel() {
	if !b.active {
		return
	}
	b.remaining = 0
	b.expire()
}

func (b *Buff) expire() {
	b.active = false
	if b.finalized {
		return
	}
	b.finalized = true
	finalize(b)
	if b.onFinalize != nil {
		b.onFinalize(b)
	}
}

// finalize resets the payload to the kind's neutral value.
func finalize(b *Buff) {
	switch b.kind {
	case KindShield:
		b.payload.Capacity = 0
	case KindSpeed, KindSlow:
		b.payload.Multiplier = 1.0
	case KindDefense:
		b.payload.Bonus = 0
	case KindRegen:
		b.payload.HPPerTick = 0
		b.regenAcc = 0
	}

	slog.Debug("buff expired", "kind", b.kind, "source", b.sourceID)
}
