package buff

import (
	"fmt"
	"strings"
)

// Kind is the closed set of status modifiers. Variation between kinds is data
// (Payload) plus one finalize switch; there are no per-kind types.
type Kind uint8

const (
	KindShield Kind = iota + 1
	KindSpeed
	KindInvincible
	KindSlow
	KindStun
	KindDefense
	KindRegen
	KindSilence
)

var kindNames = map[Kind]string{
	KindShield:     "shield",
	KindSpeed:      "speed",
	KindInvincible: "invincible",
	KindSlow:       "slow",
	KindStun:       "stun",
	KindDefense:    "defense",
	KindRegen:      "regen",
	KindSilence:    "silence",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind maps a wire/config name to a Kind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown buff kind %q: %w", s, ErrInvalidConfig)
}

// modifiesSpeed reports whether the kind contributes to the speed multiplier.
func (k Kind) modifiesSpeed() bool {
	return k == KindSpeed || k == KindSlow
}

// Payload carries kind specific data. Only the fields relevant to the kind are
// read; the rest stay zero.
type Payload struct {
	// Shield
	Capacity int32
	// Speed, Slow
	Multiplier float64
	// Defense: flat reduction of incoming damage.
	Bonus int32
	// Regen
	HPPerTick    int32
	TickInterval float64
}
