package skill

// Outcome is the result of a cast attempt. Every rejection is silent: no mana
// is spent, no effect spawns and nothing is sent.
type Outcome uint8

const (
	Accepted Outcome = iota
	// RejectedNotReady: cooldown has not elapsed.
	RejectedNotReady
	// RejectedInsufficientResource: not enough mana.
	RejectedInsufficientResource
	// RejectedDisabled: caster is stunned, silenced or dead.
	RejectedDisabled
	// RejectedBlocked: the ground target lies inside a wall.
	RejectedBlocked
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case RejectedNotReady:
		return "not_ready"
	case RejectedInsufficientResource:
		return "insufficient_resource"
	case RejectedDisabled:
		return "disabled"
	case RejectedBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}

// OK reports whether the cast went through.
func (o Outcome) OK() bool { return o == Accepted }
