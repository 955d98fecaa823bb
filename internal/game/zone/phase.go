package zone

// Phase is the arrival state of a phased zone. Non-phased zones stay in
// PhaseNone until they finish.
type Phase uint8

const (
	PhaseNone Phase = iota
	PhaseFalling
	PhaseImpact
	PhaseLingering
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseFalling:
		return "falling"
	case PhaseImpact:
		return "impact"
	case PhaseLingering:
		return "lingering"
	case PhaseFinished:
		return "finished"
	default:
		return "none"
	}
}

// order gives PhaseNone the same rank as Falling so the transition check works
// for both machines: None -> Finished and Falling -> Impact -> Lingering -> Finished.
func (p Phase) order() int {
	if p == PhaseNone {
		return 0
	}
	return int(p) - 1
}

// canAdvance reports whether moving from p to next is a forward transition.
func (p Phase) canAdvance(next Phase) bool {
	return next.order() > p.order()
}
