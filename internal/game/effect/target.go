package effect

// EntityID is a non-owning handle into the externally owned entity table.
// Effects keep IDs, never pointers, so their lifetime never depends on a target's.
type EntityID uint32

// NoEntity is the zero handle.
const NoEntity EntityID = 0

// TargetClass distinguishes damage routing: players go through the PvP path.
type TargetClass uint8

const (
	ClassMonster TargetClass = iota
	ClassPlayer
)

func (c TargetClass) String() string {
	switch c {
	case ClassPlayer:
		return "player"
	default:
		return "monster"
	}
}

// Target is a per-frame snapshot of a combatant as seen by effects.
type Target struct {
	ID       EntityID    `json:"id"`
	Class    TargetClass `json:"class"`
	Team     int32       `json:"team"`
	Position Vec2        `json:"position"`
	Radius   float64     `json:"radius"`
	Alive    bool        `json:"alive"`
}

// Hostile reports whether t is a legal damage target for an effect owned by
// ownerID on ownerTeam. Team 0 means "no team": everyone else is hostile.
func (t Target) Hostile(ownerID EntityID, ownerTeam int32) bool {
	if t.ID == ownerID {
		return false
	}
	if ownerTeam != 0 && t.Team == ownerTeam {
		return false
	}
	return true
}

// Friendly is the complement of Hostile, including the owner itself.
func (t Target) Friendly(ownerID EntityID, ownerTeam int32) bool {
	return !t.Hostile(ownerID, ownerTeam)
}
