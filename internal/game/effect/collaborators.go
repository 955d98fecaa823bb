package effect

// MapOracle answers wall/tile collision queries.
type MapOracle interface {
	IsPositionBlocked(x, y float64) bool
	IsAreaBlocked(cx, cy, radius float64) bool
}

// LineOfSight is optionally implemented by a MapOracle that can check a
// straight segment; projectiles use it to avoid tunnelling through thin walls.
type LineOfSight interface {
	CanSee(from, to Vec2) bool
}

// World supplies the live entity snapshot. Implementations must return the same
// snapshot for the whole frame.
type World interface {
	LiveTargets() []Target
	Lookup(id EntityID) (Target, bool)
}

// Network is the fire-and-forget outbound side of the combat server link.
// None of these calls mutate remote state locally; the server confirms later.
type Network interface {
	RequestDamage(targetID EntityID, amount int32, originX, originY float64)
	RequestPvpDamage(targetID EntityID, amount int32, skillTag string)
	RequestHeal(targetID EntityID, amount int32)
	RequestBuff(targetID EntityID, grant BuffGrant)
	NotifyCast(notice CastNotice)
}

// BuffGrant describes a buff an effect asks the server to apply to a target.
// Kind is the buff package's wire name ("slow", "regen", ...).
type BuffGrant struct {
	Kind     string  `json:"kind" yaml:"kind"`
	Duration float64 `json:"duration" yaml:"duration"`
	// Magnitude is kind specific: capacity, multiplier, bonus or hp per tick.
	Magnitude    float64  `json:"magnitude,omitempty" yaml:"magnitude"`
	TickInterval float64  `json:"tick_interval,omitempty" yaml:"tick_interval"`
	SourceID     EntityID `json:"source_id,omitempty" yaml:"-"`
}

// IsZero reports whether no buff is configured.
func (g BuffGrant) IsZero() bool { return g.Kind == "" }

// CastNotice carries enough for a remote peer to rebuild the effect without a
// round trip. Overrides are zero when derivable from the skill id alone.
type CastNotice struct {
	SkillID        int32    `json:"skill_id"`
	CasterID       EntityID `json:"caster_id"`
	CasterPos      Vec2     `json:"caster_pos"`
	TargetPos      Vec2     `json:"target_pos"`
	Speed          float64  `json:"speed,omitempty"`
	HitboxRadius   float64  `json:"hitbox_radius,omitempty"`
	Lifetime       float64  `json:"lifetime,omitempty"`
	Directions     []Vec2   `json:"directions,omitempty"`
	MultiShotCount int      `json:"multi_shot_count,omitempty"`
	SpreadAngle    float64  `json:"spread_angle,omitempty"`
}

// Env bundles the injected collaborators every effect instance needs.
type Env struct {
	Net   Network
	Map   MapOracle
	World World
}

// Instance is a live projectile or zone owned by a skill.
type Instance interface {
	// Update advances the effect by dt seconds. A returned error is local to
	// this instance; the owner logs it and keeps updating siblings.
	Update(dt float64) error
	IsAlive() bool
	Position() Vec2
	RenderSize() float64
	// Cancel ends the effect early through the same path as natural expiry.
	// Calling it more than once is a no-op.
	Cancel()
}
