package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/arenafx/internal/game/buff"
	"github.com/udisondev/arenafx/internal/game/effect"
	"github.com/udisondev/arenafx/internal/game/zone"
	"github.com/udisondev/arenafx/internal/testutil"
)

func TestNew_RejectsInvalidDef(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Def)
	}{
		{"negative mana", func(d *Def) { d.ManaCost = -1 }},
		{"negative cooldown", func(d *Def) { d.Cooldown = -1 }},
		{"zero speed", func(d *Def) { d.Projectile.Speed = 0 }},
		{"zero lifetime", func(d *Def) { d.Projectile.Lifetime = 0 }},
		{"zero radius", func(d *Def) { d.Projectile.Radius = 0 }},
		{"negative spread", func(d *Def) { d.Projectile.Spread = -1 }},
		{"unknown delivery", func(d *Def) { d.Delivery = 9 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := boltDef()
			tt.mod(&def)
			_, err := New(def, effect.Env{})
			assert.ErrorIs(t, err, effect.ErrInvalidConfig)
		})
	}
}

func TestSkill_CooldownFloorsAtZero(t *testing.T) {
	s, err := New(boltDef(), testutil.Env(testutil.NewRecordingNetwork(), testutil.NewStaticWorld()))
	require.NoError(t, err)

	out, err := s.TryCast(newCaster(100), effect.V(1, 0))
	require.NoError(t, err)
	require.Equal(t, Accepted, out)

	s.Update(0.3)
	assert.InDelta(t, 0.2, s.CooldownRemaining(), 1e-9)
	assert.False(t, s.IsReady())

	s.Update(5)
	assert.Equal(t, 0.0, s.CooldownRemaining())
	assert.True(t, s.IsReady())
	assert.Equal(t, 1.0, s.CooldownProgress())
}

func TestSkill_Upgrade(t *testing.T) {
	def := boltDef()
	def.Cooldown = 2
	s, err := New(def, effect.Env{})
	require.NoError(t, err)

	require.NoError(t, s.Upgrade(Upgrade{DamageBonus: 5, CooldownReduction: 0.25}))
	assert.Equal(t, int32(25), s.Damage())
	assert.InDelta(t, 1.5, s.Cooldown(), 1e-9)

	require.NoError(t, s.Upgrade(Upgrade{DamageBonus: 5, CooldownReduction: 0.5}))
	assert.Equal(t, int32(30), s.Damage())
	assert.InDelta(t, 0.75, s.Cooldown(), 1e-9)
	assert.Equal(t, 2, s.Upgrades())

	assert.ErrorIs(t, s.Upgrade(Upgrade{CooldownReduction: 1}), effect.ErrInvalidConfig)
	assert.ErrorIs(t, s.Upgrade(Upgrade{CooldownReduction: -0.1}), effect.ErrInvalidConfig)
	assert.Equal(t, int32(30), s.Damage(), "rejected upgrade must not apply")
}

func TestSkill_UpgradeClampsRemainingCooldown(t *testing.T) {
	def := boltDef()
	def.Cooldown = 4
	s, err := New(def, testutil.Env(testutil.NewRecordingNetwork(), testutil.NewStaticWorld()))
	require.NoError(t, err)

	_, err = s.TryCast(newCaster(100), effect.V(1, 0))
	require.NoError(t, err)
	require.InDelta(t, 4, s.CooldownRemaining(), 1e-9)

	require.NoError(t, s.Upgrade(Upgrade{CooldownReduction: 0.5}))
	assert.InDelta(t, 2, s.CooldownRemaining(), 1e-9)
}

func TestSkill_UpgradedDamageReachesProjectile(t *testing.T) {
	net := testutil.NewRecordingNetwork()
	world := testutil.NewStaticWorld(testutil.Monster(10, 1, 0, 0.5))
	s, err := New(boltDef(), testutil.Env(net, world))
	require.NoError(t, err)
	require.NoError(t, s.Upgrade(Upgrade{DamageBonus: 7}))

	_, err = s.TryCast(newCaster(100), effect.V(5, 0))
	require.NoError(t, err)
	s.Update(0.05)

	calls := net.Damage()
	require.Len(t, calls, 1)
	assert.Equal(t, effect.EntityID(10), calls[0].TargetID)
	assert.Equal(t, int32(27), calls[0].Amount)
}

func TestSkill_UpdatePrunesFinishedEffects(t *testing.T) {
	s, err := New(boltDef(), testutil.Env(testutil.NewRecordingNetwork(), testutil.NewStaticWorld()))
	require.NoError(t, err)

	c := newCaster(100)
	_, err = s.TryCast(c, effect.V(1, 0))
	require.NoError(t, err)
	s.Update(0.5)
	_, err = s.TryCast(c, effect.V(1, 0))
	require.NoError(t, err)
	require.Len(t, s.ActiveEffects(), 2)

	// first bolt lives 2s from its cast; second was cast 0.5s later.
	s.Update(1.6)
	assert.Len(t, s.ActiveEffects(), 1)

	s.Update(1)
	assert.Empty(t, s.ActiveEffects())
}

func TestSkill_ActiveEffectsIsACopy(t *testing.T) {
	s, err := New(boltDef(), testutil.Env(testutil.NewRecordingNetwork(), testutil.NewStaticWorld()))
	require.NoError(t, err)
	_, err = s.TryCast(newCaster(100), effect.V(1, 0))
	require.NoError(t, err)

	snap := s.ActiveEffects()
	snap[0] = nil
	assert.NotNil(t, s.ActiveEffects()[0])
}

func TestSkill_UpdateSurvivesEffectError(t *testing.T) {
	// A nil world makes every effect report ErrNoSnapshot; the skill logs and
	// keeps ticking.
	s, err := New(boltDef(), effect.Env{Net: testutil.NewRecordingNetwork()})
	require.NoError(t, err)
	_, err = s.TryCast(newCaster(100), effect.V(1, 0))
	require.NoError(t, err)

	assert.NotPanics(t, func() { s.Update(0.1) })
	assert.Len(t, s.ActiveEffects(), 1)
}

func TestSkill_CancelAll(t *testing.T) {
	s, err := New(blastDef(AtCaster), testutil.Env(testutil.NewRecordingNetwork(), testutil.NewStaticWorld()))
	require.NoError(t, err)
	_, err = s.TryCast(newCaster(100), effect.V(1, 0))
	require.NoError(t, err)

	effects := s.ActiveEffects()
	s.CancelAll()
	assert.Empty(t, s.ActiveEffects())
	assert.False(t, effects[0].IsAlive())
}

func TestZoneCast_AtAimClampsToCastRange(t *testing.T) {
	net := testutil.NewRecordingNetwork()
	s, err := New(blastDef(AtAim), testutil.Env(net, testutil.NewStaticWorld()))
	require.NoError(t, err)

	out, err := s.TryCast(newCaster(100), effect.V(20, 0))
	require.NoError(t, err)
	require.Equal(t, Accepted, out)

	effects := s.ActiveEffects()
	require.Len(t, effects, 1)
	assert.InDelta(t, 8, effects[0].Position().X, 1e-9)
	assert.Equal(t, effect.V(8, 0), net.Notices()[0].TargetPos)
}

func TestZoneCast_AtAimBlocked(t *testing.T) {
	net := testutil.NewRecordingNetwork()
	wall := testutil.MapFunc(func(x, _ float64) bool { return x >= 4 })
	env := effect.Env{Net: net, Map: wall, World: testutil.NewStaticWorld()}
	s, err := New(blastDef(AtAim), env)
	require.NoError(t, err)

	c := newCaster(100)
	out, err := s.TryCast(c, effect.V(5, 0))
	require.NoError(t, err)
	assert.Equal(t, RejectedBlocked, out)
	assert.Equal(t, int32(100), c.mana)
	assert.Empty(t, s.ActiveEffects())
	assert.Empty(t, net.Notices())
}

func TestZoneCast_DealsCurrentDamage(t *testing.T) {
	net := testutil.NewRecordingNetwork()
	world := testutil.NewStaticWorld(testutil.Monster(7, 1, 0, 0.5))
	s, err := New(blastDef(AtCaster), testutil.Env(net, world))
	require.NoError(t, err)
	require.NoError(t, s.Upgrade(Upgrade{DamageBonus: 3}))

	_, err = s.TryCast(newCaster(100), effect.V(1, 0))
	require.NoError(t, err)
	s.Update(1)

	calls := net.Damage()
	require.Len(t, calls, 2)
	for _, c := range calls {
		assert.Equal(t, int32(8), c.Amount)
	}
}

func TestZoneCast_Attached(t *testing.T) {
	def := blastDef(Attached)
	def.Zone.Kind = zone.KindAura

	world := testutil.NewStaticWorld(testutil.Player(1, 1, 0, 0, 0.5))
	s, err := New(def, testutil.Env(testutil.NewRecordingNetwork(), world))
	require.NoError(t, err)

	_, err = s.TryCast(newCaster(100), effect.V(1, 0))
	require.NoError(t, err)

	world.Move(1, effect.V(3, 3))
	s.Update(0.1)
	assert.Equal(t, effect.V(3, 3), s.ActiveEffects()[0].Position())
}

func TestSelfBuffCast(t *testing.T) {
	def := Def{
		ID:         3,
		Name:       "barrier",
		ManaCost:   15,
		Cooldown:   10,
		Delivery:   DeliverSelfBuff,
		CasterBuff: effect.BuffGrant{Kind: "shield", Duration: 5, Magnitude: 50},
	}
	net := testutil.NewRecordingNetwork()
	s, err := New(def, testutil.Env(net, testutil.NewStaticWorld()))
	require.NoError(t, err)

	c := newCaster(20)
	out, err := s.TryCast(c, effect.Vec2{})
	require.NoError(t, err)
	require.Equal(t, Accepted, out)

	require.Len(t, c.buffs, 1)
	assert.Equal(t, buff.KindShield, c.buffs[0].Kind())
	assert.Equal(t, int32(50), c.buffs[0].Payload().Capacity)
	assert.Equal(t, effect.EntityID(1), c.buffs[0].SourceID())
	assert.Equal(t, int32(5), c.mana)
	assert.Empty(t, s.ActiveEffects())
	assert.Len(t, net.Notices(), 1)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "accepted", Accepted.String())
	assert.Equal(t, "not_ready", RejectedNotReady.String())
	assert.Equal(t, "blocked", RejectedBlocked.String())
	assert.True(t, Accepted.OK())
	assert.False(t, RejectedDisabled.OK())
}
