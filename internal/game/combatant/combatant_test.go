package combatant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/arenafx/internal/game/buff"
	"github.com/udisondev/arenafx/internal/game/effect"
	"github.com/udisondev/arenafx/internal/game/skill"
	"github.com/udisondev/arenafx/internal/testutil"
)

func newTestCombatant(t *testing.T, net effect.Network) *Combatant {
	t.Helper()
	c, err := New(Config{
		ID:        1,
		Team:      1,
		Class:     effect.ClassPlayer,
		Radius:    0.5,
		MaxHealth: 100,
		MaxMana:   50,
	}, net)
	require.NoError(t, err)
	return c
}

func mustBuff(t *testing.T, kind buff.Kind, duration float64, p buff.Payload) *buff.Buff {
	t.Helper()
	b, err := buff.New(kind, duration, p)
	require.NoError(t, err)
	return b
}

func boltSkill(t *testing.T, net effect.Network) *skill.Skill {
	t.Helper()
	s, err := skill.New(skill.Def{
		ID:         1,
		Name:       "bolt",
		ManaCost:   10,
		Cooldown:   1,
		BaseDamage: 10,
		Delivery:   skill.DeliverProjectile,
		Projectile: skill.ProjectileDef{Speed: 10, Lifetime: 1, Radius: 0.3},
	}, testutil.Env(net, testutil.NewStaticWorld()))
	require.NoError(t, err)
	return s
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(Config{ID: 1, MaxHealth: 0, Radius: 1}, nil)
	assert.ErrorIs(t, err, effect.ErrInvalidConfig)

	_, err = New(Config{ID: 1, MaxHealth: 10, Radius: 0}, nil)
	assert.ErrorIs(t, err, effect.ErrInvalidConfig)
}

func TestEquip_SlotRange(t *testing.T) {
	net := testutil.NewRecordingNetwork()
	c := newTestCombatant(t, net)

	for slot := range MaxSlots {
		require.NoError(t, c.Equip(slot, boltSkill(t, net)))
	}
	assert.ErrorIs(t, c.Equip(3, boltSkill(t, net)), ErrSlotOutOfRange)
	assert.ErrorIs(t, c.Equip(-1, boltSkill(t, net)), ErrSlotOutOfRange)
	assert.Len(t, c.Skills(), 3)

	require.NoError(t, c.Equip(1, nil))
	assert.Len(t, c.Skills(), 2)

	_, err := c.Slot(5)
	assert.ErrorIs(t, err, ErrSlotOutOfRange)
}

func TestCast_EmptySlot(t *testing.T) {
	c := newTestCombatant(t, testutil.NewRecordingNetwork())
	out, err := c.Cast(0, effect.V(1, 0))
	require.NoError(t, err)
	assert.Equal(t, skill.RejectedNotReady, out)
}

func TestCast_DebitsOwnMana(t *testing.T) {
	net := testutil.NewRecordingNetwork()
	c := newTestCombatant(t, net)
	require.NoError(t, c.Equip(0, boltSkill(t, net)))

	out, err := c.Cast(0, effect.V(1, 0))
	require.NoError(t, err)
	assert.Equal(t, skill.Accepted, out)
	assert.Equal(t, int32(40), c.Mana())
}

func TestCanCast(t *testing.T) {
	tests := []struct {
		name string
		kind buff.Kind
		want bool
	}{
		{"speed does not block", buff.KindSpeed, true},
		{"stun blocks", buff.KindStun, false},
		{"silence blocks", buff.KindSilence, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCombatant(t, nil)
			p := buff.Payload{}
			if tt.kind == buff.KindSpeed {
				p.Multiplier = 1.5
			}
			c.ApplyBuff(mustBuff(t, tt.kind, 1, p))
			assert.Equal(t, tt.want, c.CanCast())

			c.Update(1)
			assert.True(t, c.CanCast(), "expired buff must not block")
		})
	}
}

func TestCast_StunnedIsDisabled(t *testing.T) {
	net := testutil.NewRecordingNetwork()
	c := newTestCombatant(t, net)
	require.NoError(t, c.Equip(0, boltSkill(t, net)))
	c.ApplyBuff(mustBuff(t, buff.KindStun, 2, buff.Payload{}))

	out, err := c.Cast(0, effect.V(1, 0))
	require.NoError(t, err)
	assert.Equal(t, skill.RejectedDisabled, out)
	assert.Equal(t, int32(50), c.Mana())
	assert.Empty(t, net.Notices())
}

func TestReceiveHit_Pipeline(t *testing.T) {
	tests := []struct {
		name      string
		buffs     func(t *testing.T) []*buff.Buff
		amount    int32
		requested int32
	}{
		{
			name:      "no buffs",
			buffs:     func(*testing.T) []*buff.Buff { return nil },
			amount:    30,
			requested: 30,
		},
		{
			name: "invincible drops everything",
			buffs: func(t *testing.T) []*buff.Buff {
				return []*buff.Buff{mustBuff(t, buff.KindInvincible, 1, buff.Payload{})}
			},
			amount:    30,
			requested: 0,
		},
		{
			name: "defense then shield",
			buffs: func(t *testing.T) []*buff.Buff {
				return []*buff.Buff{
					mustBuff(t, buff.KindDefense, 5, buff.Payload{Bonus: 10}),
					mustBuff(t, buff.KindShield, 5, buff.Payload{Capacity: 15}),
				}
			},
			amount:    30,
			requested: 5,
		},
		{
			name: "defense larger than hit",
			buffs: func(t *testing.T) []*buff.Buff {
				return []*buff.Buff{mustBuff(t, buff.KindDefense, 5, buff.Payload{Bonus: 50})}
			},
			amount:    30,
			requested: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net := testutil.NewRecordingNetwork()
			c := newTestCombatant(t, net)
			for _, b := range tt.buffs(t) {
				c.ApplyBuff(b)
			}

			got := c.ReceiveHit(tt.amount, effect.V(3, 4))
			assert.Equal(t, tt.requested, got)
			assert.Equal(t, int32(100), c.Health(), "health changes only on confirmation")

			calls := net.Damage()
			if tt.requested == 0 {
				assert.Empty(t, calls)
				return
			}
			require.Len(t, calls, 1)
			assert.Equal(t, effect.EntityID(1), calls[0].TargetID)
			assert.Equal(t, tt.requested, calls[0].Amount)
			assert.Equal(t, effect.V(3, 4), calls[0].Origin)
		})
	}
}

func TestUpdate_RegenRequestsHeal(t *testing.T) {
	net := testutil.NewRecordingNetwork()
	c := newTestCombatant(t, net)
	regen, err := buff.NewRegen(5, 10, 1)
	require.NoError(t, err)
	c.ApplyBuff(regen)

	c.Update(0.3)
	c.Update(0.3)
	c.Update(0.3)
	assert.Empty(t, net.Heals())
	c.Update(0.1)

	heals := net.Heals()
	require.Len(t, heals, 1)
	assert.Equal(t, effect.EntityID(1), heals[0].TargetID)
	assert.Equal(t, int32(10), heals[0].Amount)
}

func TestConfirmHealth_DeathClearsBuffs(t *testing.T) {
	c := newTestCombatant(t, testutil.NewRecordingNetwork())
	shield := mustBuff(t, buff.KindShield, 10, buff.Payload{Capacity: 40})
	finalized := 0
	shield.OnFinalize(func(*buff.Buff) { finalized++ })
	c.ApplyBuff(shield)

	c.ConfirmHealth(60)
	assert.Equal(t, int32(60), c.Health())
	assert.True(t, c.IsAlive())

	c.ConfirmHealth(-5)
	assert.Equal(t, int32(0), c.Health())
	assert.False(t, c.IsAlive())
	assert.False(t, c.CanCast())
	assert.Equal(t, 0, c.Buffs().Len())
	assert.Equal(t, 1, finalized)

	c.OnDeath()
	assert.Equal(t, 1, finalized)
	assert.False(t, c.Target().Alive)
}

func TestRespawn(t *testing.T) {
	net := testutil.NewRecordingNetwork()
	c := newTestCombatant(t, net)
	s := boltSkill(t, net)
	require.NoError(t, c.Equip(0, s))

	_, err := c.Cast(0, effect.V(1, 0))
	require.NoError(t, err)
	require.Greater(t, s.CooldownRemaining(), 0.0)

	c.OnDeath()
	c.Respawn(effect.V(7, 7))

	assert.True(t, c.IsAlive())
	assert.Equal(t, int32(100), c.Health())
	assert.Equal(t, int32(50), c.Mana())
	assert.Equal(t, effect.V(7, 7), c.Position())
	assert.Equal(t, 0.0, s.CooldownRemaining())
}

func TestSyncMana_Clamps(t *testing.T) {
	c := newTestCombatant(t, nil)
	c.SyncMana(500)
	assert.Equal(t, int32(50), c.Mana())
	c.SyncMana(-3)
	assert.Equal(t, int32(0), c.Mana())
	assert.False(t, c.SpendMana(1))
}

func TestSpeedMultiplier(t *testing.T) {
	c := newTestCombatant(t, nil)
	c.ApplyBuff(mustBuff(t, buff.KindSpeed, 2, buff.Payload{Multiplier: 1.5}))
	c.ApplyBuff(mustBuff(t, buff.KindSlow, 1, buff.Payload{Multiplier: 0.5}))
	assert.InDelta(t, 0.75, c.SpeedMultiplier(), 1e-9)

	c.Update(1)
	assert.InDelta(t, 1.5, c.SpeedMultiplier(), 1e-9)
}
