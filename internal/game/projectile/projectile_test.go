package projectile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/arenafx/internal/game/effect"
	"github.com/udisondev/arenafx/internal/testutil"
)

func boltConfig() Config {
	return Config{
		Kind:      KindBolt,
		OwnerID:   1,
		OwnerTeam: 1,
		SkillTag:  "bolt",
		Origin:    effect.V(0, 0),
		Direction: effect.V(1, 0),
		Speed:     10,
		Lifetime:  2,
		Radius:    0.5,
		Damage:    25,
	}
}

func TestNew_RejectsDegenerateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero direction", func(c *Config) { c.Direction = effect.V(0, 0) }},
		{"zero speed", func(c *Config) { c.Speed = 0 }},
		{"negative lifetime", func(c *Config) { c.Lifetime = -1 }},
		{"zero radius", func(c *Config) { c.Radius = 0 }},
		{"negative pierce", func(c *Config) { c.Pierce = -2 }},
		{"dot without window", func(c *Config) { c.DoT = true; c.TickInterval = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := boltConfig()
			tt.mutate(&cfg)
			_, err := New(cfg, testutil.Env(nil, testutil.NewStaticWorld()))
			assert.ErrorIs(t, err, effect.ErrInvalidConfig)
		})
	}
}

func TestNew_NormalizesDirection(t *testing.T) {
	cfg := boltConfig()
	cfg.Direction = effect.V(0, 5)
	p, err := New(cfg, testutil.Env(nil, testutil.NewStaticWorld()))
	require.NoError(t, err)

	assert.InDelta(t, 10, p.Velocity().Y, 1e-12)
	assert.Equal(t, 1, p.PierceLeft(), "default budget is one target")
	assert.Equal(t, 1.0, p.RenderSize())
}

func TestUpdate_MovesAndExpires(t *testing.T) {
	p, err := New(boltConfig(), testutil.Env(nil, testutil.NewStaticWorld()))
	require.NoError(t, err)

	require.NoError(t, p.Update(0.5))
	assert.InDelta(t, 5, p.Position().X, 1e-12)
	assert.True(t, p.IsAlive())

	require.NoError(t, p.Update(1.5))
	assert.False(t, p.IsAlive())
	assert.Equal(t, 0.0, p.Remaining())
}

func TestUpdate_MaxRange(t *testing.T) {
	cfg := boltConfig()
	cfg.MaxRange = 12
	p, err := New(cfg, testutil.Env(nil, testutil.NewStaticWorld()))
	require.NoError(t, err)

	require.NoError(t, p.Update(1.0))
	assert.True(t, p.IsAlive())
	require.NoError(t, p.Update(0.3))
	assert.False(t, p.IsAlive(), "13 units travelled > 12 max range")
}

func TestUpdate_SingleHitDestroys(t *testing.T) {
	net := testutil.NewRecordingNetwork()
	world := testutil.NewStaticWorld(testutil.Monster(10, 5, 0, 1))
	p, err := New(boltConfig(), testutil.Env(net, world))
	require.NoError(t, err)

	require.NoError(t, p.Update(0.5))
	assert.False(t, p.IsAlive())

	dmg := net.Damage()
	require.Len(t, dmg, 1)
	assert.Equal(t, effect.EntityID(10), dmg[0].TargetID)
	assert.Equal(t, int32(25), dmg[0].Amount)
	assert.False(t, dmg[0].PvP)
	assert.InDelta(t, 5, dmg[0].Origin.X, 1e-12)
}

func TestUpdate_PierceBudgetLimitsHitsPerFrame(t *testing.T) {
	net := testutil.NewRecordingNetwork()
	world := testutil.NewStaticWorld(
		testutil.Monster(10, 5, 0, 1),
		testutil.Monster(11, 5, 0.2, 1),
		testutil.Monster(12, 5, -0.2, 1),
	)
	cfg := boltConfig()
	cfg.Pierce = 2
	p, err := New(cfg, testutil.Env(net, world))
	require.NoError(t, err)

	require.NoError(t, p.Update(0.5))
	assert.Len(t, net.Damage(), 2)
	assert.Equal(t, 0, p.PierceLeft())
	assert.False(t, p.IsAlive(), "budget spent: dead by the next frame")

	require.NoError(t, p.Update(0.1))
	assert.Len(t, net.Damage(), 2)
}

func TestUpdate_PierceDoesNotRehitSameTarget(t *testing.T) {
	net := testutil.NewRecordingNetwork()
	world := testutil.NewStaticWorld(testutil.Monster(10, 5, 0, 3))
	cfg := boltConfig()
	cfg.Kind = KindPiercer
	p, err := New(cfg, testutil.Env(net, world))
	require.NoError(t, err)
	assert.Equal(t, 3, p.PierceLeft())

	for range 4 {
		require.NoError(t, p.Update(0.1))
	}
	assert.Equal(t, 1, net.DamageTo(10))
	assert.Equal(t, 2, p.PierceLeft())
	assert.True(t, p.IsAlive())
}

func TestUpdate_DeadTargetsDoNotConsumeBudget(t *testing.T) {
	net := testutil.NewRecordingNetwork()
	dead := testutil.Monster(10, 5, 0, 1)
	dead.Alive = false
	world := &snapshotWorld{targets: []effect.Target{dead, testutil.Monster(11, 5, 0, 1)}}

	p, err := New(boltConfig(), testutil.Env(net, world))
	require.NoError(t, err)
	require.NoError(t, p.Update(0.5))

	assert.Equal(t, 0, net.DamageTo(10))
	assert.Equal(t, 1, net.DamageTo(11))
}

func TestUpdate_IgnoresOwnerAndTeammates(t *testing.T) {
	net := testutil.NewRecordingNetwork()
	world := testutil.NewStaticWorld(
		testutil.Player(1, 1, 0, 0, 1),
		testutil.Player(2, 1, 5, 0, 1),
		testutil.Player(3, 2, 5, 0, 1),
	)
	p, err := New(boltConfig(), testutil.Env(net, world))
	require.NoError(t, err)
	require.NoError(t, p.Update(0.5))

	dmg := net.Damage()
	require.Len(t, dmg, 1)
	assert.Equal(t, effect.EntityID(3), dmg[0].TargetID)
	assert.True(t, dmg[0].PvP)
	assert.Equal(t, "bolt", dmg[0].SkillTag)
}

func TestUpdate_DoTRehitsAcrossWindowsOnly(t *testing.T) {
	net := testutil.NewRecordingNetwork()
	world := testutil.NewStaticWorld(testutil.Monster(10, 0, 0, 50))
	cfg := boltConfig()
	cfg.Kind = KindBeam
	cfg.Speed = 0.001
	cfg.Lifetime = 10
	cfg.TickInterval = 0.5
	p, err := New(cfg, testutil.Env(net, world))
	require.NoError(t, err)
	assert.Equal(t, Unlimited, p.PierceLeft())

	// Four frames inside the first window: one hit.
	for range 4 {
		require.NoError(t, p.Update(0.1))
	}
	assert.Equal(t, 1, net.DamageTo(10))

	// Crossing into the second window re-arms the target once.
	require.NoError(t, p.Update(0.1))
	require.NoError(t, p.Update(0.1))
	assert.Equal(t, 2, net.DamageTo(10))
	assert.True(t, p.IsAlive())
}

func TestUpdate_FrostRequestsSlow(t *testing.T) {
	net := testutil.NewRecordingNetwork()
	world := testutil.NewStaticWorld(testutil.Monster(10, 5, 0, 1))
	cfg := boltConfig()
	cfg.Kind = KindFrost
	p, err := New(cfg, testutil.Env(net, world))
	require.NoError(t, err)
	require.NoError(t, p.Update(0.5))

	buffs := net.Buffs()
	require.Len(t, buffs, 1)
	assert.Equal(t, "slow", buffs[0].Grant.Kind)
	assert.Equal(t, effect.EntityID(1), buffs[0].Grant.SourceID)
}

func TestUpdate_StopsAtWall(t *testing.T) {
	net := testutil.NewRecordingNetwork()
	world := testutil.NewStaticWorld(testutil.Monster(10, 8, 0, 1))
	wall := testutil.MapFunc(func(x, _ float64) bool { return x >= 4 && x <= 6 })

	p, err := New(boltConfig(), effect.Env{Net: net, Map: wall, World: world})
	require.NoError(t, err)
	require.NoError(t, p.Update(0.5))

	assert.False(t, p.IsAlive())
	assert.Empty(t, net.Damage())
}

func TestUpdate_MissingWorldIsLocalError(t *testing.T) {
	p, err := New(boltConfig(), effect.Env{})
	require.NoError(t, err)

	err = p.Update(0.1)
	assert.ErrorIs(t, err, effect.ErrNoSnapshot)
	assert.True(t, p.IsAlive())
}

func TestCancel_Idempotent(t *testing.T) {
	ended := 0
	cfg := boltConfig()
	cfg.OnEnd = func(*Projectile) { ended++ }
	p, err := New(cfg, testutil.Env(nil, testutil.NewStaticWorld()))
	require.NoError(t, err)

	p.Cancel()
	p.Cancel()
	require.NoError(t, p.Update(5))
	assert.False(t, p.IsAlive())
	assert.Equal(t, 1, ended)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Frost")
	require.NoError(t, err)
	assert.Equal(t, KindFrost, k)

	_, err = ParseKind("rocket")
	assert.ErrorIs(t, err, effect.ErrInvalidConfig)
}

// snapshotWorld returns targets verbatim, including dead ones, to exercise the
// projectile's own liveness filter.
type snapshotWorld struct {
	targets []effect.Target
}

func (w *snapshotWorld) LiveTargets() []effect.Target { return w.targets }

func (w *snapshotWorld) Lookup(id effect.EntityID) (effect.Target, bool) {
	for _, t := range w.targets {
		if t.ID == id {
			return t, true
		}
	}
	return effect.Target{}, false
}
