package data

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/arenafx/internal/game/effect"
	"github.com/udisondev/arenafx/internal/game/projectile"
	"github.com/udisondev/arenafx/internal/game/skill"
	"github.com/udisondev/arenafx/internal/game/zone"
)

func TestLoadSkills(t *testing.T) {
	require.NoError(t, LoadSkills())

	assert.Len(t, SkillTable, 14)
	assert.Equal(t, int32(1), SkillIDs()[0])

	bolt, ok := GetSkillDef(1)
	require.True(t, ok)
	assert.Equal(t, "firebolt", bolt.Name)
	assert.Equal(t, skill.DeliverProjectile, bolt.Delivery)
	assert.Equal(t, projectile.KindBolt, bolt.Projectile.Kind)
	assert.Equal(t, int32(25), bolt.BaseDamage)

	_, ok = GetSkillDef(999)
	assert.False(t, ok)
}

func TestLoadSkills_Conversions(t *testing.T) {
	require.NoError(t, LoadSkills())

	volley, ok := GetSkillDef(5)
	require.True(t, ok)
	assert.Equal(t, 5, volley.Projectile.Count)
	assert.InDelta(t, 40*math.Pi/180, volley.Projectile.Spread, 1e-12)
	assert.True(t, volley.ExplicitOverrides)

	meteor, ok := GetSkillDef(9)
	require.True(t, ok)
	assert.Equal(t, zone.KindMeteor, meteor.Zone.Kind)
	assert.Equal(t, skill.AtAim, meteor.Zone.Placement)
	assert.Equal(t, 1.2, meteor.Zone.FallTime)

	aura, ok := GetSkillDef(10)
	require.True(t, ok)
	assert.Equal(t, skill.Attached, aura.Zone.Placement)
	assert.Equal(t, "defense", aura.CasterBuff.Kind)

	sanctuary, ok := GetSkillDef(11)
	require.True(t, ok)
	assert.Equal(t, zone.TargetsPlayers, sanctuary.Zone.Targets)

	barrier, ok := GetSkillDef(12)
	require.True(t, ok)
	assert.Equal(t, skill.DeliverSelfBuff, barrier.Delivery)
	assert.Equal(t, 60.0, barrier.CasterBuff.Magnitude)
}

func TestLoadSkills_EveryDefCasts(t *testing.T) {
	require.NoError(t, LoadSkills())

	for _, id := range SkillIDs() {
		def, _ := GetSkillDef(id)
		_, err := skill.New(def, effect.Env{})
		assert.NoError(t, err, "skill %d (%s)", id, def.Name)
	}
}

func TestParseSkills_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"bad yaml", "skills: [\n"},
		{"unknown delivery", "skills:\n  - id: 1\n    delivery: teleport\n"},
		{"missing projectile block", "skills:\n  - id: 1\n    delivery: projectile\n"},
		{"unknown projectile kind", "skills:\n  - id: 1\n    delivery: projectile\n    projectile: {kind: rocket, speed: 1, lifetime: 1, radius: 1}\n"},
		{"unknown placement", "skills:\n  - id: 1\n    delivery: zone\n    zone: {placement: orbit, radius: 1, duration: 1, tick_interval: 1}\n"},
		{"invalid zone", "skills:\n  - id: 1\n    delivery: zone\n    zone: {radius: 0, duration: 1, tick_interval: 1}\n"},
		{"unknown buff kind", "skills:\n  - id: 1\n    delivery: self_buff\n    caster_buff: {kind: flying, duration: 1}\n"},
		{"duplicate id", "skills:\n  - id: 1\n    delivery: self_buff\n    caster_buff: {kind: stun, duration: 1}\n  - id: 1\n    delivery: self_buff\n    caster_buff: {kind: stun, duration: 1}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSkills([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadSkillsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skills.yaml")
	catalog := "skills:\n  - id: 77\n    name: poke\n    delivery: projectile\n    damage: 1\n    projectile: {speed: 5, lifetime: 1, radius: 0.2}\n"
	require.NoError(t, os.WriteFile(path, []byte(catalog), 0o644))

	require.NoError(t, LoadSkillsFile(path))
	t.Cleanup(func() { _ = LoadSkills() })

	assert.Len(t, SkillTable, 1)
	def, ok := GetSkillDef(77)
	require.True(t, ok)
	assert.Equal(t, projectile.KindBolt, def.Projectile.Kind, "kind defaults to bolt")

	assert.Error(t, LoadSkillsFile(filepath.Join(t.TempDir(), "nope.yaml")))
}
