package testutil

import (
	"sync"

	"github.com/udisondev/arenafx/internal/game/effect"
)

// DamageCall is one recorded RequestDamage / RequestPvpDamage.
type DamageCall struct {
	TargetID effect.EntityID
	Amount   int32
	Origin   effect.Vec2
	SkillTag string
	PvP      bool
}

// HealCall is one recorded RequestHeal.
type HealCall struct {
	TargetID effect.EntityID
	Amount   int32
}

// BuffCall is one recorded RequestBuff.
type BuffCall struct {
	TargetID effect.EntityID
	Grant    effect.BuffGrant
}

// RecordingNetwork implements effect.Network and keeps every request in memory.
// Safe for concurrent use so netclient/journal tests can share it.
type RecordingNetwork struct {
	mu      sync.Mutex
	damage  []DamageCall
	heals   []HealCall
	buffs   []BuffCall
	notices []effect.CastNotice
}

// NewRecordingNetwork creates an empty recorder.
func NewRecordingNetwork() *RecordingNetwork {
	return &RecordingNetwork{}
}

func (n *RecordingNetwork) RequestDamage(targetID effect.EntityID, amount int32, originX, originY float64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.damage = append(n.damage, DamageCall{TargetID: targetID, Amount: amount, Origin: effect.V(originX, originY)})
}

func (n *RecordingNetwork) RequestPvpDamage(targetID effect.EntityID, amount int32, skillTag string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.damage = append(n.damage, DamageCall{TargetID: targetID, Amount: amount, SkillTag: skillTag, PvP: true})
}

func (n *RecordingNetwork) RequestHeal(targetID effect.EntityID, amount int32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.heals = append(n.heals, HealCall{TargetID: targetID, Amount: amount})
}

func (n *RecordingNetwork) RequestBuff(targetID effect.EntityID, grant effect.BuffGrant) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.buffs = append(n.buffs, BuffCall{TargetID: targetID, Grant: grant})
}

func (n *RecordingNetwork) NotifyCast(notice effect.CastNotice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, notice)
}

// Damage returns a copy of every damage request.
func (n *RecordingNetwork) Damage() []DamageCall {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]DamageCall, len(n.damage))
	copy(out, n.damage)
	return out
}

// DamageTo returns how many damage requests targeted id.
func (n *RecordingNetwork) DamageTo(id effect.EntityID) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, d := range n.damage {
		if d.TargetID == id {
			c++
		}
	}
	return c
}

// Heals returns a copy of every heal request.
func (n *RecordingNetwork) Heals() []HealCall {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]HealCall, len(n.heals))
	copy(out, n.heals)
	return out
}

// Buffs returns a copy of every buff request.
func (n *RecordingNetwork) Buffs() []BuffCall {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]BuffCall, len(n.buffs))
	copy(out, n.buffs)
	return out
}

// Notices returns a copy of every cast notification.
func (n *RecordingNetwork) Notices() []effect.CastNotice {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]effect.CastNotice, len(n.notices))
	copy(out, n.notices)
	return out
}

// Reset forgets everything recorded so far.
func (n *RecordingNetwork) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.damage, n.heals, n.buffs, n.notices = nil, nil, nil, nil
}
