package effect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHitLedger_OnePerWindow(t *testing.T) {
	l := NewHitLedger(4)

	assert.True(t, l.Mark(7))
	assert.False(t, l.Mark(7), "second hit in the same window must be rejected")
	assert.True(t, l.HitThisWindow(7))
	assert.False(t, l.HitThisWindow(8))

	l.Advance()
	assert.False(t, l.HitThisWindow(7))
	assert.True(t, l.Mark(7), "new window re-arms the target")
}

func TestHitLedger_SweepKeepsCurrentWindow(t *testing.T) {
	l := NewHitLedger(2)

	l.Mark(1)
	l.Mark(2)
	l.Advance()
	l.Mark(3) // map full: stale 1 and 2 are swept

	assert.Equal(t, 1, l.Len())
	assert.True(t, l.HitThisWindow(3))

	// Everything in the current window: ledger grows instead of forgetting.
	l.Mark(4)
	l.Mark(5)
	assert.True(t, l.HitThisWindow(3))
	assert.True(t, l.HitThisWindow(4))
	assert.True(t, l.HitThisWindow(5))
}

func TestHitLedger_ZeroValueEntriesNeverMatch(t *testing.T) {
	l := NewHitLedger(0)
	assert.Equal(t, uint64(1), l.Epoch())
	assert.False(t, l.HitThisWindow(NoEntity))
}
