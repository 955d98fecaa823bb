package effect

// HitLedger deduplicates hits inside one tick window.
//
// Instead of clearing a set every window it stores, per target, the epoch of
// the last hit and compares it with the current epoch. Opening a new window is
// a single increment. Stale entries are swept only when the map grows past its
// capacity, so steady-state ticks allocate nothing.
type HitLedger struct {
	epoch    uint64
	lastHit  map[EntityID]uint64
	capacity int
}

const defaultLedgerCapacity = 32

// NewHitLedger creates a ledger sized for about capacity distinct targets.
func NewHitLedger(capacity int) *HitLedger {
	if capacity <= 0 {
		capacity = defaultLedgerCapacity
	}
	return &HitLedger{
		epoch:    1, // zero is the "never hit" value
		lastHit:  make(map[EntityID]uint64, capacity),
		capacity: capacity,
	}
}

// Epoch returns the current window number.
func (l *HitLedger) Epoch() uint64 { return l.epoch }

// Advance opens a new tick window. Every target becomes hittable again.
func (l *HitLedger) Advance() {
	l.epoch++
}

// HitThisWindow reports whether id was already hit in the current window.
func (l *HitLedger) HitThisWindow(id EntityID) bool {
	return l.lastHit[id] == l.epoch
}

// Mark records a hit on id in the current window.
// Returns false if id was already marked in this window.
func (l *HitLedger) Mark(id EntityID) bool {
	if l.lastHit[id] == l.epoch {
		return false
	}
	if _, ok := l.lastHit[id]; !ok && len(l.lastHit) >= l.capacity {
		l.sweep()
	}
	l.lastHit[id] = l.epoch
	return true
}

// Len returns the number of tracked targets (including stale ones).
func (l *HitLedger) Len() int { return len(l.lastHit) }

// sweep drops entries from previous windows. If every entry belongs to the
// current window the map is allowed to grow.
func (l *HitLedger) sweep() {
	for id, e := range l.lastHit {
		if e != l.epoch {
			delete(l.lastHit, id)
		}
	}
	if len(l.lastHit) >= l.capacity {
		l.capacity *= 2
	}
}
