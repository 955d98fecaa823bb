// Package journal records every combat request the arena sends so a match
// can be audited and replayed later.
package journal

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/udisondev/arenafx/internal/game/effect"
)

const defaultMaxBuffered = 8192

// Kind names the request an Entry records.
type Kind string

const (
	KindDamage    Kind = "damage"
	KindPvpDamage Kind = "pvp_damage"
	KindHeal      Kind = "heal"
	KindBuff      Kind = "buff"
	KindCast      Kind = "cast"
)

// Entry is one journaled request.
type Entry struct {
	MatchID    string
	Frame      uint64
	Kind       Kind
	CasterID   effect.EntityID
	TargetID   effect.EntityID
	SkillID    int32
	SkillTag   string
	Amount     int32
	X, Y       float64
	Detail     string
	RecordedAt time.Time
}

// Store persists journal entries.
type Store interface {
	InsertEntries(ctx context.Context, entries []Entry) error
}

// Recorder is an effect.Network that forwards every request to next and
// buffers a journal Entry for it.
type Recorder struct {
	next    effect.Network
	matchID string
	frame   func() uint64
	now     func() time.Time

	mu          sync.Mutex
	buf         []Entry
	maxBuffered int
	lost        int
}

var _ effect.Network = (*Recorder)(nil)

// NewRecorder wraps next. frame reports the current frame number and may be
// nil.
func NewRecorder(next effect.Network, matchID string, frame func() uint64) *Recorder {
	if frame == nil {
		frame = func() uint64 { return 0 }
	}
	return &Recorder{
		next:        next,
		matchID:     matchID,
		frame:       frame,
		now:         time.Now,
		buf:         make([]Entry, 0, 256),
		maxBuffered: defaultMaxBuffered,
	}
}

// Len returns the number of buffered entries.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.buf)
}

// SetMaxBuffered caps how many entries are held between flushes.
func (r *Recorder) SetMaxBuffered(n int) {
	if n <= 0 {
		return
	}
	r.mu.Lock()
	r.maxBuffered = n
	r.mu.Unlock()
}

// Lost returns how many entries were discarded on a full buffer.
func (r *Recorder) Lost() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lost
}

func (r *Recorder) record(e Entry) {
	e.MatchID = r.matchID
	e.Frame = r.frame()
	e.RecordedAt = r.now()

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.buf) >= r.maxBuffered {
		r.lost++
		return
	}
	r.buf = append(r.buf, e)
}

func (r *Recorder) RequestDamage(targetID effect.EntityID, amount int32, originX, originY float64) {
	r.next.RequestDamage(targetID, amount, originX, originY)
	r.record(Entry{Kind: KindDamage, TargetID: targetID, Amount: amount, X: originX, Y: originY})
}

func (r *Recorder) RequestPvpDamage(targetID effect.EntityID, amount int32, skillTag string) {
	r.next.RequestPvpDamage(targetID, amount, skillTag)
	r.record(Entry{Kind: KindPvpDamage, TargetID: targetID, Amount: amount, SkillTag: skillTag})
}

func (r *Recorder) RequestHeal(targetID effect.EntityID, amount int32) {
	r.next.RequestHeal(targetID, amount)
	r.record(Entry{Kind: KindHeal, TargetID: targetID, Amount: amount})
}

func (r *Recorder) RequestBuff(targetID effect.EntityID, grant effect.BuffGrant) {
	r.next.RequestBuff(targetID, grant)
	r.record(Entry{
		Kind:     KindBuff,
		CasterID: grant.SourceID,
		TargetID: targetID,
		Detail:   fmt.Sprintf("%s %.2fs x%.2f", grant.Kind, grant.Duration, grant.Magnitude),
	})
}

func (r *Recorder) NotifyCast(notice effect.CastNotice) {
	r.next.NotifyCast(notice)
	r.record(Entry{
		Kind:     KindCast,
		CasterID: notice.CasterID,
		SkillID:  notice.SkillID,
		X:        notice.TargetPos.X,
		Y:        notice.TargetPos.Y,
	})
}

// Flush hands every buffered entry to store. On failure the entries are kept
// for the next attempt.
func (r *Recorder) Flush(ctx context.Context, store Store) error {
	r.mu.Lock()
	if len(r.buf) == 0 {
		r.mu.Unlock()
		return nil
	}
	batch := r.buf
	r.buf = make([]Entry, 0, cap(batch))
	r.mu.Unlock()

	if err := store.InsertEntries(ctx, batch); err != nil {
		r.mu.Lock()
		r.buf = append(batch, r.buf...)
		if over := len(r.buf) - r.maxBuffered; over > 0 {
			r.buf = r.buf[over:]
			r.lost += over
		}
		r.mu.Unlock()
		return fmt.Errorf("flushing %d journal entries: %w", len(batch), err)
	}

	slog.Debug("journal flushed", "entries", len(batch), "match", r.matchID)
	return nil
}

// Run flushes every interval until ctx is canceled, then flushes once more.
func (r *Recorder) Run(ctx context.Context, store Store, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("journal flusher started", "interval", interval, "match", r.matchID)

	for {
		select {
		case <-ctx.Done():
			final, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			err := r.Flush(final, store)
			cancel()
			if err != nil {
				slog.Warn("final journal flush failed", "error", err)
			}
			slog.Info("journal flusher stopped", "lost", r.Lost())
			return nil

		case <-ticker.C:
			if err := r.Flush(ctx, store); err != nil {
				slog.Warn("journal flush failed", "error", err)
			}
		}
	}
}
