package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/arenafx/internal/game/effect"
	"github.com/udisondev/arenafx/internal/journal"
)

var journalColumns = []string{
	"match_id", "frame", "kind", "caster_id", "target_id",
	"skill_id", "skill_tag", "amount", "pos_x", "pos_y", "detail", "recorded_at",
}

// JournalRepository хранит журнал боевых запросов матча.
type JournalRepository struct {
	db *pgxpool.Pool
}

var _ journal.Store = (*JournalRepository)(nil)

// NewJournalRepository создаёт новый JournalRepository.
func NewJournalRepository(db *pgxpool.Pool) *JournalRepository {
	return &JournalRepository{db: db}
}

// InsertEntries writes entries with a single COPY.
func (r *JournalRepository) InsertEntries(ctx context.Context, entries []journal.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []any{
			e.MatchID, int64(e.Frame), string(e.Kind), int64(e.CasterID), int64(e.TargetID),
			e.SkillID, e.SkillTag, e.Amount, e.X, e.Y, e.Detail, e.RecordedAt,
		})
	}

	n, err := r.db.CopyFrom(ctx,
		pgx.Identifier{"combat_journal"},
		journalColumns,
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("inserting %d journal entries: %w", len(entries), err)
	}
	if int(n) != len(entries) {
		return fmt.Errorf("inserting journal entries: copied %d of %d rows", n, len(entries))
	}
	return nil
}

// LoadMatch returns every entry of a match ordered by frame and insertion.
func (r *JournalRepository) LoadMatch(ctx context.Context, matchID string) ([]journal.Entry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT match_id, frame, kind, caster_id, target_id,
		       skill_id, skill_tag, amount, pos_x, pos_y, detail, recorded_at
		FROM combat_journal
		WHERE match_id = $1
		ORDER BY frame, id
	`, matchID)
	if err != nil {
		return nil, fmt.Errorf("querying journal for match %q: %w", matchID, err)
	}
	defer rows.Close()

	var entries []journal.Entry
	for rows.Next() {
		var (
			e                  journal.Entry
			frame              int64
			kind               string
			casterID, targetID int64
		)
		if err := rows.Scan(
			&e.MatchID, &frame, &kind, &casterID, &targetID,
			&e.SkillID, &e.SkillTag, &e.Amount, &e.X, &e.Y, &e.Detail, &e.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning journal row: %w", err)
		}
		e.Frame = uint64(frame)
		e.Kind = journal.Kind(kind)
		e.CasterID = effect.EntityID(casterID)
		e.TargetID = effect.EntityID(targetID)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating journal rows for match %q: %w", matchID, err)
	}
	return entries, nil
}

// DamageByTarget sums damage requests per target for a match.
func (r *JournalRepository) DamageByTarget(ctx context.Context, matchID string) (map[effect.EntityID]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT target_id, SUM(amount)
		FROM combat_journal
		WHERE match_id = $1 AND kind IN ($2, $3)
		GROUP BY target_id
	`, matchID, string(journal.KindDamage), string(journal.KindPvpDamage))
	if err != nil {
		return nil, fmt.Errorf("summing damage for match %q: %w", matchID, err)
	}
	defer rows.Close()

	totals := make(map[effect.EntityID]int64)
	for rows.Next() {
		var id, sum int64
		if err := rows.Scan(&id, &sum); err != nil {
			return nil, fmt.Errorf("scanning damage total: %w", err)
		}
		totals[effect.EntityID(id)] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating damage totals for match %q: %w", matchID, err)
	}
	return totals, nil
}

// DeleteMatch removes a match's journal and reports how many rows went away.
func (r *JournalRepository) DeleteMatch(ctx context.Context, matchID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM combat_journal WHERE match_id = $1`, matchID)
	if err != nil {
		return 0, fmt.Errorf("deleting journal for match %q: %w", matchID, err)
	}
	return tag.RowsAffected(), nil
}
