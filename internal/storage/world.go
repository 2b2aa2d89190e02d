package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/knight-skies/internal/leaderboard"
)

// ErrUnknownTable is returned for remote table names the store does not serve.
var ErrUnknownTable = errors.New("storage: unknown table")

// tables maps remote table names to SQLite tables.
var tables = map[string]string{
	leaderboard.WorldTable: "world_scores",
}

// WorldEntry is a stored world leaderboard row.
type WorldEntry struct {
	ID        string
	Name      string
	Score     int
	CreatedAt time.Time
}

// Record converts the row into a leaderboard record.
func (e WorldEntry) Record() leaderboard.Record {
	return leaderboard.Record{Name: e.Name, Score: e.Score}
}

func resolveTable(name string) (string, error) {
	t, ok := tables[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	return t, nil
}

// TopEntries returns up to limit rows of table, best first. Equal scores keep
// insertion order.
func (s *Store) TopEntries(ctx context.Context, table string, limit int) ([]WorldEntry, error) {
	t, err := resolveTable(table)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = leaderboard.Capacity
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, score, created_at
		 FROM `+t+`
		 ORDER BY score DESC, rowid ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query %s: %w", table, err)
	}
	defer rows.Close()

	var entries []WorldEntry
	for rows.Next() {
		var e WorldEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Name, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// InsertEntry validates r and stores it in table under a fresh UUID.
func (s *Store) InsertEntry(ctx context.Context, table string, r leaderboard.Record) (WorldEntry, error) {
	t, err := resolveTable(table)
	if err != nil {
		return WorldEntry{}, err
	}
	if err := r.Validate(); err != nil {
		return WorldEntry{}, err
	}

	e := WorldEntry{ID: uuid.NewString(), Name: r.Name, Score: r.Score, CreatedAt: time.Now().UTC()}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO "+t+" (id, name, score) VALUES (?, ?, ?)",
		e.ID, e.Name, e.Score,
	)
	if err != nil {
		return WorldEntry{}, fmt.Errorf("storage: cannot insert into %s: %w", table, err)
	}
	return e, nil
}

// QueryTopN implements leaderboard.RemoteStore. Only descending score order
// is supported.
func (s *Store) QueryTopN(ctx context.Context, q leaderboard.Query) ([]leaderboard.Record, error) {
	if q.SortKey != "" && q.SortKey != "score" {
		return nil, fmt.Errorf("storage: cannot sort %s by %q", q.Table, q.SortKey)
	}
	entries, err := s.TopEntries(ctx, q.Table, q.Limit)
	if err != nil {
		return nil, err
	}
	records := make([]leaderboard.Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, e.Record())
	}
	return records, nil
}

// InsertRecord implements leaderboard.RemoteStore.
func (s *Store) InsertRecord(ctx context.Context, table string, r leaderboard.Record) error {
	_, err := s.InsertEntry(ctx, table, r)
	return err
}

var (
	_ leaderboard.BlobStore   = (*Store)(nil)
	_ leaderboard.RemoteStore = (*Store)(nil)
)
