package leaderboard

import (
	"context"
	"fmt"
)

// WorldTable is the shared table name used for world highscores.
const WorldTable = "world_highscores"

// Query selects the top rows of a remote table.
type Query struct {
	Table      string
	Limit      int
	SortKey    string
	Descending bool
}

// RemoteStore is a shared table service.
type RemoteStore interface {
	QueryTopN(ctx context.Context, q Query) ([]Record, error)
	InsertRecord(ctx context.Context, table string, r Record) error
}

// Admission is the outcome of CheckAndSubmit.
type Admission struct {
	Submitted bool
	// Threshold is the score to beat: the tenth entry when the board is full,
	// -1 while it still has room.
	Threshold int
	// Board is the fetched top ten with the newcomer merged in when submitted.
	Board []Record
}

// Remote is the world leaderboard client.
//
// CheckAndSubmit is a read followed by a separate write. Two clients racing
// can both be admitted against the same snapshot, so the table may hold more
// than ten rows; readers trim to ten.
type Remote struct {
	store RemoteStore
	table string
}

// NewRemote creates a world leaderboard on top of store.
func NewRemote(store RemoteStore) *Remote {
	return &Remote{store: store, table: WorldTable}
}

// FetchTop returns up to n records, best first.
func (r *Remote) FetchTop(ctx context.Context, n int) ([]Record, error) {
	list, err := r.store.QueryTopN(ctx, Query{
		Table:      r.table,
		Limit:      n,
		SortKey:    "score",
		Descending: true,
	})
	if err != nil {
		return nil, fmt.Errorf("leaderboard: cannot fetch %s: %w", r.table, err)
	}
	sortDescending(list)
	return truncate(list, n), nil
}

// CheckAndSubmit inserts the score when it belongs in the world top ten.
func (r *Remote) CheckAndSubmit(ctx context.Context, name string, score int) (Admission, error) {
	rec, err := NewRecord(name, score)
	if err != nil {
		return Admission{}, err
	}

	board, err := r.FetchTop(ctx, Capacity)
	if err != nil {
		return Admission{}, err
	}

	adm := Admission{Threshold: -1, Board: board}
	if len(board) >= Capacity {
		adm.Threshold = board[Capacity-1].Score
	}
	if !Admits(board, rec.Score) {
		return adm, nil
	}

	if err := r.store.InsertRecord(ctx, r.table, rec); err != nil {
		return adm, fmt.Errorf("leaderboard: cannot submit to %s: %w", r.table, err)
	}
	merged, _ := insertRanked(board, rec)
	adm.Board = truncate(merged, Capacity)
	adm.Submitted = true
	return adm, nil
}
