// Package leaderboard keeps the top-ten score tables: a local list persisted
// as a JSON blob and a shared world table reached through a RemoteStore.
package leaderboard

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Capacity is the number of records either table retains.
const Capacity = 10

// NameLength is the exact length of a record name.
const NameLength = 3

var (
	// ErrInvalidName is returned for names that are not exactly three letters A-Z.
	ErrInvalidName = errors.New("leaderboard: name must be exactly 3 letters A-Z")
	// ErrInvalidScore is returned for negative scores.
	ErrInvalidScore = errors.New("leaderboard: score must not be negative")
)

// Record is one leaderboard entry.
type Record struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// NewRecord builds a validated record. The name is upper-cased first.
func NewRecord(name string, score int) (Record, error) {
	r := Record{Name: strings.ToUpper(strings.TrimSpace(name)), Score: score}
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	return r, nil
}

// Validate checks the record invariants.
func (r Record) Validate() error {
	if len(r.Name) != NameLength {
		return fmt.Errorf("%w: got %q", ErrInvalidName, r.Name)
	}
	for _, c := range r.Name {
		if c < 'A' || c > 'Z' {
			return fmt.Errorf("%w: got %q", ErrInvalidName, r.Name)
		}
	}
	if r.Score < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidScore, r.Score)
	}
	return nil
}

// insertRanked places r after every record with a score greater than or
// equal to its own and returns the new list and the index r landed at.
func insertRanked(list []Record, r Record) ([]Record, int) {
	idx := sort.Search(len(list), func(i int) bool {
		return list[i].Score < r.Score
	})
	out := make([]Record, 0, len(list)+1)
	out = append(out, list[:idx]...)
	out = append(out, r)
	out = append(out, list[idx:]...)
	return out, idx
}

// sortDescending orders records by score, keeping the relative order of ties.
func sortDescending(list []Record) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Score > list[j].Score
	})
}

// truncate trims list to at most n records.
func truncate(list []Record, n int) []Record {
	if len(list) > n {
		return list[:n]
	}
	return list
}

// Admits reports whether score earns a place on a descending board holding
// at most Capacity records: always while the board has room, otherwise only
// when it beats the last entry.
func Admits(board []Record, score int) bool {
	if len(board) < Capacity {
		return true
	}
	return score > board[Capacity-1].Score
}
