package storage

import (
	"fmt"
	"time"
)

// Play is one finished session.
type Play struct {
	ID        int64
	Name      string // Empty when no nickname was entered
	Score     int
	Passed    int
	Ticks     int
	Seed      int64
	CreatedAt time.Time
}

// PlayStats contains aggregated statistics over every recorded play.
type PlayStats struct {
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// RecordPlay stores a finished session and returns its ID.
func (s *Store) RecordPlay(p Play) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO plays (name, score, passed, ticks, seed) VALUES (?, ?, ?, ?, ?)",
		p.Name, p.Score, p.Passed, p.Ticks, p.Seed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record play: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// NamePlay attaches a nickname to a recorded play.
func (s *Store) NamePlay(id int64, name string) error {
	result, err := s.db.Exec("UPDATE plays SET name = ? WHERE id = ?", name, id)
	if err != nil {
		return fmt.Errorf("storage: cannot name play %d: %w", id, err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: play %d not found", id)
	}
	return nil
}

// RecentPlays returns the latest plays, newest first.
func (s *Store) RecentPlays(limit int) ([]Play, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, name, score, passed, ticks, seed, created_at
		 FROM plays
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query plays: %w", err)
	}
	defer rows.Close()

	var plays []Play
	for rows.Next() {
		var p Play
		var createdAt any
		if err := rows.Scan(&p.ID, &p.Name, &p.Score, &p.Passed, &p.Ticks, &p.Seed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.CreatedAt = parseTime(createdAt)
		plays = append(plays, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return plays, nil
}

// Stats aggregates the play history.
func (s *Store) Stats() (*PlayStats, error) {
	stats := &PlayStats{}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0), MAX(created_at)
		 FROM plays`,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get play stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// ClearPlays deletes the play history.
func (s *Store) ClearPlays() error {
	if _, err := s.db.Exec("DELETE FROM plays"); err != nil {
		return fmt.Errorf("storage: cannot clear plays: %w", err)
	}
	return nil
}
