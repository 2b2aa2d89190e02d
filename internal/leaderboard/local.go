package leaderboard

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// LocalKey is the blob key the local list is stored under.
const LocalKey = "highscores"

// BlobStore is a key/value store for opaque string blobs.
type BlobStore interface {
	// ReadBlob returns the value for key, or ok=false when nothing is stored.
	ReadBlob(key string) (value string, ok bool, err error)
	WriteBlob(key, value string) error
}

// Local is the on-device top-ten list.
type Local struct {
	mu     sync.Mutex // serializes read-modify-write across sessions
	store  BlobStore
	key    string
	logger *log.Logger
}

// NewLocal creates a local leaderboard on top of store.
func NewLocal(store BlobStore, logger *log.Logger) *Local {
	if logger == nil {
		logger = log.Default()
	}
	return &Local{store: store, key: LocalKey, logger: logger}
}

// Load returns the stored list in descending order. Missing, unreadable or
// malformed data yields an empty list.
func (l *Local) Load() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load()
}

func (l *Local) load() []Record {
	raw, ok, err := l.store.ReadBlob(l.key)
	if err != nil {
		l.logger.Warn("cannot read local highscores", "err", err)
		return []Record{}
	}
	if !ok || raw == "" {
		return []Record{}
	}

	var list []Record
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		l.logger.Warn("discarding malformed local highscores", "err", err)
		return []Record{}
	}

	valid := list[:0]
	for _, r := range list {
		if r.Validate() == nil {
			valid = append(valid, r)
		}
	}
	sortDescending(valid)
	return truncate(valid, Capacity)
}

// Submit inserts r, keeps the best ten and persists the result. A newcomer
// that ties existing scores ranks after them. accepted reports whether r is
// still on the list.
func (l *Local) Submit(r Record) (accepted bool, updated []Record, err error) {
	if err := r.Validate(); err != nil {
		return false, nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	current := l.load()
	list, idx := insertRanked(current, r)
	list = truncate(list, Capacity)
	if idx >= Capacity {
		return false, list, nil
	}

	data, err := json.Marshal(list)
	if err != nil {
		return false, current, fmt.Errorf("leaderboard: cannot encode highscores: %w", err)
	}
	if err := l.store.WriteBlob(l.key, string(data)); err != nil {
		return false, current, fmt.Errorf("leaderboard: cannot save highscores: %w", err)
	}
	return true, list, nil
}

// Qualifies reports whether score would make the local list.
func (l *Local) Qualifies(score int) bool {
	return Admits(l.Load(), score)
}
