package session

import (
	"github.com/vovakirdan/knight-skies/internal/leaderboard"
)

// NoticeKind classifies a leaderboard notice.
type NoticeKind int

const (
	NoticeLocalSaved    NoticeKind = iota // Score entered the local top ten
	NoticeLocalRejected                   // Score did not make the local top ten
	NoticeLocalFailed                     // Local list could not be saved
	NoticeWorldUpdated                    // Score entered the world top ten
	NoticeWorldRejected                   // Score did not beat the world tenth place
	NoticeWorldFailed                     // World leaderboard unreachable
)

// String returns a human-readable name for the notice kind.
func (k NoticeKind) String() string {
	switch k {
	case NoticeLocalSaved:
		return "local_saved"
	case NoticeLocalRejected:
		return "local_rejected"
	case NoticeLocalFailed:
		return "local_failed"
	case NoticeWorldUpdated:
		return "world_updated"
	case NoticeWorldRejected:
		return "world_rejected"
	case NoticeWorldFailed:
		return "world_failed"
	default:
		return "unknown"
	}
}

// Notice is a non-blocking message for the player about a submission.
type Notice struct {
	Kind       NoticeKind
	Message    string
	Generation uint64
}

// RemoteResult is the outcome of a world submission, tagged with the
// session generation it was started for.
type RemoteResult struct {
	Generation uint64
	Record     leaderboard.Record
	Admission  leaderboard.Admission
	Err        error
}

// RemoteTask performs a world submission. It blocks on the network and is
// meant to run on its own goroutine; its result goes back through Deliver.
type RemoteTask func() RemoteResult
