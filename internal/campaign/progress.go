package campaign

import "time"

// LevelProgress is a user's durable record for one level. Records are
// created lazily on the first completed attempt and never deleted.
type LevelProgress struct {
	BestAccuracy float64 `json:"best_accuracy"`

	// IsUnlocked is set once a completed session on this level has
	// unlocked its successor. It is only ever set by reconciliation.
	IsUnlocked bool `json:"is_unlocked"`

	TimesPlayed  int       `json:"times_played"`
	LastPlayedAt time.Time `json:"last_played_at"`

	// LastSessionID is the session that last updated the record. Writing
	// the same session twice does not count a second play.
	LastSessionID string `json:"last_session_id,omitempty"`
}

// MergeProgress combines a stored record with a new attempt. Accuracy and
// play time keep the maximum, the unlock flag is sticky, and play counts
// are summed unless update replays the session already recorded.
func MergeProgress(existing, update LevelProgress) LevelProgress {
	out := existing
	out.BestAccuracy = max(existing.BestAccuracy, update.BestAccuracy)
	out.IsUnlocked = existing.IsUnlocked || update.IsUnlocked
	if update.LastSessionID == "" || update.LastSessionID != existing.LastSessionID {
		out.TimesPlayed = existing.TimesPlayed + update.TimesPlayed
	}
	if update.LastPlayedAt.After(existing.LastPlayedAt) {
		out.LastPlayedAt = update.LastPlayedAt
	}
	if update.LastSessionID != "" {
		out.LastSessionID = update.LastSessionID
	}
	return out
}
