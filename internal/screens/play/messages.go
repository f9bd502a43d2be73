package play

import (
	"github.com/abhisek/drillz/internal/drill"
	"github.com/abhisek/drillz/internal/trainer"
)

// startedMsg is sent when the drill machine has dealt its first hand.
type startedMsg struct {
	Machine *drill.Machine
	Err     error
}

// autoAdvanceMsg fires after a correct answer. Hand guards against a
// stale tick advancing a later hand.
type autoAdvanceMsg struct {
	Hand int
}

// completedMsg carries the finished, not yet settled, session.
type completedMsg struct {
	Completion trainer.Completion
	Err        error
}
