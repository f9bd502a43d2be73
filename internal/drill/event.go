package drill

import (
	"time"

	"github.com/abhisek/drillz/internal/campaign"
	"github.com/abhisek/drillz/internal/scenario"
)

// Event is an input to Transition.
type Event interface {
	event()
}

// Start begins a session: IDLE -> PLAYING, dealing hand 0.
type Start struct {
	Deck  *scenario.Deck
	Level campaign.Level
	At    time.Time
	Seed  uint64

	// Length overrides SessionLength when positive.
	Length int
}

// Submit answers the current hand: PLAYING -> FEEDBACK.
type Submit struct {
	Answer scenario.Action
	At     time.Time
}

// Next leaves feedback: FEEDBACK -> PLAYING, or -> SUMMARY after the last
// hand. Auto marks a timer-driven advance, which is only allowed after a
// correct answer.
type Next struct {
	At   time.Time
	Auto bool
}

// End finishes the session early: PLAYING or FEEDBACK -> SUMMARY.
type End struct {
	At time.Time
}

func (Start) event()  {}
func (Submit) event() {}
func (Next) event()   {}
func (End) event()    {}
