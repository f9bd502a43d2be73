package drill

// Phase is the current phase of a drill session.
type Phase int

const (
	PhaseIdle     Phase = iota // Level selected, nothing dealt yet
	PhasePlaying               // A scenario is dealt and awaiting an answer
	PhaseFeedback              // The last answer is being shown
	PhaseSummary               // Session over; terminal for this instance
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseFeedback:
		return "feedback"
	case PhaseSummary:
		return "summary"
	default:
		return "unknown"
	}
}
