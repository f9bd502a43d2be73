package drill

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/drillz/internal/campaign"
	"github.com/abhisek/drillz/internal/scenario"
)

// Outcome is the terminal record of a session, handed to reconciliation.
type Outcome struct {
	// SessionID identifies this session instance. Reward claims for the
	// session are keyed by it, so it must be stable across retries of the
	// same reconciliation.
	SessionID string         `json:"session_id"`
	Level     campaign.Level `json:"level"`
	Summary   Summary        `json:"summary"`
	Results   []Result       `json:"results"`
	StartedAt time.Time      `json:"started_at"`
	EndedAt   time.Time      `json:"ended_at"`
}

// Config configures a Machine.
type Config struct {
	// Length is the number of hands per session. Zero means SessionLength.
	Length int

	Logger *slog.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	// Seed returns the seed for a new session. Defaults to rand.Uint64.
	Seed func() uint64
}

func (c Config) withDefaults() Config {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Seed == nil {
		c.Seed = rand.Uint64
	}
	return c
}

// Machine wraps the pure Transition function with the bookkeeping a UI
// needs: a clock, a seed, logging of rejected events, and the
// exactly-once hand-off of the session outcome.
type Machine struct {
	cfg       Config
	state     State
	sessionID string
	processed bool
}

// NewMachine returns an idle machine for level.
func NewMachine(level campaign.Level, cfg Config) *Machine {
	return &Machine{
		cfg:   cfg.withDefaults(),
		state: NewState(level, nil),
	}
}

// Start loads the level's deck from src and deals the first hand. On any
// load error the machine stays idle and the error is returned.
func (m *Machine) Start(ctx context.Context, src scenario.Source) error {
	deck, err := scenario.LoadDeck(ctx, src, m.state.Level.ScenarioSetRef)
	if err != nil {
		return err
	}
	return m.StartWithDeck(deck)
}

// StartWithDeck deals the first hand from an already loaded deck.
func (m *Machine) StartWithDeck(deck *scenario.Deck) error {
	next, err := Transition(m.state, Start{
		Deck:   deck,
		Level:  m.state.Level,
		At:     m.cfg.Now(),
		Seed:   m.cfg.Seed(),
		Length: m.cfg.Length,
	})
	if err != nil {
		return err
	}
	m.state = next
	m.sessionID = uuid.NewString()
	m.cfg.Logger.Debug("drill started",
		"session", m.sessionID, "level", m.state.Level.ID, "deck", deck.Size())
	return nil
}

// Submit answers the current hand. It reports whether the answer was
// accepted; answers outside PLAYING are ignored.
func (m *Machine) Submit(answer scenario.Action) bool {
	return m.apply(Submit{Answer: answer, At: m.cfg.Now()})
}

// Next advances past feedback. auto marks a timer-driven advance.
func (m *Machine) Next(auto bool) bool {
	return m.apply(Next{At: m.cfg.Now(), Auto: auto})
}

// End finishes the session early.
func (m *Machine) End() bool {
	return m.apply(End{At: m.cfg.Now()})
}

func (m *Machine) apply(ev Event) bool {
	next, err := Transition(m.state, ev)
	if err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			m.cfg.Logger.Debug("drill event ignored", "session", m.sessionID, "err", err)
		} else {
			m.cfg.Logger.Warn("drill event failed", "session", m.sessionID, "err", err)
		}
		return false
	}
	m.state = next
	return true
}

// State returns a copy of the current state.
func (m *Machine) State() State {
	return m.state.clone()
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.state.Phase
}

// SessionID returns the current session instance id, empty before Start.
func (m *Machine) SessionID() string {
	return m.sessionID
}

// Summary scores the session. It is only meaningful in PhaseSummary.
func (m *Machine) Summary() Summary {
	return BuildSummary(m.state)
}

// TakeOutcome returns the session outcome the first time it is called in
// PhaseSummary, and false on every later call.
func (m *Machine) TakeOutcome() (Outcome, bool) {
	if m.state.Phase != PhaseSummary || m.processed {
		return Outcome{}, false
	}
	m.processed = true
	return Outcome{
		SessionID: m.sessionID,
		Level:     m.state.Level,
		Summary:   BuildSummary(m.state),
		Results:   append([]Result(nil), m.state.Results...),
		StartedAt: m.state.StartedAt,
		EndedAt:   m.state.EndedAt,
	}, true
}

// Retry returns a fresh idle machine for the same level. Keys seen in
// this session carry over so the retry deals new hands first.
func (m *Machine) Retry() *Machine {
	return &Machine{
		cfg:   m.cfg,
		state: NewState(m.state.Level, m.state.SeenKeys),
	}
}
