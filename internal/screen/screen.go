package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/drillz/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// BackHandler is implemented by screens that handle Esc themselves, such
// as a drill asking for confirmation before ending.
type BackHandler interface {
	HandlesBack() bool
}

// ResumeMsg is delivered to a screen when it becomes active again after
// the screens above it were popped.
type ResumeMsg struct{}

// StatsChangedMsg signals that balances shown in the header may have
// changed.
type StatsChangedMsg struct{}
