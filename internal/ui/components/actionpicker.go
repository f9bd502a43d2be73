package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/drillz/internal/scenario"
	"github.com/abhisek/drillz/internal/ui/theme"
)

// ActionPicker is the fold/call/raise selector shown under a hand. It can
// be driven by the F, C and R hotkeys or by arrows and Enter.
type ActionPicker struct {
	Actions  []scenario.Action
	Selected int

	// Revealed is set once the answer has been scored; the correct action
	// is then highlighted and the chosen one marked.
	Revealed bool
	Chosen   scenario.Action
	Correct  scenario.Action
}

// ActionChosenMsg is emitted when the player commits to an action.
type ActionChosenMsg struct {
	Action scenario.Action
}

// NewActionPicker returns a picker over every action.
func NewActionPicker() ActionPicker {
	return ActionPicker{Actions: scenario.AllActions()}
}

// Reveal marks the picker as scored.
func (p ActionPicker) Reveal(chosen, correct scenario.Action) ActionPicker {
	p.Revealed = true
	p.Chosen = chosen
	p.Correct = correct
	return p
}

// Update handles hotkeys and arrow navigation.
func (p ActionPicker) Update(msg tea.Msg) (ActionPicker, tea.Cmd) {
	if p.Revealed {
		return p, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	key := kmsg.String()
	switch key {
	case "left", "h", "up", "k":
		if p.Selected > 0 {
			p.Selected--
		}
		return p, nil
	case "right", "l", "down", "j":
		if p.Selected < len(p.Actions)-1 {
			p.Selected++
		}
		return p, nil
	case "enter", "space":
		return p, choose(p.Actions[p.Selected])
	}

	if a, err := scenario.ParseAction(key); err == nil && len(key) == 1 {
		for i, candidate := range p.Actions {
			if candidate == a {
				p.Selected = i
			}
		}
		return p, choose(a)
	}
	switch key {
	case "1", "2", "3":
		i := int(key[0] - '1')
		if i < len(p.Actions) {
			p.Selected = i
			return p, choose(p.Actions[i])
		}
	}
	return p, nil
}

func choose(a scenario.Action) tea.Cmd {
	return func() tea.Msg { return ActionChosenMsg{Action: a} }
}

// View renders the actions side by side.
func (p ActionPicker) View() string {
	buttons := make([]string, 0, len(p.Actions))
	for i, a := range p.Actions {
		label := fmt.Sprintf(" [%s] %s ", strings.ToUpper(a.String()[:1]), a.DisplayName())
		style := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

		switch {
		case p.Revealed && a == p.Correct:
			style = style.BorderForeground(theme.Success).Foreground(theme.Success).Bold(true)
		case p.Revealed && a == p.Chosen:
			style = style.BorderForeground(theme.Error).Foreground(theme.Error).Bold(true)
		case p.Revealed:
			style = style.BorderForeground(theme.Border).Foreground(theme.TextDim)
		case i == p.Selected:
			style = style.BorderForeground(theme.ActionColor(a)).Foreground(theme.ActionColor(a)).Bold(true)
		default:
			style = style.BorderForeground(theme.Border).Foreground(theme.Text)
		}
		buttons = append(buttons, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}
