package picker

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	helpMinWidth  = 30
	helpMaxWidth  = 64
	helpMinHeight = 6
)

type helpOverlay struct {
	visible  bool
	viewport viewport.Model
}

func newHelpOverlay(keys keyMap) helpOverlay {
	h := help.New()
	h.ShowAll = true

	vp := viewport.New(0, 0)
	vp.SetContent("Key Bindings\n\n" + h.FullHelpView(keys.FullHelp()) + "\n\n[Press ? or Esc to close]")
	return helpOverlay{viewport: vp}
}

func (h helpOverlay) Active() bool {
	return h.visible
}

func (h helpOverlay) Toggle() helpOverlay {
	h.visible = !h.visible
	if h.visible {
		h.viewport.GotoTop()
	}
	return h
}

func (h helpOverlay) SetSize(width, height int) helpOverlay {
	h.viewport.Width = clamp(width-8, helpMinWidth, helpMaxWidth)
	h.viewport.Height = max(height-6, helpMinHeight)
	return h
}

// Handle consumes messages while the overlay is visible.
func (h helpOverlay) Handle(msg tea.Msg) (helpOverlay, tea.Cmd, bool) {
	if !h.visible {
		return h, nil, false
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "?", "f1", "q":
			h.visible = false
			return h, nil, true
		case "ctrl+c":
			return h, nil, false
		}
		var cmd tea.Cmd
		h.viewport, cmd = h.viewport.Update(msg)
		return h, cmd, true

	case tea.MouseMsg:
		var cmd tea.Cmd
		h.viewport, cmd = h.viewport.Update(msg)
		return h, cmd, true
	}

	return h, nil, false
}

func (h helpOverlay) View(width, height int) string {
	body := lipgloss.NewStyle().
		Width(h.viewport.Width).
		Padding(1, 2).
		Render(h.viewport.View())

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("12")).
		Render(body)

	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
