package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gorbach/typeahead/internal/typeahead"
	"github.com/gorbach/typeahead/internal/ui"
)

// View renders the picker.
func (m Model) View() string {
	if m.overlay.Active() {
		return m.overlay.View(m.width, m.height)
	}

	var body string
	switch m.ctrl.State() {
	case typeahead.Loading:
		body = fmt.Sprintf("%s Loading options...", m.spinner.View())
	case typeahead.Errored:
		title := ui.ErrorStyle.Render(ui.IconError + " Error loading options")
		errMsg := ui.SubtleStyle.Render(m.ctrl.Err().Error())
		body = title + "\n\n" + errMsg
	default:
		body = m.readyView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, m.statusBar.View())
}

func (m Model) readyView() string {
	width := m.contentWidth()

	sections := []string{m.chipsView()}

	input := ui.PaneStyle(m.pane == paneInput)
	if width > 2 {
		input = input.Width(width - 2)
	}
	sections = append(sections, input.Render(m.input.View()))

	if m.ctrl.MenuVisible() {
		content := strings.TrimRight(m.list.View(), "\n")
		if len(m.list.Items()) == 0 {
			content = ui.SubtleStyle.Render("No matches found")
		}
		sections = append(sections, content)
	} else {
		sections = append(sections, ui.SubtleStyle.Render("Press / to search"))
	}

	m.help.Width = width
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) chipsView() string {
	selected := m.ctrl.Selected()
	if len(selected) == 0 {
		return ui.SubtleStyle.Render("No options picked")
	}

	chips := make([]string, len(selected))
	for i, option := range selected {
		style := ui.ChipStyle
		if m.pane == paneChips && i == m.chipCursor {
			style = ui.ActiveChipStyle
		}
		chips[i] = style.Render(option + " " + ui.IconRemove)
	}

	row := strings.Join(chips, " ")
	if width := m.contentWidth(); width > 0 {
		row = lipgloss.NewStyle().Width(width).Render(row)
	}
	return row
}

func (m Model) chipsHeight() int {
	return lipgloss.Height(m.chipsView())
}
