package statusbar

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gorbach/typeahead/internal/utils"
)

// Kind selects how a transient message is styled.
type Kind int

const (
	KindNone Kind = iota
	KindInfo
	KindSuccess
	KindError
)

const messageDuration = 3 * time.Second

type messageExpiredMsg struct {
	ticket uint64
}

// LoadFinishedMsg tells the status bar that the option fetch completed.
type LoadFinishedMsg struct {
	Total int
	Took  time.Duration
	Err   error
}

// CountsMsg carries the current number of displayed and selected options.
type CountsMsg struct {
	Matches  int
	Selected int
}

// FlashMsg shows text for a few seconds.
type FlashMsg struct {
	Text string
	Kind Kind
}

// Flash returns a command that shows text in the status bar.
func Flash(kind Kind, text string) tea.Cmd {
	return func() tea.Msg {
		return FlashMsg{Text: text, Kind: kind}
	}
}

// Model represents the status bar state and rendering logic.
type Model struct {
	source string

	total    int
	matches  int
	selected int
	took     time.Duration

	message       string
	messageKind   Kind
	messageTicket uint64

	width   int
	loading bool
	failed  bool
}

// New creates a status bar for options coming from source.
func New(source string) Model {
	return Model{
		source:  source,
		loading: true,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages following TEA patterns.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case LoadFinishedMsg:
		m.loading = false
		m.took = msg.Took
		if msg.Err != nil {
			m.failed = true
			return m.setMessage(KindError, "Load failed")
		}
		m.total = msg.Total
		m.matches = msg.Total
		return m, nil

	case CountsMsg:
		m.matches = msg.Matches
		m.selected = msg.Selected
		return m, nil

	case FlashMsg:
		return m.setMessage(msg.Kind, msg.Text)

	case messageExpiredMsg:
		if msg.ticket == m.messageTicket {
			m.message = ""
			m.messageKind = KindNone
		}
		return m, nil
	}

	return m, nil
}

func (m Model) setMessage(kind Kind, text string) (Model, tea.Cmd) {
	m.messageTicket++
	m.message = text
	m.messageKind = kind

	ticket := m.messageTicket
	cmd := tea.Tick(messageDuration, func(time.Time) tea.Msg {
		return messageExpiredMsg{ticket: ticket}
	})

	return m, cmd
}

// Message returns the transient message currently shown, if any.
func (m Model) Message() string {
	return m.message
}

// View renders the status bar.
func (m Model) View() string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("12")).
		Width(m.width).
		Padding(0, 1)

	parts := []string{
		"typeahead",
		formatSource(m.source),
	}

	switch {
	case m.loading:
		parts = append(parts, "Loading…")
	case m.failed:
		parts = append(parts, fmt.Sprintf("failed after %s", utils.FormatDuration(m.took)))
	default:
		parts = append(parts,
			fmt.Sprintf("%d/%d matches", m.matches, m.total),
			fmt.Sprintf("%d selected", m.selected),
			fmt.Sprintf("loaded in %s", utils.FormatDuration(m.took)),
		)
	}

	parts = append(parts, "? for help")

	if m.message != "" {
		parts = append(parts, renderMessage(m.message, m.messageKind))
	}

	content := strings.Join(parts, " | ")
	return style.Render(content)
}

func formatSource(source string) string {
	if source == "" {
		return "—"
	}
	source = strings.TrimPrefix(source, "https://")
	source = strings.TrimPrefix(source, "http://")
	return utils.TruncateString(strings.TrimSuffix(source, "/"), 40)
}

func renderMessage(text string, kind Kind) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	style := lipgloss.NewStyle().Bold(true)

	switch kind {
	case KindError:
		style = style.Foreground(lipgloss.Color("1"))
	case KindSuccess:
		style = style.Foreground(lipgloss.Color("10"))
	case KindInfo:
		style = style.Foreground(lipgloss.Color("11"))
	default:
		style = style.Foreground(lipgloss.Color("7"))
	}

	return style.Render(text)
}
