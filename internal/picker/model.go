// Package picker is the terminal front end of the typeahead: a bubbletea model that
// renders the controller's state and turns key presses into its transitions.
package picker

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/gorbach/typeahead/internal/logger"
	"github.com/gorbach/typeahead/internal/statusbar"
	"github.com/gorbach/typeahead/internal/typeahead"
	"github.com/gorbach/typeahead/internal/ui"
)

// DefaultPlaceholder is shown in the empty search input.
const DefaultPlaceholder = "Search for country"

type pane int

const (
	paneInput pane = iota
	paneChips
)

// Options configures the picker.
type Options struct {
	// Context bounds the option fetch.
	Context context.Context
	// SourceLabel names where options come from, for the status bar.
	SourceLabel string
	Placeholder string
	// MaxWidth caps the rendered width; zero uses the whole terminal.
	MaxWidth int
	Render   RenderFunc
	Logger   *log.Logger
}

// Model is the root picker model.
type Model struct {
	ctrl   *typeahead.Controller
	ctx    context.Context
	logger *log.Logger

	keys      keyMap
	help      help.Model
	overlay   helpOverlay
	spinner   spinner.Model
	input     textinput.Model
	list      list.Model
	delegate  optionDelegate
	statusBar statusbar.Model

	pane       pane
	chipCursor int
	applied    string
	maxWidth   int
	width      int
	height     int
	aborted    bool
}

// New creates a picker driving ctrl. The controller must still be Loading; the
// picker issues the fetch from Init.
func New(ctrl *typeahead.Controller, opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.Placeholder == "" {
		opts.Placeholder = DefaultPlaceholder
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = ui.LoadingStyle

	delegate := optionDelegate{
		render:    opts.Render,
		highlight: ctrl.Highlight,
		selected:  ctrl.IsSelected,
	}
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()

	input := textinput.New()
	input.Placeholder = opts.Placeholder
	input.Prompt = "> "
	input.CharLimit = 256
	input.PlaceholderStyle = ui.SubtleStyle
	input.PromptStyle = ui.HighlightStyle
	input.Blur()

	keys := defaultKeyMap()

	return Model{
		ctrl:      ctrl,
		ctx:       opts.Context,
		logger:    opts.Logger,
		keys:      keys,
		help:      help.New(),
		overlay:   newHelpOverlay(keys),
		spinner:   s,
		input:     input,
		list:      l,
		delegate:  delegate,
		statusBar: statusbar.New(opts.SourceLabel),
		maxWidth:  opts.MaxWidth,
	}
}

// Init starts the spinner, the fetch and the change listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		loadOptionsCmd(m.ctx, m.ctrl),
		waitForChangeCmd(m.ctrl.Changes()),
		m.statusBar.Init(),
	)
}

// Selected returns the picked options in pick order.
func (m Model) Selected() []string {
	return m.ctrl.Selected()
}

// Aborted reports whether the user quit with ctrl+c.
func (m Model) Aborted() bool {
	return m.aborted
}

// Update handles messages following TEA patterns.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	var overlayCmd tea.Cmd
	var handled bool
	if m.overlay, overlayCmd, handled = m.overlay.Handle(msg); handled {
		return m, overlayCmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.overlay = m.overlay.SetSize(msg.Width, msg.Height)
		m.updateDimensions()
		var cmd tea.Cmd
		m.statusBar, cmd = m.statusBar.Update(tea.WindowSizeMsg{Width: m.contentWidth(), Height: msg.Height})
		return m, cmd

	case optionsFetchedMsg:
		m.logger.Info("options ready", "count", msg.Count, "took", msg.Took)
		m.sync()
		cmds = append(cmds, m.forwardStatus(statusbar.LoadFinishedMsg{Total: msg.Count, Took: msg.Took}))
		cmds = append(cmds, m.forwardStatus(m.countsMsg()))
		return m, tea.Batch(cmds...)

	case optionsErrorMsg:
		m.logger.Error("options failed", "err", msg.Err, "took", msg.Took)
		cmds = append(cmds, m.forwardStatus(statusbar.LoadFinishedMsg{Err: msg.Err, Took: msg.Took}))
		return m, tea.Batch(cmds...)

	case stateChangedMsg:
		m.sync()
		cmds = append(cmds, m.forwardStatus(m.countsMsg()))
		cmds = append(cmds, waitForChangeCmd(m.ctrl.Changes()))
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if m.ctrl.State() == typeahead.Loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, m.forwardStatus(msg)
}

func (m *Model) forwardStatus(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.statusBar, cmd = m.statusBar.Update(msg)
	return cmd
}

func (m Model) countsMsg() statusbar.CountsMsg {
	return statusbar.CountsMsg{
		Matches:  len(m.ctrl.Displayed()),
		Selected: len(m.ctrl.Selected()),
	}
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Abort):
		m.aborted = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Done):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help) && (msg.String() == "f1" || !m.typing()):
		m.overlay = m.overlay.Toggle()
		return m, nil
	}

	if m.ctrl.State() != typeahead.Ready {
		return m, nil
	}

	if key.Matches(msg, m.keys.Pane) {
		return m.switchPane()
	}

	if m.pane == paneChips {
		return m.handleChipsKey(msg)
	}
	return m.handleInputKey(msg)
}

// typing reports whether printable keys belong to the search input.
func (m Model) typing() bool {
	return m.pane == paneInput && m.input.Focused()
}

func (m Model) switchPane() (tea.Model, tea.Cmd) {
	if m.pane == paneChips {
		m.pane = paneInput
		if m.ctrl.Focused() {
			return m, m.input.Focus()
		}
		return m, nil
	}

	if len(m.ctrl.Selected()) == 0 {
		return m, statusbar.Flash(statusbar.KindInfo, "Nothing picked yet")
	}
	m.pane = paneChips
	m.input.Blur()
	m.chipCursor = clamp(m.chipCursor, 0, len(m.ctrl.Selected())-1)
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.input.Focused() {
		if key.Matches(msg, m.keys.Focus) {
			return m.focusInput()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return m, nil
	case key.Matches(msg, m.keys.Select):
		return m.selectCurrent()
	}

	previous := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != previous {
		if err := m.ctrl.QueryChanged(value); err != nil {
			m.logger.Warn("query change rejected", "err", err)
		}
	}
	return m, cmd
}

func (m Model) focusInput() (tea.Model, tea.Cmd) {
	if err := m.ctrl.FocusInput(); err != nil {
		m.logger.Warn("focus rejected", "err", err)
		return m, nil
	}
	m.updateDimensions()
	return m, m.input.Focus()
}

func (m Model) selectCurrent() (tea.Model, tea.Cmd) {
	item, ok := m.list.SelectedItem().(optionItem)
	if !ok {
		return m, nil
	}
	option := string(item)

	if m.ctrl.IsSelected(option) {
		return m, statusbar.Flash(statusbar.KindInfo, option+" already picked")
	}
	if err := m.ctrl.Select(option); err != nil {
		m.logger.Warn("select rejected", "option", option, "err", err)
		return m, nil
	}
	m.updateDimensions()
	return m, statusbar.Flash(statusbar.KindSuccess, "Added "+option)
}

func (m Model) handleChipsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	selected := m.ctrl.Selected()
	if len(selected) == 0 {
		m.pane = paneInput
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Left):
		m.chipCursor = clamp(m.chipCursor-1, 0, len(selected)-1)
	case key.Matches(msg, m.keys.Right):
		m.chipCursor = clamp(m.chipCursor+1, 0, len(selected)-1)
	case key.Matches(msg, m.keys.Remove):
		option := selected[clamp(m.chipCursor, 0, len(selected)-1)]
		if err := m.ctrl.Remove(option); err != nil {
			m.logger.Warn("remove rejected", "option", option, "err", err)
			return m, nil
		}
		remaining := len(selected) - 1
		if remaining == 0 {
			m.pane = paneInput
			m.chipCursor = 0
		} else {
			m.chipCursor = clamp(m.chipCursor, 0, remaining-1)
		}
		m.updateDimensions()
		return m, statusbar.Flash(statusbar.KindInfo, "Removed "+option)
	case key.Matches(msg, m.keys.Focus):
		m.pane = paneInput
		return m.focusInput()
	}
	return m, nil
}

// sync copies the controller's displayed options into the list.
func (m *Model) sync() {
	if m.ctrl.State() != typeahead.Ready {
		return
	}

	displayed := m.ctrl.Displayed()
	items := make([]list.Item, len(displayed))
	for i, option := range displayed {
		items[i] = optionItem(option)
	}
	m.list.SetItems(items)

	if query := m.ctrl.DebouncedQuery(); query != m.applied {
		m.applied = query
		m.list.Select(0)
	}
	if idx := m.list.Index(); idx < 0 || idx >= len(items) {
		m.list.Select(0)
	}
}

// moveCursor moves the menu cursor by delta with wrap-around.
func (m *Model) moveCursor(delta int) {
	count := len(m.list.Items())
	if count == 0 {
		return
	}
	idx := (m.list.Index() + delta) % count
	if idx < 0 {
		idx += count
	}
	m.list.Select(idx)
}

func (m Model) contentWidth() int {
	if m.maxWidth > 0 && m.width > m.maxWidth {
		return m.maxWidth
	}
	return m.width
}

// chromeHeight is every line that is not the menu: chips, input, help and status.
const chromeHeight = 5

func (m *Model) updateDimensions() {
	width := m.contentWidth()
	// border and padding of the menu pane
	innerWidth := max(width-4, 0)

	m.input.Width = max(innerWidth-len(m.input.Prompt)-1, 1)
	m.delegate.width = innerWidth
	m.list.SetDelegate(m.delegate)

	height := m.height - chromeHeight - m.chipsHeight()
	m.list.SetSize(innerWidth, max(height, 0))
}
