package picker

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gorbach/typeahead/internal/typeahead"
)

// optionsFetchedMsg is sent when the controller reached Ready.
type optionsFetchedMsg struct {
	Count int
	Took  time.Duration
}

// optionsErrorMsg is sent when the fetch failed and the controller is Errored.
type optionsErrorMsg struct {
	Err  error
	Took time.Duration
}

// stateChangedMsg is sent whenever the controller signals a change, including a
// debounced query settling on the timer goroutine.
type stateChangedMsg struct{}

// loadOptionsCmd runs the controller's single fetch off the update loop.
func loadOptionsCmd(ctx context.Context, ctrl *typeahead.Controller) tea.Cmd {
	return func() tea.Msg {
		started := time.Now()
		err := ctrl.Load(ctx)
		took := time.Since(started)
		if err != nil {
			return optionsErrorMsg{Err: err, Took: took}
		}
		return optionsFetchedMsg{Count: len(ctrl.Options()), Took: took}
	}
}

// waitForChangeCmd blocks until the controller signals. It yields nothing once the
// controller is closed.
func waitForChangeCmd(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return stateChangedMsg{}
	}
}
