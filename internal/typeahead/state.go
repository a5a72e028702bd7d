package typeahead

import "errors"

// State is the lifecycle phase of a Controller.
type State int

const (
	// Loading means the option fetch has not completed yet.
	Loading State = iota
	// Ready means options are available and the user can search and select.
	Ready
	// Errored means the fetch failed. It is terminal.
	Errored
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Errored:
		return "errored"
	default:
		return "unknown"
	}
}

var (
	// ErrNotReady is returned by user transitions while the controller is not Ready.
	ErrNotReady = errors.New("typeahead is not ready")

	// ErrAlreadyLoaded is returned when a fetch result is applied more than once.
	ErrAlreadyLoaded = errors.New("options already loaded")

	// ErrClosed is returned by transitions after Close.
	ErrClosed = errors.New("typeahead is closed")
)
