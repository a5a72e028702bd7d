// Package typeahead holds the state machine behind the picker: it loads the option
// list once, debounces the query, filters the options and tracks the selection.
package typeahead

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gorbach/typeahead/internal/datasource"
	"github.com/gorbach/typeahead/internal/debounce"
	"github.com/gorbach/typeahead/internal/logger"
	"github.com/gorbach/typeahead/internal/match"
)

// DefaultDebounce is the quiet interval before a query change reaches the list.
const DefaultDebounce = 150 * time.Millisecond

// Option configures a Controller.
type Option func(*Controller)

// WithDebounce sets the debounce delay for query changes.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.delay = d
		}
	}
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithInitialQuery starts the controller with query already applied, without delay.
func WithInitialQuery(query string) Option {
	return func(c *Controller) {
		c.query = strings.ToLower(query)
	}
}

// WithCacheSize sets how many filtered results are memoized.
func WithCacheSize(size int) Option {
	return func(c *Controller) {
		c.cacheSize = size
	}
}

// Controller is the typeahead state machine. It starts in Loading and moves once to
// either Ready or Errored. All methods are safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	source    datasource.Source
	logger    *log.Logger
	delay     time.Duration
	cacheSize int

	state     State
	err       error
	loading   bool
	cache     *match.Cache
	query     string
	debouncer *debounce.Debouncer[string]
	displayed []string
	selection SelectionSet
	focused   bool
	closed    bool

	changes chan struct{}
}

// New creates a controller in the Loading state that will fetch from src.
func New(src datasource.Source, opts ...Option) *Controller {
	c := &Controller{
		source:  src,
		logger:  logger.Discard(),
		delay:   DefaultDebounce,
		state:   Loading,
		changes: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.debouncer = debounce.New(c.query, c.delay, c.settle)
	return c
}

// Load performs the single fetch and applies its outcome. It returns the fetch
// error, if any, after the controller has entered Errored.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	switch {
	case c.closed:
		c.mu.Unlock()
		return ErrClosed
	case c.loading || c.state != Loading:
		c.mu.Unlock()
		return ErrAlreadyLoaded
	}
	c.loading = true
	src := c.source
	c.mu.Unlock()

	var (
		options []string
		err     = datasource.ErrNoSource
	)
	if src != nil {
		started := time.Now()
		options, err = src.Fetch(ctx)
		c.logger.Debug("fetch finished", "took", time.Since(started), "count", len(options), "err", err)
	}

	if applyErr := c.Apply(options, err); applyErr != nil {
		return applyErr
	}
	return err
}

// Apply records the outcome of the fetch: Ready with options when err is nil,
// Errored otherwise. It is only valid while Loading.
func (c *Controller) Apply(options []string, err error) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.state != Loading {
		c.mu.Unlock()
		return ErrAlreadyLoaded
	}
	c.loading = false

	if err != nil {
		c.state = Errored
		c.err = err
		c.mu.Unlock()
		c.logger.Error("failed to load options", "err", err)
		c.notify()
		return nil
	}

	owned := make([]string, len(options))
	copy(owned, options)
	c.state = Ready
	c.cache = match.NewCache(owned, c.cacheSize)
	c.displayed = c.cache.Filter(c.debouncer.Value())
	c.mu.Unlock()

	c.logger.Info("options loaded", "count", len(owned))
	c.notify()
	return nil
}

// QueryChanged records the raw input. The displayed list follows once the lower-cased
// query has been stable for the debounce delay.
func (c *Controller) QueryChanged(text string) error {
	c.mu.Lock()
	if err := c.readyLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	c.query = strings.ToLower(text)
	c.debouncer.Schedule(c.query)
	c.mu.Unlock()

	c.notify()
	return nil
}

// Select adds option to the selection. Selecting a picked option changes nothing.
func (c *Controller) Select(option string) error {
	c.mu.Lock()
	if err := c.readyLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	added := c.selection.Add(option)
	c.mu.Unlock()

	if added {
		c.logger.Debug("selected", "option", option)
		c.notify()
	}
	return nil
}

// Remove drops option from the selection. Removing an absent option changes nothing.
func (c *Controller) Remove(option string) error {
	c.mu.Lock()
	if err := c.readyLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	removed := c.selection.Remove(option)
	c.mu.Unlock()

	if removed {
		c.logger.Debug("removed", "option", option)
		c.notify()
	}
	return nil
}

// FocusInput marks the input as focused, which reveals the menu. There is no blur.
func (c *Controller) FocusInput() error {
	c.mu.Lock()
	if err := c.readyLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	changed := !c.focused
	c.focused = true
	c.mu.Unlock()

	if changed {
		c.notify()
	}
	return nil
}

// Close stops the debouncer and closes the Changes channel. The controller
// accepts no transitions afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.debouncer.Close()
	close(c.changes)
}

func (c *Controller) readyLocked() error {
	if c.closed {
		return ErrClosed
	}
	if c.state != Ready {
		return ErrNotReady
	}
	return nil
}

// settle runs on the debouncer's timer goroutine.
func (c *Controller) settle(query string) {
	c.mu.Lock()
	if c.closed || c.state != Ready {
		c.mu.Unlock()
		return
	}
	c.displayed = c.cache.Filter(query)
	count := len(c.displayed)
	c.mu.Unlock()

	c.logger.Debug("query settled", "query", query, "matches", count)
	c.notify()
}

// notify wakes a listener without blocking. Bursts collapse into one signal.
func (c *Controller) notify() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.changes <- struct{}{}:
	default:
	}
}

// Changes signals after every state change. The channel is closed by Close.
func (c *Controller) Changes() <-chan struct{} {
	return c.changes
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the fetch error once Errored.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Options returns the loaded option list.
func (c *Controller) Options() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cache == nil {
		return nil
	}
	return clone(c.cache.Options())
}

// Query returns the lower-cased query as last typed.
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// DebouncedQuery returns the query the displayed list was filtered with.
func (c *Controller) DebouncedQuery() string {
	return c.debouncer.Value()
}

// Pending reports whether a query change has not reached the list yet.
func (c *Controller) Pending() bool {
	return c.debouncer.Pending()
}

// Displayed returns the options matching the debounced query, in load order.
func (c *Controller) Displayed() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return clone(c.displayed)
}

// Selected returns the picked options in the order they were first picked.
func (c *Controller) Selected() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection.Items()
}

// IsSelected reports whether option has been picked.
func (c *Controller) IsSelected(option string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection.Has(option)
}

// Focused reports whether the input has been focused.
func (c *Controller) Focused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.focused
}

// MenuVisible reports whether the option menu should be shown.
func (c *Controller) MenuVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == Ready && c.focused
}

// Highlight splits option around matches of the debounced query, so highlights
// always agree with the displayed list.
func (c *Controller) Highlight(option string) []string {
	return match.Split(option, c.debouncer.Value())
}

func clone(items []string) []string {
	if items == nil {
		return nil
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}
