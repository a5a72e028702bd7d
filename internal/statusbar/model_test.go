package statusbar

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusBarLoading(t *testing.T) {
	m := New("https://example.com/countries.json")

	view := m.View()
	assert.Contains(t, view, "Loading")
	assert.Contains(t, view, "example.com/countries.json")
}

func TestStatusBarCounts(t *testing.T) {
	m := New("offline")
	m, _ = m.Update(LoadFinishedMsg{Total: 3, Took: 250 * time.Millisecond})
	m, _ = m.Update(CountsMsg{Matches: 2, Selected: 1})

	view := m.View()
	assert.Contains(t, view, "2/3 matches")
	assert.Contains(t, view, "1 selected")
	assert.Contains(t, view, "loaded in 250ms")
}

func TestStatusBarLoadFailure(t *testing.T) {
	m := New("offline")
	m, cmd := m.Update(LoadFinishedMsg{Err: errors.New("boom"), Took: 2 * time.Second})

	require.NotNil(t, cmd)
	assert.Equal(t, "Load failed", m.Message())
	assert.Contains(t, m.View(), "failed after 2s")
}

func TestStatusBarFlashExpires(t *testing.T) {
	m := New("offline")

	m, cmd := m.Update(FlashMsg{Text: "Added Ghana", Kind: KindSuccess})
	require.NotNil(t, cmd)
	assert.Equal(t, "Added Ghana", m.Message())
	first := m.messageTicket

	m, _ = m.Update(FlashMsg{Text: "Removed Ghana", Kind: KindInfo})

	// the first message's timer must not clear the newer one
	m, _ = m.Update(messageExpiredMsg{ticket: first})
	assert.Equal(t, "Removed Ghana", m.Message())

	m, _ = m.Update(messageExpiredMsg{ticket: m.messageTicket})
	assert.Empty(t, m.Message())
}

func TestFlashCommand(t *testing.T) {
	msg := Flash(KindInfo, "hello")()
	assert.Equal(t, FlashMsg{Text: "hello", Kind: KindInfo}, msg)
}

func TestFormatSource(t *testing.T) {
	assert.Equal(t, "—", formatSource(""))
	assert.Equal(t, "example.com/x", formatSource("http://example.com/x/"))
}
