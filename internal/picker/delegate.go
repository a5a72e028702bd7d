package picker

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gorbach/typeahead/internal/ui"
)

// RenderFunc renders one option from its highlight spans. Even indexes of spans are
// plain text and odd indexes match the query.
type RenderFunc func(option string, spans []string) string

// DefaultRender underlines the matching spans with ui.SearchHighlightStyle.
func DefaultRender(_ string, spans []string) string {
	return ui.RenderSpans(spans, plain, ui.SearchHighlightStyle.Render)
}

func plain(s ...string) string {
	return strings.Join(s, "")
}

// optionItem is a list.Item for a single option.
type optionItem string

// FilterValue implements list.Item. Filtering is done by the controller.
func (o optionItem) FilterValue() string {
	return string(o)
}

// optionDelegate implements list.ItemDelegate for options.
type optionDelegate struct {
	render    RenderFunc
	highlight func(string) []string
	selected  func(string) bool
	width     int
}

func (d optionDelegate) Height() int {
	return 1
}

func (d optionDelegate) Spacing() int {
	return 0
}

func (d optionDelegate) Update(tea.Msg, *list.Model) tea.Cmd {
	return nil
}

// Render renders a single option line.
func (d optionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	option, ok := item.(optionItem)
	if !ok {
		return
	}
	label := string(option)

	pointer := "  "
	if index == m.Index() {
		pointer = ui.HighlightStyle.Render(ui.IconPointer) + " "
	}

	var picked bool
	if d.selected != nil {
		picked = d.selected(label)
	}

	spans := []string{label}
	if d.highlight != nil {
		spans = d.highlight(label)
	}
	if d.width > 0 {
		// pointer and icon take four cells
		spans = truncateSpans(spans, d.width-4)
	}

	render := d.render
	if render == nil {
		render = DefaultRender
	}

	var builder strings.Builder
	builder.WriteString(pointer)
	builder.WriteString(ui.SelectionIcon(picked))
	builder.WriteString(" ")
	builder.WriteString(render(label, spans))
	line := builder.String()

	if index == m.Index() {
		line = ui.SelectedStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// truncateSpans cuts spans so their combined length is at most maxLen runes, ending
// with an ellipsis in a plain span when text was dropped.
func truncateSpans(spans []string, maxLen int) []string {
	total := 0
	for _, span := range spans {
		total += utf8.RuneCountInString(span)
	}
	if total <= maxLen {
		return spans
	}
	if maxLen <= 1 {
		return []string{""}
	}

	budget := maxLen - 1
	out := make([]string, 0, len(spans)+1)
	for _, span := range spans {
		n := utf8.RuneCountInString(span)
		if n <= budget {
			out = append(out, span)
			budget -= n
			continue
		}
		out = append(out, string([]rune(span)[:budget]))
		break
	}
	if len(out)%2 == 0 {
		// last kept span is a match; the ellipsis goes into a plain span
		return append(out, "…")
	}
	out[len(out)-1] += "…"
	return out
}
