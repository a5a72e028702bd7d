package ui

import "strings"

const (
	IconChecked   = "✓"
	IconUnchecked = "○"
	IconRemove    = "×"
	IconError     = "✗"
	IconPointer   = "▶"
)

// SelectionIcon returns the marker shown next to an option in the menu.
func SelectionIcon(selected bool) string {
	if selected {
		return SuccessStyle.Render(IconChecked)
	}
	return SubtleStyle.Render(IconUnchecked)
}

// RenderSpans renders alternating plain and matching spans, styling the matches.
func RenderSpans(spans []string, plain, matched func(...string) string) string {
	var b strings.Builder
	for i, span := range spans {
		if span == "" {
			continue
		}
		if i%2 == 1 {
			b.WriteString(matched(span))
		} else {
			b.WriteString(plain(span))
		}
	}
	return b.String()
}
