package utils

import (
	"strings"
)

const esc = 0x1b

// StripANSI removes terminal escape sequences and control characters from text
// received from a remote source, so it can be rendered safely inside the TUI.
// CSI sequences (ESC [ ... final byte) and OSC sequences (ESC ] ... BEL or ESC \)
// are dropped entirely; an incomplete trailing sequence is dropped as well.
func StripANSI(input string) string {
	if input == "" {
		return input
	}

	var builder strings.Builder
	builder.Grow(len(input))

	for i := 0; i < len(input); {
		b := input[i]

		switch {
		case b == esc:
			if i+1 >= len(input) {
				i++
				continue
			}

			switch input[i+1] {
			case '[':
				end := i + 2
				for end < len(input) && (input[end] < '@' || input[end] > '~') {
					end++
				}
				if end >= len(input) {
					return builder.String()
				}
				i = end + 1

			case ']':
				end := i + 2
				for end < len(input) {
					if input[end] == '\a' {
						end++
						break
					}
					if input[end] == esc && end+1 < len(input) && input[end+1] == '\\' {
						end += 2
						break
					}
					end++
				}
				i = end

			default:
				// two-byte escape such as ESC c
				i += 2
			}

		case b < 0x20 || b == 0x7f:
			// tabs and newlines would break single-line rendering
			if b == '\t' || b == '\n' || b == '\r' {
				builder.WriteByte(' ')
			}
			i++

		default:
			builder.WriteByte(b)
			i++
		}
	}

	return builder.String()
}
