package utils

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{name: "zero", duration: 0, want: "0s"},
		{name: "negative", duration: -time.Second, want: "0s"},
		{name: "sub-millisecond", duration: 300 * time.Microsecond, want: "0ms"},
		{name: "typical fetch latency", duration: 350 * time.Millisecond, want: "350ms"},
		{name: "just under a second", duration: 999 * time.Millisecond, want: "999ms"},
		{name: "exactly one second", duration: time.Second, want: "1s"},
		{name: "rounds down", duration: 1400 * time.Millisecond, want: "1s"},
		{name: "rounds up", duration: 1500 * time.Millisecond, want: "2s"},
		{name: "minutes and seconds", duration: 2*time.Minute + 34*time.Second, want: "2m 34s"},
		{name: "minutes only", duration: 5 * time.Minute, want: "5m"},
		{name: "hours and seconds", duration: 2*time.Hour + 30*time.Second, want: "2h 30s"},
		{name: "hours minutes seconds", duration: 3*time.Hour + 2*time.Minute + 15*time.Second, want: "3h 2m 15s"},
		{name: "59.6 seconds rolls into a minute", duration: 59*time.Second + 600*time.Millisecond, want: "1m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatDuration(tt.duration)
			if got != tt.want {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.duration, got, tt.want)
			}
		})
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{name: "fits", input: "Chad", maxLen: 10, want: "Chad"},
		{name: "exact length", input: "Chad", maxLen: 4, want: "Chad"},
		{name: "ellipsis", input: "United Kingdom", maxLen: 9, want: "United..."},
		{name: "no room for ellipsis", input: "Germany", maxLen: 3, want: "Ger"},
		{name: "zero", input: "Germany", maxLen: 0, want: ""},
		{name: "negative", input: "Germany", maxLen: -1, want: ""},
		{name: "empty input", input: "", maxLen: 5, want: ""},
		{name: "counts runes not bytes", input: "São Tomé and Príncipe", maxLen: 8, want: "São T..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateString(tt.input, tt.maxLen)
			if got != tt.want {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}
