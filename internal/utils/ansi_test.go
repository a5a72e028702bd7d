package utils

import "testing"

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text",
			input: "Germany",
			want:  "Germany",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "color sequence stripped",
			input: "\x1b[31mFrance\x1b[0m",
			want:  "France",
		},
		{
			name:  "osc title sequence ignored",
			input: "Gha\x1b]0;pwned\x07na",
			want:  "Ghana",
		},
		{
			name:  "osc terminated by string terminator",
			input: "Pe\x1b]8;;http://x\x1b\\ru",
			want:  "Peru",
		},
		{
			name:  "incomplete csi stops processing",
			input: "Chad\x1b[31",
			want:  "Chad",
		},
		{
			name:  "two byte escape dropped",
			input: "Ch\x1bcile",
			want:  "Chile",
		},
		{
			name:  "control characters become spaces or vanish",
			input: "New\tZealand\x00\x7f",
			want:  "New Zealand",
		},
		{
			name:  "trailing escape dropped",
			input: "Mali\x1b",
			want:  "Mali",
		},
		{
			name:  "unicode preserved",
			input: "Côte d'Ivoire",
			want:  "Côte d'Ivoire",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripANSI(tt.input)
			if got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
