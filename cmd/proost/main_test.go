package main

import "testing"

// TestIsCommand mirrors the original proost binary's own is_command
// tests: blank and "//"-prefixed lines are not commands, everything else
// is, including a command with a trailing "//" comment.
func TestIsCommand(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"   ", false},
		{"\t\n", false},
		{"// a comment", false},
		{"   // indented comment", false},
		{"check x", true},
		{"  check x", true},
		{"check x // trailing comment", true},
		{"/", true},
	}
	for _, c := range cases {
		if got := isCommand(c.in); got != c.want {
			t.Errorf("isCommand(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
