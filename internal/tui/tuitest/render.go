package tuitest

import (
	"regexp"
	"strings"
)

var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes ANSI escape codes from s.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// ContainsInOrder reports whether output contains every expected string in order.
func ContainsInOrder(output string, expected ...string) bool {
	last := 0
	for _, exp := range expected {
		i := strings.Index(output[last:], exp)
		if i == -1 {
			return false
		}
		last += i + len(exp)
	}
	return true
}
