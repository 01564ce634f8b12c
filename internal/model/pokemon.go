// Package model defines the domain types shared across dex.
package model

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Summary references one catalog entry before its detail has been fetched.
type Summary struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Pokemon is the full record of one catalog entry.
// Records are immutable once fetched; Name is unique within a working set.
type Pokemon struct {
	Name   string   `json:"name"`
	Sprite string   `json:"sprite"`
	Types  []string `json:"types"`
	ID     int      `json:"id"`
	Weight int      `json:"weight"`
}

// HasType reports whether label is one of the record's types.
// The comparison is exact.
func (p Pokemon) HasType(label string) bool {
	for _, t := range p.Types {
		if t == label {
			return true
		}
	}
	return false
}

// DisplayName returns the name with its first letter upper-cased.
func (p Pokemon) DisplayName() string {
	return Capitalize(p.Name)
}

// TypeList joins the record's types for display.
func (p Pokemon) TypeList() string {
	return strings.Join(p.Types, ", ")
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
