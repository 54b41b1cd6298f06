package condition

import "strings"

// Matchable is the capability shared by built-in commands and routines.
type Matchable interface {
	Matches(tokens []string) bool
}

// Set is an OR-combined list of conditions. An empty set never matches.
type Set []Condition

func (s Set) Matches(tokens []string) bool {
	for _, c := range s {
		if c.Evaluate(tokens) {
			return true
		}
	}
	return false
}

func (s Set) String() string {
	parts := make([]string, 0, len(s))
	for _, c := range s {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, " | ")
}

// FirstMatch returns the index of the first candidate matching tokens, or -1.
func FirstMatch[T Matchable](candidates []T, tokens []string) int {
	for idx, candidate := range candidates {
		if candidate.Matches(tokens) {
			return idx
		}
	}
	return -1
}
