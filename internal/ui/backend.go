package ui

import "strings"

const (
	BackendAuto      = "auto"
	BackendBubbleTea = "bubbletea"
	BackendHuh       = "huh"
	BackendTView     = "tview"
	BackendPlain     = "plain"
)

var interactiveBackends = []string{BackendBubbleTea, BackendHuh, BackendTView}

func NormalizeBackend(backend string) string {
	switch b := strings.ToLower(strings.TrimSpace(backend)); b {
	case BackendBubbleTea, BackendHuh, BackendTView, BackendPlain:
		return b
	default:
		return BackendAuto
	}
}

func IsInteractiveBackend(backend string) bool {
	return NormalizeBackend(backend) != BackendPlain
}

// Resolve picks the backend for a session. Without a terminal on both ends
// only the plain prompts can work.
func Resolve(configured string, terminal bool) string {
	if !terminal {
		return BackendPlain
	}
	return NormalizeBackend(configured)
}

// backendCandidates puts the preferred backend first and keeps the others as
// fallbacks in their usual order.
func backendCandidates(backend string) []string {
	preferred := NormalizeBackend(backend)
	switch preferred {
	case BackendPlain:
		return []string{BackendPlain}
	case BackendAuto:
		return append([]string(nil), interactiveBackends...)
	}
	out := []string{preferred}
	for _, candidate := range interactiveBackends {
		if candidate != preferred {
			out = append(out, candidate)
		}
	}
	return out
}
