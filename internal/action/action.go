package action

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

var ErrUnknownAction = errors.New("unknown action")

const customPrefix = "custom:"

// Kind identifies a routine action without capturing any behavior, so
// routines can be listed and tested without executing side effects.
type Kind struct {
	name string
}

var ToggleFlashlight = Kind{name: "toggle_flashlight"}

func Custom(id string) Kind {
	return Kind{name: customPrefix + strings.TrimSpace(id)}
}

func (k Kind) String() string { return k.name }

func (k Kind) IsZero() bool { return k.name == "" }

func (k Kind) IsCustom() bool { return strings.HasPrefix(k.name, customPrefix) }

type Behavior func(ctx context.Context, out io.Writer) error

type Entry struct {
	Kind     Kind
	Label    string
	Behavior Behavior
}

// Registry maps action kinds to behaviors. Entries keep registration order,
// which is the order shown to users when they pick an action.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry
	index   map[Kind]int
}

func NewRegistry() *Registry {
	return &Registry{index: map[Kind]int{}}
}

func (r *Registry) Register(kind Kind, label string, behavior Behavior) error {
	if kind.IsZero() {
		return fmt.Errorf("action kind cannot be empty")
	}
	if behavior == nil {
		return fmt.Errorf("action %s has no behavior", kind)
	}
	label = strings.TrimSpace(label)
	if label == "" {
		label = kind.String()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	entry := Entry{Kind: kind, Label: label, Behavior: behavior}
	if idx, ok := r.index[kind]; ok {
		r.entries[idx] = entry
		return nil
	}
	r.index[kind] = len(r.entries)
	r.entries = append(r.entries, entry)
	return nil
}

func (r *Registry) Lookup(kind Kind) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.index[kind]
	if !ok {
		return Entry{}, false
	}
	return r.entries[idx], true
}

func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Entry(nil), r.entries...)
}

func (r *Registry) Labels() []string {
	entries := r.Entries()
	labels := make([]string, 0, len(entries))
	for _, entry := range entries {
		labels = append(labels, entry.Label)
	}
	return labels
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *Registry) Run(ctx context.Context, kind Kind, out io.Writer) error {
	entry, ok := r.Lookup(kind)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, kind)
	}
	if out == nil {
		out = io.Discard
	}
	return entry.Behavior(ctx, out)
}

// Runner binds a registry to an output stream for routine execution.
type Runner struct {
	Registry *Registry
	Out      io.Writer
}

func (r Runner) Run(ctx context.Context, kind Kind) error {
	if r.Registry == nil {
		return fmt.Errorf("%w: %s", ErrUnknownAction, kind)
	}
	return r.Registry.Run(ctx, kind, r.Out)
}

// Labels holds the user-visible text of the default catalog.
type Labels struct {
	Flashlight   string
	FlashlightOn string
}

func DefaultRegistry(labels Labels) *Registry {
	reg := NewRegistry()
	on := labels.FlashlightOn
	_ = reg.Register(ToggleFlashlight, labels.Flashlight, func(_ context.Context, out io.Writer) error {
		_, err := fmt.Fprintln(out, on)
		return err
	})
	return reg
}
