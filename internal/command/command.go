package command

import "github.com/ashwch/assist/internal/condition"

// Kind names a built-in command.
type Kind string

const (
	KindStop          Kind = "stop"
	KindCreateRoutine Kind = "create_routine"
	KindStartRoutine  Kind = "start_routine"
	KindListRoutines  Kind = "list_routines"
	KindRemoveRoutine Kind = "remove_routine"
)

type Action func() (any, error)

// Command runs its action synchronously on the caller's goroutine.
type Command struct {
	Kind       Kind
	Conditions condition.Set
	Action     Action
}

func (c Command) Matches(tokens []string) bool {
	return c.Conditions.Matches(tokens)
}

func (c Command) Execute() (any, error) {
	if c.Action == nil {
		return nil, nil
	}
	return c.Action()
}

// Table is the fixed, ordered command list. The first match wins.
type Table []Command

func (t Table) Match(tokens []string) (Command, bool) {
	idx := condition.FirstMatch(t, tokens)
	if idx < 0 {
		return Command{}, false
	}
	return t[idx], true
}

func (t Table) Kinds() []Kind {
	out := make([]Kind, 0, len(t))
	for _, c := range t {
		out = append(out, c.Kind)
	}
	return out
}

type Handlers struct {
	Stop          Action
	CreateRoutine Action
	StartRoutine  Action
	ListRoutines  Action
	RemoveRoutine Action
}

// Builtin returns the five built-in commands in dispatch order. Stems are
// prefix matched, so inflected forms like "запусти" or "сценарии" hit.
func Builtin(h Handlers) Table {
	return Table{
		{
			Kind:       KindStop,
			Conditions: condition.Set{condition.AtLeast(1, condition.Words("EXIT", "ВЫХОД")...)},
			Action:     h.Stop,
		},
		{
			Kind:       KindCreateRoutine,
			Conditions: condition.Set{condition.AtLeast(2, condition.Words("СОЗД", "СЦЕНАР")...)},
			Action:     h.CreateRoutine,
		},
		{
			Kind:       KindStartRoutine,
			Conditions: condition.Set{condition.AtLeast(2, condition.Words("ЗАПУС", "СЦЕНАР")...)},
			Action:     h.StartRoutine,
		},
		{
			Kind:       KindListRoutines,
			Conditions: condition.Set{condition.AtLeast(2, condition.Words("СПИС", "СЦЕНАР")...)},
			Action:     h.ListRoutines,
		},
		{
			Kind:       KindRemoveRoutine,
			Conditions: condition.Set{condition.AtLeast(2, condition.Words("УДАЛ", "СЦЕНАР")...)},
			Action:     h.RemoveRoutine,
		},
	}
}
