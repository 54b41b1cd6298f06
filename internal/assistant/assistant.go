package assistant

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/ashwch/assist/internal/action"
	"github.com/ashwch/assist/internal/command"
	"github.com/ashwch/assist/internal/condition"
	"github.com/ashwch/assist/internal/console"
	"github.com/ashwch/assist/internal/i18n"
	"github.com/ashwch/assist/internal/journal"
	"github.com/ashwch/assist/internal/routine"
	"go.uber.org/zap"
)

const DefaultPrompt = ">>>"

// Prompter reads one line of user input after printing prompt.
type Prompter interface {
	Input(prompt ...string) (string, error)
}

// Picker lets the user choose one label. used=false means the caller must
// fall back to the plain numbered prompt; index -1 means cancelled.
type Picker interface {
	Pick(title string, labels []string) (index int, used bool, err error)
}

type Confirmer interface {
	Confirm(title string, detail string) (approved bool, used bool, err error)
}

type Journal interface {
	Record(ev journal.Event) error
}

type Options struct {
	Prompter      Prompter
	Picker        Picker
	Confirmer     Confirmer
	Out           io.Writer
	Prompt        string
	Catalog       i18n.Catalog
	Actions       *action.Registry
	Logger        *zap.Logger
	Journal       Journal
	ConfirmRemove bool
}

type Assistant struct {
	prompter      Prompter
	picker        Picker
	confirmer     Confirmer
	out           *console.SyncWriter
	prompt        string
	messages      i18n.Messages
	actions       *action.Registry
	routines      *routine.Registry
	commands      command.Table
	logger        *zap.Logger
	journal       Journal
	confirmRemove bool

	working  atomic.Bool
	inflight sync.WaitGroup
}

func New(opts Options) (*Assistant, error) {
	if opts.Prompter == nil {
		return nil, errors.New("assistant needs a prompter")
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	catalog := opts.Catalog
	if catalog.Locale == "" {
		catalog = i18n.LoadCatalog("ru")
	}
	actions := opts.Actions
	if actions == nil {
		actions = action.DefaultRegistry(action.Labels{
			Flashlight:   catalog.Messages.ActionFlashlight,
			FlashlightOn: catalog.Messages.FlashlightOn,
		})
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	prompt := opts.Prompt
	if prompt == "" {
		prompt = DefaultPrompt
	}

	a := &Assistant{
		prompter:      opts.Prompter,
		picker:        opts.Picker,
		confirmer:     opts.Confirmer,
		out:           console.NewSyncWriter(out),
		prompt:        prompt,
		messages:      catalog.Messages,
		actions:       actions,
		routines:      routine.NewRegistry(),
		logger:        logger,
		journal:       opts.Journal,
		confirmRemove: opts.ConfirmRemove,
	}
	a.commands = command.Builtin(command.Handlers{
		Stop: func() (any, error) {
			a.Stop()
			return nil, nil
		},
		CreateRoutine: func() (any, error) {
			return routineResult(a.CreateRoutine())
		},
		StartRoutine: func() (any, error) {
			return routineResult(a.StartRoutine())
		},
		ListRoutines: func() (any, error) {
			a.PrintRoutines()
			return nil, nil
		},
		RemoveRoutine: func() (any, error) {
			return routineResult(a.RemoveRoutine())
		},
	})
	a.working.Store(true)
	return a, nil
}

// routineResult keeps a nil *Routine from turning into a non-nil any.
func routineResult(r *routine.Routine, err error) (any, error) {
	if r == nil {
		return nil, err
	}
	return r, err
}

func (a *Assistant) CheckWorking() bool { return a.working.Load() }

func (a *Assistant) Stop() {
	if a.working.Swap(false) {
		a.logger.Info("assistant stopping")
	}
}

// ProcessCommand runs the first command whose conditions hold for text.
// matched is false when nothing matched; the input is then ignored.
func (a *Assistant) ProcessCommand(text string) (any, bool, error) {
	tokens := condition.Tokenize(text)
	if len(tokens) == 0 {
		return nil, false, nil
	}
	cmd, ok := a.commands.Match(tokens)
	if !ok {
		a.logger.Debug("no command matched", zap.Int("tokens", len(tokens)))
		a.record(journal.Event{Kind: journal.KindCommand, Input: text, Note: "unmatched"})
		return nil, false, nil
	}

	a.logger.Info("command dispatched", zap.String("command", string(cmd.Kind)))
	result, err := cmd.Execute()
	ev := journal.Event{Kind: journal.KindCommand, Input: text, Command: string(cmd.Kind)}
	if r, ok := result.(*routine.Routine); ok {
		ev.RoutineID = journal.IntPtr(r.ID())
		ev.Routine = r.Name()
		ev.RunID = r.RunID()
	}
	if err != nil {
		ev.Error = err.Error()
		a.logger.Warn("command failed", zap.String("command", string(cmd.Kind)), zap.Error(err))
	}
	a.record(ev)
	return result, true, err
}

// Routines returns the registered routines ordered by id.
func (a *Assistant) Routines() []*routine.Routine {
	return a.routines.Sort()
}

// Wait blocks until every launched routine has settled or ctx is done.
func (a *Assistant) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (a *Assistant) record(ev journal.Event) {
	if a.journal == nil {
		return
	}
	if err := a.journal.Record(ev); err != nil {
		a.logger.Warn("journal write failed", zap.Error(err))
	}
}

func (a *Assistant) println(args ...any) {
	_, _ = fmt.Fprintln(a.out, args...)
}

func (a *Assistant) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}
