package assistant

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ashwch/assist/internal/action"
	"github.com/ashwch/assist/internal/condition"
	"github.com/ashwch/assist/internal/console"
	"github.com/ashwch/assist/internal/journal"
	"github.com/ashwch/assist/internal/routine"
	"go.uber.org/zap"
)

var ErrNoActions = errors.New("no actions registered")

// defaultConditions are assigned to every new routine until conditions can
// be entered from the dialog.
func defaultConditions() condition.Set {
	return condition.Set{condition.AtLeast(2, condition.Words("ВКЛЮЧ", "ФОНАР")...)}
}

// CreateRoutine walks the user through naming a routine and choosing its
// action. A blank name aborts with nil, nil; the id is still consumed.
func (a *Assistant) CreateRoutine() (*routine.Routine, error) {
	m := a.messages
	a.println(m.CreateIntro)
	id := a.routines.NextID()

	a.println(m.AskName)
	name, err := a.prompter.Input(a.prompt)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		a.logger.Debug("routine creation aborted", zap.Int("routine_id", id))
		return nil, nil
	}

	a.println(m.ConditionsAuto)
	conditions := defaultConditions()

	kind, ok, err := a.chooseAction()
	if err != nil || !ok {
		return nil, err
	}

	r, err := routine.New(id, name, conditions, kind)
	if err != nil {
		return nil, err
	}
	a.routines.Add(r)
	a.println(m.RoutineCreated)
	a.logger.Info("routine created",
		zap.Int("routine_id", r.ID()),
		zap.String("routine", r.Name()),
		zap.String("action", kind.String()),
		zap.Stringer("conditions", conditions),
	)
	return r, nil
}

func (a *Assistant) chooseAction() (action.Kind, bool, error) {
	entries := a.actions.Entries()
	if len(entries) == 0 {
		return action.Kind{}, false, ErrNoActions
	}
	labels := make([]string, 0, len(entries))
	for _, entry := range entries {
		labels = append(labels, entry.Label)
	}

	if a.picker != nil {
		index, used, err := a.picker.Pick(a.messages.ChooseAction, labels)
		if err != nil {
			a.logger.Warn("action picker failed, using plain prompt", zap.Error(err))
		} else if used {
			if index < 0 || index >= len(entries) {
				return action.Kind{}, false, nil
			}
			return entries[index].Kind, true, nil
		}
	}

	a.println(a.messages.ChooseAction)
	for idx, label := range labels {
		a.printf("%d) %s\n", idx+1, label)
	}
	for {
		answer, err := a.prompter.Input(a.prompt)
		if err != nil {
			return action.Kind{}, false, err
		}
		choice := console.TryInt(answer, 0)
		if choice >= 1 && choice <= len(entries) {
			return entries[choice-1].Kind, true, nil
		}
	}
}

// StartRoutine launches the first routine whose conditions match the
// user's answer. The action runs in the background after a fixed delay.
func (a *Assistant) StartRoutine() (*routine.Routine, error) {
	answer, err := a.prompter.Input(a.messages.AskStart + "\n")
	if err != nil {
		return nil, err
	}
	r, ok := a.routines.FirstMatch(condition.Tokenize(answer))
	if !ok {
		a.logger.Debug("no routine matched")
		return nil, nil
	}

	a.inflight.Add(1)
	err = r.Execute(routine.Execution{
		Runner:   action.Runner{Registry: a.actions, Out: a.out},
		Observer: routine.ObserverFunc(a.routineTransition),
		Announce: func(r *routine.Routine) {
			a.printf(a.messages.RoutineStarted+"\n", r.Name())
		},
	})
	if err != nil {
		a.inflight.Done()
		if errors.Is(err, routine.ErrAlreadyStarted) {
			a.printf(a.messages.AlreadyStarted+"\n", r.Name())
		}
		return r, err
	}
	go func() {
		defer a.inflight.Done()
		<-r.Done()
	}()
	a.logger.Info("routine started",
		zap.Int("routine_id", r.ID()),
		zap.String("routine", r.Name()),
		zap.String("run_id", r.RunID()),
	)
	return r, nil
}

func (a *Assistant) routineTransition(r *routine.Routine, from, to routine.Status) {
	fields := []zap.Field{
		zap.Int("routine_id", r.ID()),
		zap.String("routine", r.Name()),
		zap.String("run_id", r.RunID()),
		zap.Stringer("from", from),
		zap.Stringer("to", to),
	}
	ev := journal.Event{
		Kind:      journal.KindTransition,
		RoutineID: journal.IntPtr(r.ID()),
		Routine:   r.Name(),
		RunID:     r.RunID(),
		From:      from.String(),
		To:        to.String(),
	}
	if to == routine.Stopped {
		if err := r.Err(); err != nil {
			ev.Error = err.Error()
			a.logger.Error("routine failed", append(fields, zap.Error(err))...)
			a.printf(a.messages.RoutineFailed+"\n", r.Name(), err)
		}
	} else {
		a.logger.Debug("routine transition", fields...)
	}
	a.record(ev)
}

// PrintRoutines lists every routine ordered by id.
func (a *Assistant) PrintRoutines() {
	routines := a.routines.Sort()
	if len(routines) == 0 {
		a.println(a.messages.NoRoutines)
		return
	}
	for _, r := range routines {
		a.println(r.String())
	}
}

// AskRoutine prints the routines and reads an id. With required set it
// keeps asking until the id exists or input fails; otherwise a single
// unknown id yields nil.
func (a *Assistant) AskRoutine(required bool) (*routine.Routine, error) {
	a.println(a.messages.ChooseRoutine)
	a.PrintRoutines()
	for {
		answer, err := a.prompter.Input()
		if err != nil {
			return nil, err
		}
		if r, ok := a.routines.Get(console.TryInt(answer, -1)); ok {
			return r, nil
		}
		if !required {
			return nil, nil
		}
	}
}

// RemoveRoutine deletes the routine the user picks by id. A running routine
// finishes in the background but is no longer listed.
func (a *Assistant) RemoveRoutine() (*routine.Routine, error) {
	if a.routines.Len() == 0 {
		a.println(a.messages.NoRoutines)
		return nil, nil
	}
	r, err := a.AskRoutine(true)
	if err != nil || r == nil {
		return nil, err
	}

	if a.confirmRemove {
		approved, err := a.confirmRemoval(r)
		if err != nil {
			return nil, err
		}
		if !approved {
			return nil, nil
		}
	}

	removed := a.routines.Remove(r.ID())
	if removed == nil {
		return nil, nil
	}
	a.println(a.messages.RoutineRemoved)
	a.logger.Info("routine removed",
		zap.Int("routine_id", removed.ID()),
		zap.String("routine", removed.Name()),
		zap.Stringer("status", removed.Status()),
	)
	return removed, nil
}

func (a *Assistant) confirmRemoval(r *routine.Routine) (bool, error) {
	if a.confirmer != nil {
		approved, used, err := a.confirmer.Confirm(a.messages.ConfirmRemove, r.String())
		if err != nil {
			a.logger.Warn("confirm dialog failed, using plain prompt", zap.Error(err))
		} else if used {
			return approved, nil
		}
	}
	answer, err := a.prompter.Input(fmt.Sprintf("%s %s [%s/%s] ", a.messages.ConfirmRemove, r.String(), a.messages.ConfirmYes, a.messages.ConfirmNo))
	if err != nil {
		return false, err
	}
	return isAffirmative(answer, a.messages.ConfirmYes), nil
}

func isAffirmative(answer string, yes string) bool {
	answer = strings.ToLower(strings.TrimSpace(answer))
	if answer == "" {
		return false
	}
	yes = strings.ToLower(strings.TrimSpace(yes))
	switch answer {
	case "y", "yes", "д", "да":
		return true
	}
	return yes != "" && (answer == yes || strings.HasPrefix(yes, answer))
}
