package routine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ashwch/assist/internal/action"
	"github.com/ashwch/assist/internal/condition"
	"github.com/google/uuid"
)

// StartupDelay is the fixed pause between accepting a routine and running
// its action.
const StartupDelay = 2 * time.Second

var startupDelay = StartupDelay

var (
	ErrEmptyName      = errors.New("routine name cannot be empty")
	ErrNoConditions   = errors.New("routine needs at least one condition")
	ErrAlreadyStarted = errors.New("routine already started")
	ErrActionPanicked = errors.New("routine action panicked")
)

type Runner interface {
	Run(ctx context.Context, kind action.Kind) error
}

type Observer interface {
	RoutineTransition(r *Routine, from, to Status)
}

type ObserverFunc func(r *Routine, from, to Status)

func (f ObserverFunc) RoutineTransition(r *Routine, from, to Status) { f(r, from, to) }

type Execution struct {
	Runner   Runner
	Observer Observer
	// Announce runs on the caller's goroutine before the action is launched.
	Announce func(r *Routine)
}

type Routine struct {
	id         int
	name       string
	conditions condition.Set
	action     action.Kind

	mu       sync.RWMutex
	status   Status
	err      error
	runID    string
	started  bool
	observer Observer
	done     chan struct{}
}

func New(id int, name string, conditions condition.Set, kind action.Kind) (*Routine, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(conditions) == 0 {
		return nil, ErrNoConditions
	}
	return &Routine{
		id:         id,
		name:       name,
		conditions: append(condition.Set(nil), conditions...),
		action:     kind,
		status:     Created,
		done:       make(chan struct{}),
	}, nil
}

func (r *Routine) ID() int { return r.id }

func (r *Routine) Name() string { return r.name }

func (r *Routine) Action() action.Kind { return r.action }

func (r *Routine) Conditions() condition.Set {
	return append(condition.Set(nil), r.conditions...)
}

func (r *Routine) Matches(tokens []string) bool {
	return r.conditions.Matches(tokens)
}

func (r *Routine) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// Err returns the failure that moved the routine to Stopped, if any.
func (r *Routine) Err() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.err
}

func (r *Routine) RunID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.runID
}

// Done is closed once the execution goroutine has settled.
func (r *Routine) Done() <-chan struct{} { return r.done }

func (r *Routine) String() string {
	return fmt.Sprintf("Сценарий#%d name=%s status=%s", r.id, r.name, r.Status())
}

// Execute accepts the routine (status waiting) and launches its action on a
// new goroutine. It returns without waiting for the action. A routine runs
// at most once.
func (r *Routine) Execute(exec Execution) error {
	r.mu.Lock()
	if r.started {
		status := r.status
		r.mu.Unlock()
		return fmt.Errorf("%w: routine %d is %s", ErrAlreadyStarted, r.id, status)
	}
	r.started = true
	r.runID = uuid.NewString()
	r.observer = exec.Observer
	r.mu.Unlock()

	if exec.Announce != nil {
		exec.Announce(r)
	}
	if err := r.setStatus(Waiting); err != nil {
		close(r.done)
		return err
	}

	go r.run(exec.Runner)
	return nil
}

func (r *Routine) run(runner Runner) {
	defer close(r.done)
	defer func() {
		if p := recover(); p != nil {
			r.fail(fmt.Errorf("%w: %v", ErrActionPanicked, p))
		}
	}()

	time.Sleep(startupDelay)
	if err := r.setStatus(Working); err != nil {
		r.fail(err)
		return
	}
	if runner == nil {
		r.fail(fmt.Errorf("%w: %s", action.ErrUnknownAction, r.action))
		return
	}
	if err := runner.Run(context.Background(), r.action); err != nil {
		r.fail(err)
		return
	}
	if err := r.setStatus(Finished); err != nil {
		r.fail(err)
	}
}

func (r *Routine) fail(err error) {
	r.mu.Lock()
	if r.err == nil {
		r.err = err
	}
	r.mu.Unlock()
	_ = r.setStatus(Stopped)
}

// setStatus is the only mutation path for status and is reserved for the
// routine's own execution.
func (r *Routine) setStatus(next Status) error {
	r.mu.Lock()
	prev := r.status
	if !CanTransition(prev, next) {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, prev, next)
	}
	r.status = next
	observer := r.observer
	r.mu.Unlock()

	if observer != nil {
		observer.RoutineTransition(r, prev, next)
	}
	return nil
}
