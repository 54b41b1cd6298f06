package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ashwch/assist/internal/appdirs"
	"github.com/google/uuid"
)

const eventsFileName = "events.jsonl"
const maxInputLength = 4096

const (
	KindCommand    = "command"
	KindTransition = "transition"
	KindRoutine    = "routine"
)

// Event is one line of the journal. Routines themselves are never restored
// from it; it only records what happened during a session.
type Event struct {
	Kind      string `json:"kind"`
	Input     string `json:"input,omitempty"`
	Command   string `json:"command,omitempty"`
	RoutineID *int   `json:"routine_id,omitempty"`
	Routine   string `json:"routine,omitempty"`
	RunID     string `json:"run_id,omitempty"`
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	Note      string `json:"note,omitempty"`
	Error     string `json:"error,omitempty"`
	SessionID string `json:"session_id"`
	Timestamp string `json:"timestamp"`
}

func IntPtr(v int) *int {
	n := v
	return &n
}

type Journal struct {
	mu        sync.Mutex
	path      string
	sessionID string
	now       func() time.Time
}

// Open returns a journal in the state directory.
func Open() (*Journal, error) {
	if _, err := appdirs.EnsureStateDir(); err != nil {
		return nil, err
	}
	path, err := appdirs.StateFilePath(eventsFileName)
	if err != nil {
		return nil, err
	}
	return New(path), nil
}

func New(path string) *Journal {
	return &Journal{
		path:      path,
		sessionID: uuid.NewString(),
		now:       time.Now,
	}
}

func (j *Journal) Path() string { return j.path }

func (j *Journal) SessionID() string { return j.sessionID }

func (j *Journal) Record(ev Event) error {
	if j == nil {
		return nil
	}
	ev.Kind = strings.TrimSpace(ev.Kind)
	if ev.Kind == "" {
		return fmt.Errorf("event kind cannot be empty")
	}
	if ev.Timestamp == "" {
		ev.Timestamp = j.now().UTC().Format(time.RFC3339Nano)
	}
	if ev.SessionID == "" {
		ev.SessionID = j.sessionID
	}
	ev.Input = strings.TrimSpace(Redact(ev.Input))
	if len(ev.Input) > maxInputLength {
		ev.Input = ev.Input[:maxInputLength]
	}
	ev.Routine = Redact(ev.Routine)
	ev.Error = Redact(ev.Error)

	encoded, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("could not serialize event: %w", err)
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(j.path), 0o700); err != nil {
		return fmt.Errorf("could not create journal dir: %w", err)
	}
	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("could not open journal file: %w", err)
	}
	defer f.Close()
	if err := os.Chmod(j.path, 0o600); err != nil {
		return fmt.Errorf("could not secure journal file permissions: %w", err)
	}
	if _, err := f.Write(append(encoded, '\n')); err != nil {
		return fmt.Errorf("could not write event: %w", err)
	}
	return nil
}

// Recent returns up to limit of the newest events, oldest first. Malformed
// lines are skipped. sessionID filters when non-empty.
func (j *Journal) Recent(limit int, sessionID string) ([]Event, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.Open(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not read journal file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var events []Event
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		var ev Event
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			continue
		}
		if sessionID != "" && ev.SessionID != sessionID {
			continue
		}
		events = append(events, ev)
		if limit > 0 && len(events) > limit {
			events = events[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not scan journal file: %w", err)
	}
	return events, nil
}
