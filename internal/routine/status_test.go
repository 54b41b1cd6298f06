package routine

import (
	"errors"
	"testing"
)

func TestStatusNames(t *testing.T) {
	cases := map[Status]string{
		Created:  "created",
		Waiting:  "waiting",
		Working:  "working",
		Paused:   "paused",
		Stopped:  "stopped",
		Finished: "finished",
	}
	for status, want := range cases {
		if got := status.String(); got != want {
			t.Fatalf("status %d: got %q want %q", int(status), got, want)
		}
	}
}

func TestParseStatusAcceptsOnlySettableNames(t *testing.T) {
	for _, name := range []string{"waiting", "working", "paused", "stopped", "finished", " Finished "} {
		if _, err := ParseStatus(name); err != nil {
			t.Fatalf("expected %q to parse: %v", name, err)
		}
	}
	for _, name := range []string{"created", "running", "", "done"} {
		_, err := ParseStatus(name)
		if !errors.Is(err, ErrInvalidStatus) {
			t.Fatalf("expected ErrInvalidStatus for %q, got %v", name, err)
		}
	}
}

func TestCanTransitionTable(t *testing.T) {
	all := []Status{Created, Waiting, Working, Paused, Stopped, Finished}
	allowed := map[[2]Status]bool{
		{Created, Waiting}:  true,
		{Waiting, Working}:  true,
		{Waiting, Paused}:   true,
		{Waiting, Stopped}:  true,
		{Working, Finished}: true,
		{Working, Paused}:   true,
		{Working, Stopped}:  true,
		{Paused, Waiting}:   true,
		{Paused, Stopped}:   true,
	}
	for _, from := range all {
		for _, to := range all {
			want := allowed[[2]Status{from, to}]
			if got := CanTransition(from, to); got != want {
				t.Fatalf("CanTransition(%s, %s) = %v want %v", from, to, got, want)
			}
		}
	}
}

func TestTerminalAndActive(t *testing.T) {
	if !Finished.Terminal() || !Stopped.Terminal() || Working.Terminal() {
		t.Fatalf("unexpected terminal classification")
	}
	if !Waiting.Active() || !Working.Active() || Created.Active() || Finished.Active() {
		t.Fatalf("unexpected active classification")
	}
}

func TestSetStatusRejectsIllegalTransition(t *testing.T) {
	r := flashlightRoutine(t, 0)
	if err := r.setStatus(Finished); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition, got %v", err)
	}
	if r.Status() != Created {
		t.Fatalf("expected status to stay created, got %s", r.Status())
	}
}
