package action

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
)

func TestDefaultRegistryFlashlight(t *testing.T) {
	reg := DefaultRegistry(Labels{Flashlight: "Включить фонарик", FlashlightOn: "Фонарик включен"})
	if reg.Len() != 1 {
		t.Fatalf("expected one default action, got %d", reg.Len())
	}
	entry, ok := reg.Lookup(ToggleFlashlight)
	if !ok {
		t.Fatalf("expected flashlight action to be registered")
	}
	if entry.Label != "Включить фонарик" {
		t.Fatalf("unexpected label %q", entry.Label)
	}

	var out bytes.Buffer
	if err := reg.Run(context.Background(), ToggleFlashlight, &out); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out.String() != "Фонарик включен\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunUnknownKind(t *testing.T) {
	reg := NewRegistry()
	err := reg.Run(context.Background(), Custom("missing"), nil)
	if !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}

func TestRegisterKeepsOrderAndReplaces(t *testing.T) {
	reg := NewRegistry()
	noop := func(context.Context, io.Writer) error { return nil }
	if err := reg.Register(Custom("a"), "A", noop); err != nil {
		t.Fatalf("register a: %v", err)
	}
	if err := reg.Register(Custom("b"), "B", noop); err != nil {
		t.Fatalf("register b: %v", err)
	}
	if err := reg.Register(Custom("a"), "A2", noop); err != nil {
		t.Fatalf("re-register a: %v", err)
	}
	labels := reg.Labels()
	if len(labels) != 2 || labels[0] != "A2" || labels[1] != "B" {
		t.Fatalf("unexpected labels %v", labels)
	}
}

func TestRegisterRejectsInvalid(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(Kind{}, "x", func(context.Context, io.Writer) error { return nil }); err == nil {
		t.Fatalf("expected empty kind to be rejected")
	}
	if err := reg.Register(Custom("x"), "x", nil); err == nil {
		t.Fatalf("expected nil behavior to be rejected")
	}
}

func TestCustomKind(t *testing.T) {
	k := Custom(" lamp ")
	if k.String() != "custom:lamp" || !k.IsCustom() {
		t.Fatalf("unexpected custom kind %q", k)
	}
	if ToggleFlashlight.IsCustom() {
		t.Fatalf("flashlight is not a custom kind")
	}
	if Custom("lamp") != k {
		t.Fatalf("expected kinds to compare by value")
	}
}

func TestRunnerWithoutRegistry(t *testing.T) {
	err := Runner{}.Run(context.Background(), ToggleFlashlight)
	if !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}
