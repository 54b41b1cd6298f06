package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ashwch/assist/internal/journal"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("ASSIST_HOME", t.TempDir())
	for _, key := range []string{"ASSIST_LOCALE", "ASSIST_UI", "ASSIST_LOG_LEVEL", "ASSIST_LOG_FILE"} {
		t.Setenv(key, "")
	}
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNewRootCmdFlags(t *testing.T) {
	cmd := NewRootCmd()
	if cmd.Use != "assist" {
		t.Fatalf("Use = %q", cmd.Use)
	}
	for _, name := range []string{"ui", "locale", "verbose"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Fatalf("--%s flag not found", name)
		}
	}
	if cmd.Flags().Lookup("no-banner") == nil {
		t.Fatalf("--no-banner flag not found")
	}
	want := map[string]bool{"config": false, "journal": false, "version": false}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("subcommand %q not registered", name)
		}
	}
}

func TestSessionCreatesAndListsRoutine(t *testing.T) {
	isolate(t)
	stdin := "создай сценарий\nФонарик\n1\nсписок сценариев\nexit\nэто уже не прочитается\n"

	out, err := run(t, stdin, "--ui", "plain")
	if err != nil {
		t.Fatalf("session failed: %v", err)
	}
	for _, want := range []string{
		"Список команд:",
		"Создать сценарий",
		"1) Включить фонарик",
		"Сценарий создан",
		"Сценарий#0 name=Фонарик status=created",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	out, err = run(t, "", "journal", "-n", "10")
	if err != nil {
		t.Fatalf("journal failed: %v", err)
	}
	if !strings.Contains(out, "create_routine") || !strings.Contains(out, "list_routines") || !strings.Contains(out, "stop") {
		t.Fatalf("expected dispatched commands in journal output:\n%s", out)
	}
}

func TestSessionStartsRoutineAndWaitsForIt(t *testing.T) {
	isolate(t)
	stdin := "создай сценарий\nФонарик\n1\nзапусти сценарий\nвключи фонарик\nexit\n"

	out, err := run(t, stdin, "--ui", "plain", "--no-banner")
	if err != nil {
		t.Fatalf("session failed: %v", err)
	}
	for _, want := range []string{
		"Какой сценарий запустить?",
		"Пользовательский сценарий Фонарик запущен",
		"Фонарик включен",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "Фонарик включен"); n != 1 {
		t.Fatalf("flashlight output printed %d times:\n%s", n, out)
	}

	out, err = run(t, "", "journal", "-n", "50")
	if err != nil {
		t.Fatalf("journal failed: %v", err)
	}
	for _, want := range []string{"created->waiting", "waiting->working", "working->finished"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in journal:\n%s", want, out)
		}
	}
}

func TestSessionEndsOnEOF(t *testing.T) {
	isolate(t)
	out, err := run(t, "привет\n", "--no-banner")
	if err != nil {
		t.Fatalf("session failed: %v", err)
	}
	if strings.Contains(out, "Список команд:") {
		t.Fatalf("banner should be suppressed:\n%s", out)
	}
}

func TestSessionEnglishLocaleFlag(t *testing.T) {
	isolate(t)
	out, err := run(t, "список сценариев\nexit\n", "--locale", "en", "--no-banner")
	if err != nil {
		t.Fatalf("session failed: %v", err)
	}
	if !strings.Contains(out, "No routines yet") {
		t.Fatalf("expected english empty notice:\n%s", out)
	}
}

func TestInvalidUIFlag(t *testing.T) {
	isolate(t)
	if _, err := run(t, "", "--ui", "fancy"); err == nil {
		t.Fatalf("expected error for unknown ui backend")
	}
}

func TestConfigSetGetAndPath(t *testing.T) {
	isolate(t)
	if _, err := run(t, "", "config", "set", "ui.prompt", "$"); err != nil {
		t.Fatalf("config set failed: %v", err)
	}
	out, err := run(t, "", "config", "get", "ui.prompt")
	if err != nil {
		t.Fatalf("config get failed: %v", err)
	}
	if strings.TrimSpace(out) != "$" {
		t.Fatalf("expected saved prompt, got %q", out)
	}

	out, err = run(t, "", "config", "path")
	if err != nil {
		t.Fatalf("config path failed: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "config.toml") {
		t.Fatalf("unexpected config path %q", out)
	}
}

func TestConfigSetDoesNotPersistFlagOverrides(t *testing.T) {
	isolate(t)
	if _, err := run(t, "", "config", "set", "ui.banner", "false", "--locale", "en"); err != nil {
		t.Fatalf("config set failed: %v", err)
	}
	out, err := run(t, "", "config", "get", "locale")
	if err != nil {
		t.Fatalf("config get failed: %v", err)
	}
	if strings.TrimSpace(out) != "ru" {
		t.Fatalf("flag override leaked into config file: %q", out)
	}
}

func TestConfigSetRejectsUnknownKey(t *testing.T) {
	isolate(t)
	if _, err := run(t, "", "config", "set", "nope", "1"); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestJournalEmpty(t *testing.T) {
	isolate(t)
	out, err := run(t, "", "journal")
	if err != nil {
		t.Fatalf("journal failed: %v", err)
	}
	if !strings.Contains(out, "no events recorded") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestPrintEvent(t *testing.T) {
	var buf bytes.Buffer
	printEvent(&buf, journal.Event{
		Kind:      journal.KindTransition,
		RoutineID: journal.IntPtr(3),
		Routine:   "Фонарик",
		From:      "working",
		To:        "stopped",
		Error:     "torch missing",
		Timestamp: "2026-01-02T03:04:05Z",
	})
	want := "2026-01-02T03:04:05Z  transition  #3 Фонарик  working->stopped  error: torch missing\n"
	if buf.String() != want {
		t.Fatalf("printEvent = %q want %q", buf.String(), want)
	}
}

func TestVersionCmdOutput(t *testing.T) {
	isolate(t)
	original := versionInfo
	t.Cleanup(func() { versionInfo = original })
	SetVersion("1.2.3", "abc123", "2026-01-31")

	out, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	for _, want := range []string{"assist 1.2.3", "commit: abc123", "built:  2026-01-31"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}
