package journal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecordCreatesPrivateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "events.jsonl")
	j := New(path)

	require.NoError(t, j.Record(Event{Kind: KindCommand, Input: "создай сценарий", Command: "create_routine"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestRecordRejectsEmptyKind(t *testing.T) {
	j := New(filepath.Join(t.TempDir(), "events.jsonl"))
	require.Error(t, j.Record(Event{Kind: "  "}))
}

func TestRecordFillsSessionAndTimestamp(t *testing.T) {
	j := New(filepath.Join(t.TempDir(), "events.jsonl"))
	require.NoError(t, j.Record(Event{Kind: KindTransition, RoutineID: IntPtr(0), From: "waiting", To: "working"}))

	events, err := j.Recent(10, "")
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, j.SessionID(), events[0].SessionID)
	require.NotEmpty(t, events[0].Timestamp)
	require.NotNil(t, events[0].RoutineID)
	require.Equal(t, 0, *events[0].RoutineID)
}

func TestRecordRedactsBeforePersisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	j := New(path)
	require.NoError(t, j.Record(Event{Kind: KindCommand, Input: "создай сценарий пароль 1234 api_key=abc123"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(raw)
	require.NotContains(t, text, "1234")
	require.NotContains(t, text, "abc123")
	require.Contains(t, text, "<redacted>")
}

func TestRecentKeepsNewestAndSkipsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	j := New(path)
	for _, input := range []string{"one", "two", "three"} {
		require.NoError(t, j.Record(Event{Kind: KindCommand, Input: input}))
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	_, err = f.WriteString("{not json\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	events, err := j.Recent(2, "")
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "two", events[0].Input)
	require.Equal(t, "three", events[1].Input)
}

func TestRecentFiltersBySession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	first := New(path)
	second := New(path)
	require.NoError(t, first.Record(Event{Kind: KindCommand, Input: "a"}))
	require.NoError(t, second.Record(Event{Kind: KindCommand, Input: "b"}))

	events, err := second.Recent(0, second.SessionID())
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "b", events[0].Input)
}

func TestRecentMissingFile(t *testing.T) {
	j := New(filepath.Join(t.TempDir(), "missing.jsonl"))
	events, err := j.Recent(5, "")
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestRecordTruncatesLongInput(t *testing.T) {
	j := New(filepath.Join(t.TempDir(), "events.jsonl"))
	require.NoError(t, j.Record(Event{Kind: KindCommand, Input: strings.Repeat("x", maxInputLength+100)}))
	events, err := j.Recent(1, "")
	require.NoError(t, err)
	require.Len(t, events[0].Input, maxInputLength)
}

func TestNilJournalRecordIsNoop(t *testing.T) {
	var j *Journal
	require.NoError(t, j.Record(Event{Kind: KindCommand}))
}
