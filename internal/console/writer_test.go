package console

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestNewSyncWriterReusesExisting(t *testing.T) {
	var buf bytes.Buffer
	first := NewSyncWriter(&buf)
	if second := NewSyncWriter(first); second != first {
		t.Fatalf("expected the same SyncWriter to be returned")
	}
}

func TestSyncWriterSharedWithReader(t *testing.T) {
	var buf bytes.Buffer
	out := NewSyncWriter(&buf)
	reader := NewReader(strings.NewReader(strings.Repeat("x\n", 50)), out)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			_, _ = out.Write([]byte("line\n"))
		}
	}()
	for i := 0; i < 50; i++ {
		if _, err := reader.Input(">>>"); err != nil {
			t.Fatalf("Input failed: %v", err)
		}
	}
	wg.Wait()

	out.mu.Lock()
	got := buf.String()
	out.mu.Unlock()
	if n := strings.Count(got, "line\n"); n != 50 {
		t.Fatalf("expected 50 background lines, got %d", n)
	}
	if n := strings.Count(got, ">>>"); n != 50 {
		t.Fatalf("expected 50 prompts, got %d", n)
	}
}
