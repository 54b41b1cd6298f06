package console

import (
	"io"
	"sync"
)

// SyncWriter serializes writes to w. Prompts from the dialog and output
// from background routines share one SyncWriter so their writes never
// interleave on the same stream.
type SyncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewSyncWriter wraps w. A writer that is already a *SyncWriter is returned
// unchanged so every holder locks the same mutex.
func NewSyncWriter(w io.Writer) *SyncWriter {
	if sw, ok := w.(*SyncWriter); ok {
		return sw
	}
	if w == nil {
		w = io.Discard
	}
	return &SyncWriter{w: w}
}

func (s *SyncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
