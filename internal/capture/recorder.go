// Package capture collects a recording delivered as a finite sequence of
// chunks and turns it into a single attachable payload.
package capture

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
)

var (
	ErrStopped  = errors.New("recorder stopped")
	ErrTooLarge = errors.New("recording exceeds size limit")
)

// Recorder accumulates chunks until Stop. A stopped recorder cannot be
// restarted; start a new one for the next recording.
type Recorder struct {
	mu      sync.Mutex
	chunks  [][]byte
	size    int
	limit   int
	stopped bool
}

// NewRecorder creates a recorder that rejects recordings larger than limit
// bytes. A non-positive limit disables the check.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

// Write appends one chunk. It implements io.Writer so a recording can be
// streamed in with io.Copy.
func (r *Recorder) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return 0, ErrStopped
	}
	if r.limit > 0 && r.size+len(p) > r.limit {
		return 0, fmt.Errorf("%w: %d bytes", ErrTooLarge, r.limit)
	}
	if len(p) == 0 {
		return 0, nil
	}

	chunk := make([]byte, len(p))
	copy(chunk, p)
	r.chunks = append(r.chunks, chunk)
	r.size += len(p)
	return len(p), nil
}

// Stop ends the recording and returns all chunks concatenated in arrival order.
func (r *Recorder) Stop() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return nil, ErrStopped
	}
	r.stopped = true

	out := bytes.Join(r.chunks, nil)
	r.chunks = nil
	return out, nil
}

// Chunks reports how many chunks were received so far.
func (r *Recorder) Chunks() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.chunks)
}

func (r *Recorder) Size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}
