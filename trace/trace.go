// Package trace records the events of a session as zstd-compressed JSON lines
// and reads them back.
package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/plus3/blockfall/sim"
)

// Writer appends one JSON line per event to a zstd stream.
// It is safe for concurrent use.
type Writer struct {
	mu     sync.Mutex
	closer io.Closer
	enc    *zstd.Encoder
	w      *bufio.Writer
	count  int64
}

// NewWriter compresses into w. Closing the Writer does not close w.
func NewWriter(w io.Writer) (*Writer, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, err
	}
	return &Writer{enc: enc, w: bufio.NewWriterSize(enc, 64*1024)}, nil
}

// Create opens path for writing, creating parent directories, and returns a
// Writer that closes the file on Close.
func Create(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w.closer = f
	return w, nil
}

// Write appends a batch of events, typically one drained frame, and flushes
// the buffered lines into the encoder.
func (w *Writer) Write(events []sim.Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.enc == nil {
		return fmt.Errorf("trace: write after close")
	}
	for _, e := range events {
		b, err := json.Marshal(e)
		if err != nil {
			return err
		}
		if _, err := w.w.Write(b); err != nil {
			return err
		}
		if err := w.w.WriteByte('\n'); err != nil {
			return err
		}
		w.count++
	}
	return w.w.Flush()
}

// Count returns the number of events written so far.
func (w *Writer) Count() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close flushes and finishes the zstd frame.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.enc == nil {
		return nil
	}
	err := w.w.Flush()
	if cerr := w.enc.Close(); err == nil {
		err = cerr
	}
	w.enc = nil
	w.w = nil
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
		w.closer = nil
	}
	return err
}

// Read decodes a trace stream. Iteration stops at the first error, which is
// yielded with a zero event.
func Read(r io.Reader) iter.Seq2[sim.Event, error] {
	return func(yield func(sim.Event, error) bool) {
		dec, err := zstd.NewReader(r)
		if err != nil {
			yield(sim.Event{}, err)
			return
		}
		defer dec.Close()

		sc := bufio.NewScanner(dec)
		sc.Buffer(make([]byte, 64*1024), 1024*1024)
		line := 0
		for sc.Scan() {
			line++
			var e sim.Event
			if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
				yield(sim.Event{}, fmt.Errorf("trace: line %d: %w", line, err))
				return
			}
			if !yield(e, nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(sim.Event{}, err)
		}
	}
}

// ReadFile decodes every event in the trace at path.
func ReadFile(path string) ([]sim.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []sim.Event
	for e, err := range Read(f) {
		if err != nil {
			return out, fmt.Errorf("%s: %w", path, err)
		}
		out = append(out, e)
	}
	return out, nil
}
