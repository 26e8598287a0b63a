package journal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

// Writer appends LoggedEntry records to the journal file.
//
// Each record is encoded in memory and written with one write call on a file
// opened in append mode, then fsynced before Append returns. Concurrent
// Append calls are serialized so lines never interleave.
type Writer struct {
	mu   sync.Mutex
	f    *os.File
	path string
}

// OpenWriter opens (creating if needed) the journal at path. A trailing
// fragment without a newline, left behind by an interrupted write, is sealed
// so that it stays an invalid line instead of corrupting the next record.
func OpenWriter(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o640)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	if err := sealTail(f); err != nil {
		_ = f.Close()
		return nil, err
	}

	return &Writer{f: f, path: path}, nil
}

func sealTail(f *os.File) error {
	fi, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat journal: %w", err)
	}
	if fi.Size() == 0 {
		return nil
	}

	last := make([]byte, 1)
	if _, err := f.ReadAt(last, fi.Size()-1); err != nil && err != io.EOF {
		return fmt.Errorf("read journal tail: %w", err)
	}
	if last[0] == '\n' {
		return nil
	}

	if _, err := f.Write([]byte{'\n'}); err != nil {
		return fmt.Errorf("seal journal tail: %w", err)
	}
	return f.Sync()
}

// Path returns the journal location.
func (w *Writer) Path() string {
	return w.path
}

// Append writes e as one JSON line and syncs it to disk.
func (w *Writer) Append(ctx context.Context, e LoggedEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	line, err := encodeLine(e)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.f == nil {
		return os.ErrClosed
	}
	if _, err := w.f.Write(line); err != nil {
		return fmt.Errorf("append journal: %w", err)
	}
	if err := w.f.Sync(); err != nil {
		return fmt.Errorf("sync journal: %w", err)
	}
	return nil
}

// Close closes the underlying file. Further Append calls fail.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.f == nil {
		return nil
	}
	err := w.f.Close()
	w.f = nil
	return err
}

func encodeLine(e LoggedEntry) ([]byte, error) {
	if e.Images == nil {
		e.Images = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encode terminates the record with '\n'.
	if err := enc.Encode(e); err != nil {
		return nil, fmt.Errorf("encode entry: %w", err)
	}
	return buf.Bytes(), nil
}
