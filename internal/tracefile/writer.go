package tracefile

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"
)

// Writer appends events to a trace stream. The probe runtime hooks
// every thread of the target, so WriteRecord is safe for concurrent
// use; each record lands whole in the single output stream.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter writes the file header to w and returns a Writer appending
// records after it.
func NewWriter(w io.Writer) (*Writer, error) {
	hdr := header{Magic: Magic, Version: Version}
	if err := binary.Write(w, binary.LittleEndian, &hdr); err != nil {
		return nil, fmt.Errorf("write trace header: %w", err)
	}
	return &Writer{w: w}, nil
}

// WriteRecord appends a single event.
func (w *Writer) WriteRecord(ev Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := binary.Write(w.w, binary.LittleEndian, &ev); err != nil {
		return fmt.Errorf("write trace record: %w", err)
	}
	return nil
}
