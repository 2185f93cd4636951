// Package tracefile reads and writes the binary trace data format
// produced by the mcount probe runtime. The format is a fixed 12-byte
// header followed by a flat stream of fixed-width records, all fields
// little-endian. Records carry no framing or count; the stream ends at
// end of file, and a byte-short trailing record is treated as a clean
// end of stream rather than corruption.
package tracefile

import (
	"errors"
	"fmt"
)

// Magic occupies the first eight bytes of every trace file.
var Magic = [8]byte{'F', 't', 'r', 'a', 'c', 'e', '!', 0}

// Version is the format version this package reads and writes.
const Version uint32 = 1

// DefaultPath is the trace file name used when no override is given.
const DefaultPath = "ftrace.data"

const (
	headerSize = 12
	recordSize = 40
)

// header is the on-disk file header.
type header struct {
	Magic   [8]byte
	Version uint32
}

// Event is one function entry or exit captured by the probe runtime.
// StartTime and EndTime are microseconds on the producer's monotonic
// clock; they order events within a trace but have no absolute epoch.
// EndTime == 0 marks a function entry. Exit events carry both times
// with EndTime >= StartTime.
type Event struct {
	TID        int32  // thread that executed the call
	Depth      uint32 // call depth, 0 at the outermost traced frame
	ParentAddr uint64 // call site (caller) address
	ChildAddr  uint64 // callee entry address
	StartTime  uint64
	EndTime    uint64
}

// Entry reports whether e records a function entry.
func (e Event) Entry() bool { return e.EndTime == 0 }

// Elapsed returns the duration of an exit event in microseconds.
func (e Event) Elapsed() uint64 { return e.EndTime - e.StartTime }

var (
	// ErrNotFound is returned by Open when the trace file does not exist.
	ErrNotFound = errors.New("trace file not found")
	// ErrBadMagic is returned by Open when the file does not begin with Magic.
	ErrBadMagic = errors.New("invalid magic string")
)

// UnsupportedVersionError is returned by Open when the header carries a
// version this package does not handle.
type UnsupportedVersionError struct {
	Got uint32
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("unsupported trace version %d (want %d)", e.Got, Version)
}
