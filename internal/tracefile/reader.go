package tracefile

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// Reader streams events out of a trace file. It validates the header on
// Open and then yields records in file order until io.EOF.
type Reader struct {
	path string
	f    *os.File
	br   *bufio.Reader
}

// Open opens a trace file and validates its header. A missing file
// yields an error wrapping ErrNotFound so callers can suggest running
// record first. A magic mismatch yields ErrBadMagic and an unknown
// version yields *UnsupportedVersionError.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open trace file: %w", err)
	}

	br := bufio.NewReader(f)
	var hdr header
	if err := binary.Read(br, binary.LittleEndian, &hdr); err != nil {
		f.Close()
		return nil, fmt.Errorf("read trace header: %w", err)
	}
	if hdr.Magic != Magic {
		f.Close()
		return nil, fmt.Errorf("%w in %s", ErrBadMagic, path)
	}
	if hdr.Version != Version {
		f.Close()
		return nil, &UnsupportedVersionError{Got: hdr.Version}
	}
	return &Reader{path: path, f: f, br: br}, nil
}

// Name returns the path the reader was opened with.
func (r *Reader) Name() string { return r.path }

// ReadRecord returns the next event in the stream. It returns io.EOF at
// a clean end of stream, including when the file ends mid-record: the
// producer is killed without warning often enough that a truncated tail
// is normal, not corrupt.
func (r *Reader) ReadRecord() (Event, error) {
	var ev Event
	if err := binary.Read(r.br, binary.LittleEndian, &ev); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return Event{}, io.EOF
		}
		if errors.Is(err, io.EOF) {
			return Event{}, io.EOF
		}
		return Event{}, fmt.Errorf("read trace record: %w", err)
	}
	return ev, nil
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	return r.f.Close()
}
