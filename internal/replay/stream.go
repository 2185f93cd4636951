package replay

import (
	"io"

	"github.com/Greathoney/uftrace/internal/tracefile"
)

// Stream yields trace events in order with one record of lookahead.
// Peek reads ahead without consuming; the next call to Next returns the
// peeked event first. The graph renderer needs exactly this much
// lookahead to collapse leaf calls.
type Stream interface {
	Next() (tracefile.Event, error)
	Peek() (tracefile.Event, error)
}

type fileStream struct {
	r      *tracefile.Reader
	peeked *tracefile.Event
}

// NewStream wraps an open trace file reader in a Stream.
func NewStream(r *tracefile.Reader) Stream {
	return &fileStream{r: r}
}

func (s *fileStream) Next() (tracefile.Event, error) {
	if s.peeked != nil {
		ev := *s.peeked
		s.peeked = nil
		return ev, nil
	}
	return s.r.ReadRecord()
}

func (s *fileStream) Peek() (tracefile.Event, error) {
	if s.peeked == nil {
		ev, err := s.r.ReadRecord()
		if err != nil {
			return tracefile.Event{}, err
		}
		s.peeked = &ev
	}
	return *s.peeked, nil
}

// SliceStream replays an in-memory event sequence. Tests and trace
// generators use it in place of a file.
type SliceStream struct {
	events []tracefile.Event
	pos    int
}

// NewSliceStream returns a Stream over events.
func NewSliceStream(events []tracefile.Event) *SliceStream {
	return &SliceStream{events: events}
}

func (s *SliceStream) Next() (tracefile.Event, error) {
	ev, err := s.Peek()
	if err != nil {
		return tracefile.Event{}, err
	}
	s.pos++
	return ev, nil
}

func (s *SliceStream) Peek() (tracefile.Event, error) {
	if s.pos >= len(s.events) {
		return tracefile.Event{}, io.EOF
	}
	return s.events[s.pos], nil
}
