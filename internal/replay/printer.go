package replay

import (
	"fmt"
	"io"

	"github.com/Greathoney/uftrace/internal/tracefile"
	"github.com/Greathoney/uftrace/internal/ui"
)

// Printer renders one event. The stream is the same one the session
// reads from; the graph printer peeks it to fold leaf calls.
type Printer interface {
	Print(w io.Writer, ev tracefile.Event, s Stream) error
}

// Flat renders one line per record with a running counter, showing the
// raw parent/child relationship of every event.
type Flat struct {
	res   *Resolver
	count int
}

// NewFlat returns a flat printer resolving names through res.
func NewFlat(res *Resolver) *Flat {
	return &Flat{res: res}
}

func (f *Flat) Print(w io.Writer, ev tracefile.Event, _ Stream) error {
	parent := f.res.Name(ev.ParentAddr)
	child := f.res.Name(ev.ChildAddr)
	n := f.count
	f.count++

	if ev.Entry() {
		_, err := fmt.Fprintf(w, "[%d] %d/%d: ip (%s -> %s), time (%d)\n",
			n, ev.TID, ev.Depth, parent, child, ev.StartTime)
		return err
	}
	_, err := fmt.Fprintf(w, "[%d] %d/%d: ip (%s <- %s), time (%d:%d)\n",
		n, ev.TID, ev.Depth, parent, child, ev.EndTime, ev.Elapsed())
	return err
}

// Graph renders the call tree, one indented line per call, folding a
// call whose very next record is its own return into a single line.
type Graph struct {
	res *Resolver
	pal ui.Palette
}

// NewGraph returns a graph printer resolving names through res.
func NewGraph(res *Resolver, colored bool) *Graph {
	return &Graph{res: res, pal: ui.NewPalette(colored)}
}

func (g *Graph) Print(w io.Writer, ev tracefile.Event, s Stream) error {
	name := g.res.Name(ev.ChildAddr)
	indent := int(ev.Depth) * 2

	if !ev.Entry() {
		dur := fmt.Sprintf("%4d", ev.Elapsed())
		_, err := fmt.Fprintf(w, "%s usec [%5d] | %*s} /* %s */\n",
			g.pal.Duration.Sprint(dur), ev.TID, indent, "", g.pal.Name.Sprint(name))
		return err
	}

	// An entry must be followed by something: its own return, or the
	// entry of the first call it makes. A stream that stops here is
	// broken, even when it stops cleanly.
	next, err := s.Peek()
	if err != nil {
		return &StreamError{Err: err}
	}
	if next.Depth == ev.Depth && !next.Entry() {
		// Leaf call: fold the entry and its return into one line.
		if _, err := s.Next(); err != nil {
			return &StreamError{Err: err}
		}
		dur := fmt.Sprintf("%4d", next.EndTime-ev.StartTime)
		_, err := fmt.Fprintf(w, "%s usec [%5d] | %*s%s();\n",
			g.pal.Duration.Sprint(dur), ev.TID, indent, "", g.pal.Name.Sprint(name))
		return err
	}
	_, err = fmt.Fprintf(w, "%9s [%5d] | %*s%s() {\n",
		"", ev.TID, indent, "", g.pal.Name.Sprint(name))
	return err
}
