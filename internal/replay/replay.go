// Package replay renders a recorded trace as text, either as an
// indented call graph or as a flat record listing.
package replay

import (
	"errors"
	"fmt"
	"io"

	"github.com/Greathoney/uftrace/internal/log"
	"github.com/Greathoney/uftrace/internal/symtab"
	"github.com/Greathoney/uftrace/internal/tracefile"
)

// StreamError reports a malformed record stream, such as a function
// entry with nothing recorded after it.
type StreamError struct {
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("error reading trace record: %v", e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

// Options configures a replay session.
type Options struct {
	Flat  bool // flat record listing instead of the call graph
	Color bool // colorize the graph output
}

// Session drives a record stream through one printer. The printer is
// fixed for the whole stream.
type Session struct {
	stream  Stream
	printer Printer
}

// NewSession builds a session rendering stream with the printer opts
// select.
func NewSession(s Stream, res *Resolver, opts Options) *Session {
	var p Printer
	if opts.Flat {
		p = NewFlat(res)
	} else {
		p = NewGraph(res, opts.Color)
	}
	return &Session{stream: s, printer: p}
}

// Run renders every event to w. Output already written stays written
// when a later record turns out to be broken.
func (s *Session) Run(w io.Writer) error {
	for {
		ev, err := s.stream.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := s.printer.Print(w, ev, s.stream); err != nil {
			return err
		}
	}
}

// Replay opens the trace file at path and renders it to w, resolving
// addresses against the binary that produced it.
func Replay(path, exename string, opts Options, w io.Writer) error {
	r, err := tracefile.Open(path)
	if err != nil {
		return err
	}
	defer r.Close()

	tab, err := symtab.Load(exename)
	if err != nil {
		return err
	}
	defer tab.Close()

	// Addresses in shared libraries never show up in the static
	// table; try the dynamic one before reporting unknown.
	dyn, err := symtab.LoadDynamic(exename)
	if err != nil {
		log.Debug("no dynamic symbol table", "exe", exename, "error", err)
		dyn = nil
	} else {
		defer dyn.Close()
	}

	res := NewResolver(tab, dyn)
	return NewSession(NewStream(r), res, opts).Run(w)
}
