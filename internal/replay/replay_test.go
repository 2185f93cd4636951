package replay

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Greathoney/uftrace/internal/symtab"
	"github.com/Greathoney/uftrace/internal/tracefile"
)

func testResolver() *Resolver {
	return NewResolver(symtab.New([]symtab.Symbol{
		{Name: "main", Addr: 0x1000, Size: 0x100},
		{Name: "foo", Addr: 0x2000, Size: 0x100},
		{Name: "bar", Addr: 0x3000, Size: 0x100},
	}))
}

// callEvents is main calling foo calling bar, one thread, times in
// microseconds.
func callEvents() []tracefile.Event {
	return []tracefile.Event{
		{TID: 1234, Depth: 0, ParentAddr: 0x1, ChildAddr: 0x1000, StartTime: 100},
		{TID: 1234, Depth: 1, ParentAddr: 0x1010, ChildAddr: 0x2000, StartTime: 110},
		{TID: 1234, Depth: 2, ParentAddr: 0x2008, ChildAddr: 0x3000, StartTime: 120},
		{TID: 1234, Depth: 2, ParentAddr: 0x2008, ChildAddr: 0x3000, StartTime: 120, EndTime: 130},
		{TID: 1234, Depth: 1, ParentAddr: 0x1010, ChildAddr: 0x2000, StartTime: 110, EndTime: 150},
		{TID: 1234, Depth: 0, ParentAddr: 0x1, ChildAddr: 0x1000, StartTime: 100, EndTime: 200},
	}
}

func graphGolden() string {
	return strings.Join([]string{
		"          [ 1234] | main() {",
		"          [ 1234] |   foo() {",
		"  10 usec [ 1234] |     bar();",
		"  40 usec [ 1234] |   } /* foo */",
		" 100 usec [ 1234] | } /* main */",
	}, "\n") + "\n"
}

func TestGraphLeafCollapsing(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(NewSliceStream(callEvents()), testResolver(), Options{})
	require.NoError(t, s.Run(&out))

	assert.Equal(t, graphGolden(), out.String())
	assert.Len(t, strings.Split(strings.TrimRight(out.String(), "\n"), "\n"), 5,
		"six records render as five lines, bar's pair collapses")
}

func TestFlatRendering(t *testing.T) {
	want := strings.Join([]string{
		"[0] 1234/0: ip (unknown -> main), time (100)",
		"[1] 1234/1: ip (main -> foo), time (110)",
		"[2] 1234/2: ip (foo -> bar), time (120)",
		"[3] 1234/2: ip (foo <- bar), time (130:10)",
		"[4] 1234/1: ip (main <- foo), time (150:40)",
		"[5] 1234/0: ip (unknown <- main), time (200:100)",
	}, "\n") + "\n"

	var out bytes.Buffer
	s := NewSession(NewSliceStream(callEvents()), testResolver(), Options{Flat: true})
	require.NoError(t, s.Run(&out))

	assert.Equal(t, want, out.String())
}

func TestGraphLoneEntryIsStreamError(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(NewSliceStream(callEvents()[:1]), testResolver(), Options{})
	err := s.Run(&out)

	var streamErr *StreamError
	require.ErrorAs(t, err, &streamErr)
	assert.ErrorIs(t, err, io.EOF)
	assert.Empty(t, out.String(), "the lone entry never reaches the output")
}

func TestGraphKeepsPartialOutputOnStreamError(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(NewSliceStream(callEvents()[:2]), testResolver(), Options{})
	err := s.Run(&out)

	var streamErr *StreamError
	require.ErrorAs(t, err, &streamErr)
	assert.Equal(t, "          [ 1234] | main() {\n", out.String(),
		"lines printed before the failure stay on screen")
}

func TestGraphColor(t *testing.T) {
	var plain, colored bytes.Buffer
	events := callEvents()

	s := NewSession(NewSliceStream(events), testResolver(), Options{})
	require.NoError(t, s.Run(&plain))

	s = NewSession(NewSliceStream(events), testResolver(), Options{Color: true})
	require.NoError(t, s.Run(&colored))

	assert.Contains(t, colored.String(), "\x1b[")
	assert.NotContains(t, plain.String(), "\x1b[")
}

func writeTraceFile(t *testing.T, events []tracefile.Event, chop int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ftrace.data")
	f, err := os.Create(path)
	require.NoError(t, err)
	w, err := tracefile.NewWriter(f)
	require.NoError(t, err)
	for _, ev := range events {
		require.NoError(t, w.WriteRecord(ev))
	}
	require.NoError(t, f.Close())

	if chop > 0 {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, data[:len(data)-chop], 0o644))
	}
	return path
}

func TestGraphOverFile(t *testing.T) {
	path := writeTraceFile(t, callEvents(), 0)
	r, err := tracefile.Open(path)
	require.NoError(t, err)
	defer r.Close()

	var out bytes.Buffer
	s := NewSession(NewStream(r), testResolver(), Options{})
	require.NoError(t, s.Run(&out))
	assert.Equal(t, graphGolden(), out.String())
}

func TestGraphTruncatedTailEndsCleanly(t *testing.T) {
	// The final exit record loses its last bytes; everything before it
	// still renders and the stream ends without error.
	path := writeTraceFile(t, callEvents(), 11)
	r, err := tracefile.Open(path)
	require.NoError(t, err)
	defer r.Close()

	var out bytes.Buffer
	s := NewSession(NewStream(r), testResolver(), Options{})
	require.NoError(t, s.Run(&out))

	want := strings.Join([]string{
		"          [ 1234] | main() {",
		"          [ 1234] |   foo() {",
		"  10 usec [ 1234] |     bar();",
		"  40 usec [ 1234] |   } /* foo */",
	}, "\n") + "\n"
	assert.Equal(t, want, out.String())
}

func TestGraphTruncationAfterEntryIsFatal(t *testing.T) {
	// Only the opening entry survives whole; its follower is cut off
	// mid-record. An entry with no complete record behind it is a
	// broken stream, not a clean end.
	events := callEvents()[:2]
	path := writeTraceFile(t, events, 11)
	r, err := tracefile.Open(path)
	require.NoError(t, err)
	defer r.Close()

	var out bytes.Buffer
	s := NewSession(NewStream(r), testResolver(), Options{})
	err = s.Run(&out)

	var streamErr *StreamError
	require.ErrorAs(t, err, &streamErr)
}

func TestResolverChain(t *testing.T) {
	static := symtab.New([]symtab.Symbol{{Name: "main", Addr: 0x1000, Size: 0x100}})
	dynamic := symtab.New([]symtab.Symbol{
		{Name: "lib_fn", Addr: 0x9000, Size: 0x40},
		{Name: "main@dyn", Addr: 0x1000, Size: 0x100},
	})
	res := NewResolver(static, dynamic)

	assert.Equal(t, "main", res.Name(0x1000), "the static table wins on overlap")
	assert.Equal(t, "lib_fn", res.Name(0x9010), "dynamic fallback on a static miss")
	assert.Equal(t, "unknown", res.Name(0xdead))

	onlyStatic := NewResolver(static, nil)
	assert.Equal(t, "unknown", onlyStatic.Name(0x9010), "nil fallback tables are skipped")
}

func TestReplayMissingFile(t *testing.T) {
	err := Replay(filepath.Join(t.TempDir(), "nope.data"), "./prog", Options{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, tracefile.ErrNotFound)
}

func TestReplayBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.data")
	require.NoError(t, os.WriteFile(path, []byte("NotAtrace-file-0000"), 0o644))

	err := Replay(path, "./prog", Options{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, tracefile.ErrBadMagic)
}

func TestReplayUnreadableBinary(t *testing.T) {
	path := writeTraceFile(t, nil, 0)
	err := Replay(path, filepath.Join(t.TempDir(), "no-such-binary"), Options{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, tracefile.ErrNotFound, "the trace file itself was fine")
}
