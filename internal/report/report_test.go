package report

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Greathoney/uftrace/internal/tracefile"
)

func TestRunIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ftrace.data")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w, err := tracefile.NewWriter(f)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.WriteRecord(tracefile.Event{TID: 1, ChildAddr: 0x1000, StartTime: 1}); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := tracefile.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	var out bytes.Buffer
	if err := Run(r, &out); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}
