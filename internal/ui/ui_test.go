package ui

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if !Enabled("on", &bytes.Buffer{}) {
		t.Error("Enabled(on) = false, want true")
	}
	if Enabled("off", f) {
		t.Error("Enabled(off) = true, want false")
	}
	// A regular file is not a terminal.
	if Enabled("auto", f) {
		t.Error("Enabled(auto) = true for non-terminal file")
	}
	if Enabled("auto", &bytes.Buffer{}) {
		t.Error("Enabled(auto) = true for non-file writer")
	}
}

func TestEnabledNoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	if Enabled("auto", &bytes.Buffer{}) {
		t.Error("Enabled(auto) = true with NO_COLOR set")
	}
	if !Enabled("on", &bytes.Buffer{}) {
		t.Error("Enabled(on) = false, explicit on should beat NO_COLOR")
	}
}

func TestPaletteOff(t *testing.T) {
	p := NewPalette(false)

	if got := p.Name.Sprint("main"); got != "main" {
		t.Errorf("disabled Name.Sprint = %q, want %q", got, "main")
	}
	if got := p.Duration.Sprint("  10"); got != "  10" {
		t.Errorf("disabled Duration.Sprint = %q, want %q", got, "  10")
	}
}

func TestPaletteOn(t *testing.T) {
	p := NewPalette(true)

	got := p.Name.Sprint("main")
	if !strings.Contains(got, "main") || !strings.Contains(got, "\x1b[") {
		t.Errorf("enabled Name.Sprint = %q, want ANSI-wrapped %q", got, "main")
	}
}
