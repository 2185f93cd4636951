// Package ui handles terminal color for replay output.
package ui

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Enabled resolves a --color mode ("on", "off" or "auto") against the
// output writer. Auto follows NO_COLOR and enables color only when the
// writer is a terminal.
func Enabled(mode string, w io.Writer) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

// Palette holds the replay accent colors. Colors are forced on or off
// per palette so output stays byte-stable regardless of the terminal
// the process runs under.
type Palette struct {
	Duration *color.Color
	Name     *color.Color
}

// NewPalette returns the replay palette with color forced on or off.
func NewPalette(enabled bool) Palette {
	p := Palette{
		Duration: color.New(color.FgCyan),
		Name:     color.New(color.FgGreen),
	}
	if enabled {
		p.Duration.EnableColor()
		p.Name.EnableColor()
	} else {
		p.Duration.DisableColor()
		p.Name.DisableColor()
	}
	return p
}
