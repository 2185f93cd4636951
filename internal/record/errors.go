package record

import (
	"fmt"
)

// ProbeError reports a target binary that carries no probe entry
// point, meaning it cannot be traced.
type ProbeError struct {
	Symbol string
	Path   string
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("Can't find '%s' symbol in the '%s'.\n"+
		"It seems not to be compiled with -pg flag which generates traceable code.\n"+
		"Please check your binary file.", e.Symbol, e.Path)
}

// LaunchError reports a failure to start the target process.
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("cannot launch '%s': %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// MissingDataError reports a child that exited without leaving a trace
// file behind, usually because the probe runtime never ran or died
// before flushing.
type MissingDataError struct {
	Path string
}

func (e *MissingDataError) Error() string {
	return "Cannot generate data file"
}
