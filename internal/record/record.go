// Package record runs an instrumented target with the trace runtime
// interposed through the dynamic loader and collects the trace file it
// leaves behind.
package record

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"

	"github.com/Greathoney/uftrace/internal/log"
	"github.com/Greathoney/uftrace/internal/symtab"
	"github.com/Greathoney/uftrace/internal/tracefile"
)

// ProbeSymbol is the entry point the instrumented target must carry.
// Compilers emit calls to it for every function when building with
// -pg.
const ProbeSymbol = "mcount"

// Options configures one record session.
type Options struct {
	Exename  string   // target binary, executed verbatim without a PATH search
	Argv     []string // target arguments, excluding argv[0]
	LibPath  string   // directory holding the interposition libraries
	Filter   string   // function names to trace, "," or ":" separated
	NoTrace  string   // function names to exclude
	DataFile string   // trace output path
	Debug    bool     // export the probe runtime's debug switch
	Out      io.Writer
}

// Run records one execution of the target. It verifies the target is
// traceable before launching, runs it to completion with the probe
// runtime interposed, and fails if no trace file appeared.
func Run(opts Options) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	if opts.DataFile == "" {
		opts.DataFile = tracefile.DefaultPath
	}

	// Keep the previous run when writing to the default path. Losing
	// the backup is not worth failing a new recording over.
	if opts.DataFile == tracefile.DefaultPath {
		_ = os.Rename(opts.DataFile, opts.DataFile+".old")
	}

	tab, err := symtab.Load(opts.Exename)
	if err != nil {
		return err
	}
	defer tab.Close()

	if tab.FindByName(ProbeSymbol) == nil {
		return &ProbeError{Symbol: ProbeSymbol, Path: opts.Exename}
	}

	env := NewChildEnv(opts, tab)
	if err := launch(opts, env.Environ(os.Environ()), out); err != nil {
		return err
	}

	if err := unix.Access(opts.DataFile, unix.F_OK); err != nil {
		return &MissingDataError{Path: opts.DataFile}
	}
	if info, err := os.Stat(opts.DataFile); err == nil {
		log.Debug("trace data written",
			"file", opts.DataFile,
			"size", humanize.IBytes(uint64(info.Size())))
	}
	return nil
}

// launch starts the target and waits for it. The exit status is
// ignored apart from reporting signal deaths; whether a trace was
// produced is judged by the file, not the status.
func launch(opts Options, environ []string, out io.Writer) error {
	cmd := &exec.Cmd{
		Path:   opts.Exename,
		Args:   append([]string{opts.Exename}, opts.Argv...),
		Env:    environ,
		Stdin:  os.Stdin,
		Stdout: out,
		Stderr: os.Stderr,
	}
	if err := cmd.Start(); err != nil {
		return &LaunchError{Path: opts.Exename, Err: err}
	}
	log.Debug("child started", "pid", cmd.Process.Pid, "exe", opts.Exename)

	err := cmd.Wait()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			sig := ws.Signal()
			log.Debug("child signaled", "signal", unix.SignalName(sig))
			fmt.Fprintf(out, "child (%s) was terminated by signal: %d\n",
				opts.Exename, int(sig))
		}
	} else if err != nil {
		log.Warn("waiting for child", "error", err)
	}
	return nil
}
