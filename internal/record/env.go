package record

import (
	"fmt"
	"strings"

	"github.com/Greathoney/uftrace/internal/symtab"
	"github.com/Greathoney/uftrace/internal/tracefile"
)

// Library file names the dynamic loader interposes into the child.
const (
	preloadLib = "libmcount.so"
	auditLib   = "librtld-audit.so"
)

// ChildEnv is the environment contract between the record session and
// the probe runtime inside the child. Optional variables are exported
// only when the matching option departs from its default; the
// interposition libraries are prepended to any preload and audit
// values already present rather than replacing them.
type ChildEnv struct {
	// LibPath is the directory holding the interposition libraries.
	LibPath string

	// Filter and NoTrace are resolved address lists. The Set flags
	// track whether the option was given at all: an option that
	// resolved to nothing still exports an empty list, which the
	// probe runtime treats differently from an absent one.
	Filter     string
	SetFilter  bool
	NoTrace    string
	SetNoTrace bool

	// File is the trace output path; empty keeps the runtime's
	// default and exports nothing.
	File string

	// Debug exports the runtime's debug switch.
	Debug bool
}

// NewChildEnv computes the child environment from the record options
// and the target's symbol table.
func NewChildEnv(opts Options, tab *symtab.Table) *ChildEnv {
	env := &ChildEnv{LibPath: opts.LibPath, Debug: opts.Debug}
	if env.LibPath == "" {
		env.LibPath = "."
	}
	if opts.Filter != "" {
		env.Filter = buildAddrList(tab, opts.Filter)
		env.SetFilter = true
	}
	if opts.NoTrace != "" {
		env.NoTrace = buildAddrList(tab, opts.NoTrace)
		env.SetNoTrace = true
	}
	if opts.DataFile != tracefile.DefaultPath {
		env.File = opts.DataFile
	}
	return env
}

// Environ returns base extended with the child variables. The library
// paths keep an explicit directory component so the loader treats them
// as paths instead of searching its library directories.
func (e *ChildEnv) Environ(base []string) []string {
	preload := e.LibPath + "/" + preloadLib
	if old, ok := lookup(base, "LD_PRELOAD"); ok {
		preload += ":" + old
	}
	audit := e.LibPath + "/" + auditLib
	if old, ok := lookup(base, "LD_AUDIT"); ok {
		audit += ":" + old
	}

	env := set(base, "LD_PRELOAD", preload)
	env = set(env, "LD_AUDIT", audit)
	if e.SetFilter {
		env = set(env, "FTRACE_FILTER", e.Filter)
	}
	if e.SetNoTrace {
		env = set(env, "FTRACE_NOTRACE", e.NoTrace)
	}
	if e.File != "" {
		env = set(env, "FTRACE_FILE", e.File)
	}
	if e.Debug {
		env = set(env, "FTRACE_DEBUG", "1")
	}
	return env
}

// buildAddrList resolves a "," or ":" separated function-name list
// into the hex address list the probe runtime consumes. Whether an
// entry gets a ":" separator depends on its position in the input, not
// on how many names before it resolved: the first name owns the
// unseparated slot even when it resolves to nothing.
func buildAddrList(tab *symtab.Table, symlist string) string {
	var buf strings.Builder
	for i, name := range splitNames(symlist) {
		sym := tab.FindByName(name)
		if sym == nil {
			continue
		}
		if i > 0 {
			buf.WriteByte(':')
		}
		fmt.Fprintf(&buf, "%#x", sym.Addr)
	}
	return buf.String()
}

func splitNames(symlist string) []string {
	return strings.FieldsFunc(symlist, func(r rune) bool {
		return r == ',' || r == ':'
	})
}

func lookup(environ []string, key string) (string, bool) {
	prefix := key + "="
	for _, kv := range environ {
		if strings.HasPrefix(kv, prefix) {
			return kv[len(prefix):], true
		}
	}
	return "", false
}

func set(environ []string, key, value string) []string {
	prefix := key + "="
	for i, kv := range environ {
		if strings.HasPrefix(kv, prefix) {
			out := append([]string(nil), environ...)
			out[i] = prefix + value
			return out
		}
	}
	return append(append([]string(nil), environ...), prefix+value)
}
