// Package symtab loads function symbols from ELF binaries and answers
// address and name lookups against them. The record session uses it to
// verify the probe entry point and resolve filter names; replay uses it
// to turn recorded addresses back into names.
package symtab

import (
	"debug/elf"
	"errors"
	"fmt"
	"sort"
)

// ErrNoSymbols is returned by Load and LoadDynamic when the binary
// carries no usable symbol information.
var ErrNoSymbols = errors.New("no symbols")

// Symbol is one function symbol. Size may be zero when the producer of
// the binary did not record one; such symbols match only their exact
// address.
type Symbol struct {
	Name string
	Addr uint64
	Size uint64
}

// Table holds function symbols sorted by address. Each record or replay
// session owns its tables and releases them with Close when done.
type Table struct {
	path   string
	syms   []Symbol
	byName map[string]int
}

// Load parses the static symbol table (.symtab) of the ELF binary at
// path, keeping function symbols with nonzero addresses.
func Load(path string) (*Table, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	syms, err := f.Symbols()
	if err != nil {
		if errors.Is(err, elf.ErrNoSymbols) {
			return nil, fmt.Errorf("%w in %s", ErrNoSymbols, path)
		}
		return nil, fmt.Errorf("read symbols from %s: %w", path, err)
	}
	return build(path, syms)
}

// LoadDynamic parses the dynamic symbol table (.dynsym) instead. Replay
// falls back to it for addresses the static table does not cover, such
// as calls into shared libraries.
func LoadDynamic(path string) (*Table, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	syms, err := f.DynamicSymbols()
	if err != nil {
		if errors.Is(err, elf.ErrNoSymbols) {
			return nil, fmt.Errorf("%w in %s", ErrNoSymbols, path)
		}
		return nil, fmt.Errorf("read dynamic symbols from %s: %w", path, err)
	}
	return build(path, syms)
}

// New builds a table from already-extracted symbols, sorted by
// address. Tests and synthetic trace generators use it to stand in for
// a loaded binary.
func New(syms []Symbol) *Table {
	t := &Table{
		syms:   append([]Symbol(nil), syms...),
		byName: make(map[string]int),
	}
	sort.Slice(t.syms, func(i, j int) bool {
		return t.syms[i].Addr < t.syms[j].Addr
	})
	// First occurrence of a name wins.
	for i, s := range t.syms {
		if _, ok := t.byName[s.Name]; !ok {
			t.byName[s.Name] = i
		}
	}
	return t
}

func build(path string, raw []elf.Symbol) (*Table, error) {
	var syms []Symbol
	for _, s := range raw {
		if elf.ST_TYPE(s.Info) != elf.STT_FUNC || s.Value == 0 || s.Name == "" {
			continue
		}
		syms = append(syms, Symbol{Name: s.Name, Addr: s.Value, Size: s.Size})
	}
	if len(syms) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoSymbols, path)
	}
	t := New(syms)
	t.path = path
	return t, nil
}

// Name returns the path the table was loaded from.
func (t *Table) Name() string { return t.path }

// Len returns the number of symbols in the table.
func (t *Table) Len() int { return len(t.syms) }

// FindByAddress returns the symbol covering addr, or nil. The covering
// symbol is the greatest-addressed one at or below addr, and addr must
// fall inside [Addr, Addr+Size). A symbol with unknown (zero) size
// matches only addr == Addr.
func (t *Table) FindByAddress(addr uint64) *Symbol {
	if len(t.syms) == 0 || addr < t.syms[0].Addr {
		return nil
	}
	i := sort.Search(len(t.syms), func(i int) bool {
		return addr < t.syms[i].Addr
	})
	s := &t.syms[i-1]
	if s.Size == 0 {
		if addr != s.Addr {
			return nil
		}
		return s
	}
	if addr >= s.Addr+s.Size {
		return nil
	}
	return s
}

// FindByName returns the symbol with the given name, or nil.
func (t *Table) FindByName(name string) *Symbol {
	i, ok := t.byName[name]
	if !ok {
		return nil
	}
	return &t.syms[i]
}

// Close releases the table. Call it exactly once per Load; a table
// reloaded from the same unchanged binary carries the same contents.
func (t *Table) Close() {
	t.syms = nil
	t.byName = nil
}
