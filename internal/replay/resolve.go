package replay

import (
	"github.com/Greathoney/uftrace/internal/symtab"
)

// unknownName labels addresses no table covers.
const unknownName = "unknown"

// Resolver turns recorded addresses back into function names by
// querying a chain of symbol tables in priority order. The usual chain
// is the target's static table first and its dynamic table second, for
// addresses in code the static table never saw.
type Resolver struct {
	tables []*symtab.Table
}

// NewResolver builds a resolver over tables; nil entries are skipped.
func NewResolver(tables ...*symtab.Table) *Resolver {
	r := &Resolver{}
	for _, t := range tables {
		if t != nil {
			r.tables = append(r.tables, t)
		}
	}
	return r
}

// Name resolves addr to a function name, or "unknown".
func (r *Resolver) Name(addr uint64) string {
	for _, t := range r.tables {
		if sym := t.FindByAddress(addr); sym != nil {
			return sym.Name
		}
	}
	return unknownName
}
