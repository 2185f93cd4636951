// Package report is the aggregation entry point over recorded traces.
// Nothing is aggregated yet; the package exists so the command surface
// and the future statistics work have a defined seam.
package report

import (
	"io"

	"github.com/Greathoney/uftrace/internal/tracefile"
)

// Run accepts the same opened trace handle replay consumes and
// performs no aggregation. A future implementation would scan the
// records once, accumulating total and self time per resolved
// function, and render them sorted by total time.
func Run(r *tracefile.Reader, w io.Writer) error {
	return nil
}
