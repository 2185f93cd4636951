package main

import (
	"github.com/Greathoney/uftrace/cmd/ftrace/cli"
)

func main() {
	// Failures are reported as messages; the process exits 0 either
	// way.
	_ = cli.Execute()
}
