package common

import (
	"fmt"
	"runtime"

	"github.com/devlights/gomy/output"
)

// Assert panics with msg when condition does not hold. It guards bookkeeping
// invariants whose failure means a programming error, never bad user input.
func Assert(condition bool, format string, a ...interface{}) {
	if !condition {
		msg := fmt.Sprintf(format, a...)
		DumpStacks()
		panic("invariant violation: " + msg)
	}
}

// DumpStacks prints the stacks of all goroutines to stdout.
func DumpStacks() {
	buf := make([]byte, 1024)
	for {
		n := runtime.Stack(buf, true)
		if n < len(buf) {
			buf = buf[:n]
			break
		}
		buf = make([]byte, 2*len(buf))
	}
	output.Stdoutl("=== stack-all   ", string(buf))
}
