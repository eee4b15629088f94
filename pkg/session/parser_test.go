package session

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagesim/pkg/buffer"
	"pagesim/pkg/sim"
)

func newTestParser(t *testing.T) (*CommandParser, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewCommandParser(newTestSession(t), out), out
}

func exec(t *testing.T, p *CommandParser, out *bytes.Buffer, line string) string {
	t.Helper()
	out.Reset()
	require.NoError(t, p.ParseAndExecute(line), line)
	return out.String()
}

func TestParserSimulate(t *testing.T) {
	p, out := newTestParser(t)

	exec(t, p, out, "memory 3")
	exec(t, p, out, "PAGESIZE 1;")
	exec(t, p, out, "policy fifo")
	assert.Contains(t, exec(t, p, out, "process P1 0 5"), "Process P1 added (1 total).")

	listing := exec(t, p, out, "processes")
	assert.Contains(t, listing, "Process ID")
	assert.Contains(t, listing, "P1")

	summary := exec(t, p, out, "simulate")
	assert.Contains(t, summary, "Page Faults: 5")
	assert.Contains(t, summary, "Frame 0: P1_Page3")
	assert.Contains(t, summary, "Frame 1: P1_Page4")
	assert.Contains(t, summary, "Frame 2: P1_Page2")
	assert.Contains(t, summary, "P1_Page2 -> Frame 2")

	timeline := exec(t, p, out, "timeline")
	assert.Contains(t, timeline, "Frame 2")
	assert.Contains(t, timeline, "FAULT")
	assert.Contains(t, timeline, "Free")

	faults := exec(t, p, out, "faults")
	assert.Contains(t, faults, "<- fault 5")

	gantt := exec(t, p, out, "gantt")
	assert.Contains(t, gantt, "P1_Page0")
	assert.Contains(t, gantt, "frame 0 @ t1-t3")
}

func TestParserReferencesAndCompare(t *testing.T) {
	p, out := newTestParser(t)

	assert.Contains(t, exec(t, p, out, "refs P1_Page0 P1_Page1 P1_Page0 P1_Page2 P1_Page3"), "5 references")
	summary := exec(t, p, out, "simulate lru")
	assert.Contains(t, summary, "Policy: LRU")
	assert.Contains(t, summary, "Page Faults: 4")

	table := exec(t, p, out, "compare")
	assert.Contains(t, table, "FIFO")
	assert.Contains(t, table, "LRU")

	exec(t, p, out, "refs")
	assert.Nil(t, p.Session.References)
}

func TestParserCatalog(t *testing.T) {
	p, out := newTestParser(t)

	exec(t, p, out, "memory 6")
	exec(t, p, out, "pagesize 2")
	exec(t, p, out, "policy LRU")
	exec(t, p, out, "process P1 0 4")
	assert.Contains(t, exec(t, p, out, "save demo"), "saved")
	assert.Contains(t, exec(t, p, out, "scenarios"), "- demo")

	exec(t, p, out, "reset")
	exec(t, p, out, "memory 9")
	assert.Contains(t, exec(t, p, out, "load demo"), "loaded")
	assert.Equal(t, sim.Config{MemorySize: 6, PageSize: 2}, p.Session.Config)
	assert.Equal(t, buffer.LRU, p.Session.Policy)
	assert.Len(t, p.Session.Processes, 1)

	exec(t, p, out, "drop demo")
	assert.Error(t, p.ParseAndExecute("load demo"))
	assert.Error(t, p.ParseAndExecute("drop demo"))
}

func TestParserTrace(t *testing.T) {
	p, out := newTestParser(t)
	assert.Error(t, p.ParseAndExecute("trace"))

	exec(t, p, out, "process P1 0 2")
	exec(t, p, out, "simulate")
	assert.Contains(t, exec(t, p, out, "trace"), `"page":"P1_Page0"`)
	assert.Contains(t, exec(t, p, out, "trace first"), "first.jsonl")
}

func TestParserErrors(t *testing.T) {
	p, out := newTestParser(t)

	for _, line := range []string{
		"memory 0",
		"memory lots",
		"pagesize -1",
		"policy clock",
		"process P1 x 3",
		"process P1 0 -3",
		"refs P1_Page0 garbage",
		"simulate mru",
		"timeline",
		"faults",
		"gantt",
		"select * from frames",
	} {
		out.Reset()
		assert.Error(t, p.ParseAndExecute(line), line)
	}

	// invalid process input names the process and the field
	err := p.ParseAndExecute("process P2 0 -3")
	assert.ErrorContains(t, err, "P2")
	assert.ErrorContains(t, err, "burst_time")

	exec(t, p, out, "pagesize 5")
	exec(t, p, out, "process P1 0 1")
	assert.ErrorIs(t, p.ParseAndExecute("simulate"), sim.ErrConfig)

	assert.Contains(t, exec(t, p, out, "help"), "pagesim help")
}
