package session

import (
	"fmt"
	"io"
	"strings"

	"pagesim/pkg/sim"
)

// WriteSummary prints the fault count, final memory and page table.
func WriteSummary(w io.Writer, res *sim.Result) {
	fmt.Fprintf(w, "Policy: %s  Frames: %d  References: %d\n", res.Policy, res.NumFrames, res.References())
	fmt.Fprintf(w, "Page Faults: %d  (hit ratio %.2f)\n", res.PageFaults, res.HitRatio())
	fmt.Fprintln(w, "Memory Allocation:")
	for i, id := range res.Memory {
		fmt.Fprintf(w, "  Frame %d: %s\n", i, id)
	}
	fmt.Fprintln(w, "Page Table:")
	for _, e := range res.PageTableEntries() {
		fmt.Fprintf(w, "  %s -> Frame %d\n", e.Page, e.Frame)
	}
}

// WriteTimeline prints one row per reference with the frame contents after it.
func WriteTimeline(w io.Writer, res *sim.Result) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-6s| %-14s| %-6s| %-7s|", "Time", "Page", "Result", "Faults"))
	for i := 0; i < res.NumFrames; i++ {
		sb.WriteString(fmt.Sprintf(" %-14s|", fmt.Sprintf("Frame %d", i)))
	}
	header := sb.String()
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", len(header)))

	for i, e := range res.Timeline {
		result := "hit"
		if !e.Hit {
			result = "FAULT"
		}
		sb.Reset()
		sb.WriteString(fmt.Sprintf("%-6d| %-14s| %-6s| %-7d|", e.Time, e.Page, result, res.FaultsOverTime[i]))
		for _, id := range e.Frames {
			sb.WriteString(fmt.Sprintf(" %-14s|", id))
		}
		fmt.Fprintln(w, sb.String())
	}
}

// WriteFaults prints the cumulative fault count as a bar per step.
func WriteFaults(w io.Writer, res *sim.Result) {
	fmt.Fprintln(w, "Page Faults Over Time:")
	prev := 0
	for i, faults := range res.FaultsOverTime {
		mark := ""
		if faults > prev {
			mark = fmt.Sprintf("  <- fault %d", faults)
		}
		fmt.Fprintf(w, "  t=%-4d %3d %s%s\n", res.Timeline[i].Time, faults, strings.Repeat("#", faults), mark)
		prev = faults
	}
}

// WriteGantt prints, per page, the time spans it stayed resident in each frame.
func WriteGantt(w io.Writer, res *sim.Result) {
	fmt.Fprintln(w, "Page Allocation Over Time:")
	for _, r := range res.Residency() {
		spans := make([]string, 0, len(r.Spans))
		for _, s := range r.Spans {
			if s.Start == s.End {
				spans = append(spans, fmt.Sprintf("frame %d @ t%d", s.Frame, s.Start))
			} else {
				spans = append(spans, fmt.Sprintf("frame %d @ t%d-t%d", s.Frame, s.Start, s.End))
			}
		}
		fmt.Fprintf(w, "  %-14s %s\n", r.Page, strings.Join(spans, ", "))
	}
}

func WriteProcesses(w io.Writer, processes []sim.Process) {
	if len(processes) == 0 {
		fmt.Fprintln(w, "No processes.")
		return
	}
	fmt.Fprintf(w, "%-12s| %-13s| %-11s\n", "Process ID", "Arrival Time", "Burst Time")
	for _, p := range processes {
		fmt.Fprintf(w, "%-12s| %-13d| %-11d\n", p.ID, p.ArrivalTime, p.BurstTime)
	}
}
