package session

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"pagesim/pkg/buffer"
	"pagesim/pkg/storage/page"
)

// CommandParser reads one command line at a time and runs it against a Session.
type CommandParser struct {
	Session *Session
	Output  io.Writer
}

func NewCommandParser(session *Session, output io.Writer) *CommandParser {
	return &CommandParser{Session: session, Output: output}
}

var (
	reHelp      = regexp.MustCompile(`(?i)^help$`)
	reMemory    = regexp.MustCompile(`(?i)^memory\s+(\S+)$`)
	rePageSize  = regexp.MustCompile(`(?i)^pagesize\s+(\S+)$`)
	rePolicy    = regexp.MustCompile(`(?i)^policy\s+(\w+)$`)
	reProcess   = regexp.MustCompile(`(?i)^process\s+(\S+)\s+(\S+)\s+(\S+)$`)
	reProcesses = regexp.MustCompile(`(?i)^processes$`)
	reRefs      = regexp.MustCompile(`(?i)^refs((?:\s+\S+)*)$`)
	reReset     = regexp.MustCompile(`(?i)^reset$`)
	reSimulate  = regexp.MustCompile(`(?i)^simulate(?:\s+(\w+))?$`)
	reTimeline  = regexp.MustCompile(`(?i)^timeline$`)
	reFaults    = regexp.MustCompile(`(?i)^faults$`)
	reGantt     = regexp.MustCompile(`(?i)^gantt$`)
	reCompare   = regexp.MustCompile(`(?i)^compare$`)
	reSave      = regexp.MustCompile(`(?i)^save\s+(\w+)$`)
	reLoad      = regexp.MustCompile(`(?i)^load\s+(\w+)$`)
	reDrop      = regexp.MustCompile(`(?i)^drop\s+(\w+)$`)
	reScenarios = regexp.MustCompile(`(?i)^scenarios$`)
	reTrace     = regexp.MustCompile(`(?i)^trace(?:\s+(\w+))?$`)
)

// ParseAndExecute runs one command line.
func (p *CommandParser) ParseAndExecute(line string) error {
	line = strings.TrimSpace(line)
	line = strings.TrimSuffix(line, ";")
	slog.Debug("command", "line", line)

	switch {
	case reHelp.MatchString(line):
		p.printHelp()
		return nil

	case reMemory.MatchString(line):
		v, err := parseSize("memory size", reMemory.FindStringSubmatch(line)[1])
		if err != nil {
			return err
		}
		p.Session.Config.MemorySize = v
		fmt.Fprintf(p.Output, "Memory size set to %d.\n", v)
		return nil

	case rePageSize.MatchString(line):
		v, err := parseSize("page size", rePageSize.FindStringSubmatch(line)[1])
		if err != nil {
			return err
		}
		p.Session.Config.PageSize = v
		fmt.Fprintf(p.Output, "Page size set to %d.\n", v)
		return nil

	case rePolicy.MatchString(line):
		kind, err := buffer.ParseKind(rePolicy.FindStringSubmatch(line)[1])
		if err != nil {
			return err
		}
		p.Session.Policy = kind
		fmt.Fprintf(p.Output, "Replacement policy set to %s.\n", kind)
		return nil

	case reProcess.MatchString(line):
		m := reProcess.FindStringSubmatch(line)
		if err := p.Session.AddProcess(m[1], m[2], m[3]); err != nil {
			return err
		}
		fmt.Fprintf(p.Output, "Process %s added (%d total).\n", m[1], len(p.Session.Processes))
		return nil

	case reProcesses.MatchString(line):
		WriteProcesses(p.Output, p.Session.Processes)
		return nil

	case reRefs.MatchString(line):
		return p.handleRefs(reRefs.FindStringSubmatch(line)[1])

	case reReset.MatchString(line):
		p.Session.Reset()
		fmt.Fprintln(p.Output, "Workload cleared.")
		return nil

	case reSimulate.MatchString(line):
		return p.handleSimulate(reSimulate.FindStringSubmatch(line)[1])

	case reTimeline.MatchString(line):
		res, err := p.Session.LastResult()
		if err != nil {
			return err
		}
		WriteTimeline(p.Output, res)
		return nil

	case reFaults.MatchString(line):
		res, err := p.Session.LastResult()
		if err != nil {
			return err
		}
		WriteFaults(p.Output, res)
		return nil

	case reGantt.MatchString(line):
		res, err := p.Session.LastResult()
		if err != nil {
			return err
		}
		WriteGantt(p.Output, res)
		return nil

	case reCompare.MatchString(line):
		return p.handleCompare()

	case reSave.MatchString(line):
		name := reSave.FindStringSubmatch(line)[1]
		if err := p.Session.Catalog.Save(name, p.Session.Scenario()); err != nil {
			return err
		}
		fmt.Fprintf(p.Output, "Scenario '%s' saved.\n", name)
		return nil

	case reLoad.MatchString(line):
		name := reLoad.FindStringSubmatch(line)[1]
		sc, ok := p.Session.Catalog.Get(name)
		if !ok {
			return fmt.Errorf("scenario '%s' not found", name)
		}
		if err := p.Session.Apply(sc); err != nil {
			return err
		}
		fmt.Fprintf(p.Output, "Scenario '%s' loaded.\n", name)
		return nil

	case reDrop.MatchString(line):
		name := reDrop.FindStringSubmatch(line)[1]
		dropped, err := p.Session.Catalog.Drop(name)
		if err != nil {
			return err
		}
		if !dropped {
			return fmt.Errorf("scenario '%s' not found", name)
		}
		fmt.Fprintf(p.Output, "Scenario '%s' dropped.\n", name)
		return nil

	case reScenarios.MatchString(line):
		fmt.Fprintln(p.Output, "Scenarios:")
		for _, name := range p.Session.Catalog.List() {
			fmt.Fprintln(p.Output, "- "+name)
		}
		return nil

	case reTrace.MatchString(line):
		return p.handleTrace(reTrace.FindStringSubmatch(line)[1])

	default:
		return fmt.Errorf("syntax error or unknown command: %s", line)
	}
}

func parseSize(what, raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", what, raw)
	}
	return v, nil
}

func (p *CommandParser) handleRefs(list string) error {
	fields := strings.Fields(list)
	if len(fields) == 0 {
		p.Session.References = nil
		fmt.Fprintln(p.Output, "Reference string cleared, processes will be expanded.")
		return nil
	}
	refs, err := page.ParseAll(fields)
	if err != nil {
		return err
	}
	p.Session.References = refs
	fmt.Fprintf(p.Output, "Reference string set (%d references).\n", len(refs))
	return nil
}

func (p *CommandParser) handleSimulate(policy string) error {
	kind := p.Session.Policy
	if policy != "" {
		var err error
		if kind, err = buffer.ParseKind(policy); err != nil {
			return err
		}
	}
	res, err := p.Session.Run(kind)
	if err != nil {
		return err
	}
	WriteSummary(p.Output, res)
	return nil
}

func (p *CommandParser) handleCompare() error {
	results, err := p.Session.Compare()
	if err != nil {
		return err
	}
	fmt.Fprintf(p.Output, "%-8s| %-7s| %-10s| %-18s\n", "Policy", "Faults", "Hit ratio", "Fingerprint")
	for _, res := range results {
		fmt.Fprintf(p.Output, "%-8s| %-7d| %-10.2f| %016x\n", res.Policy, res.PageFaults, res.HitRatio(), res.Fingerprint())
	}
	return nil
}

func (p *CommandParser) handleTrace(name string) error {
	if name == "" {
		data, err := p.Session.TraceBytes()
		if err != nil {
			return err
		}
		_, err = p.Output.Write(data)
		return err
	}
	path, err := p.Session.SaveTrace(name)
	if err != nil {
		return err
	}
	fmt.Fprintf(p.Output, "Trace written to %s.\n", path)
	return nil
}

func (p *CommandParser) printHelp() {
	fmt.Fprintln(p.Output, "--- pagesim help ---")
	fmt.Fprintln(p.Output, "1.  memory <size>;               set memory size")
	fmt.Fprintln(p.Output, "2.  pagesize <size>;             set page size")
	fmt.Fprintln(p.Output, "3.  policy <fifo|lru>;           set replacement policy")
	fmt.Fprintln(p.Output, "4.  process <id> <arrival> <burst>;")
	fmt.Fprintln(p.Output, "5.  processes;                   list processes")
	fmt.Fprintln(p.Output, "6.  refs [P1_Page0 P1_Page1 ...]; set or clear an explicit reference string; when set it runs instead of the processes")
	fmt.Fprintln(p.Output, "7.  reset;                       clear processes and references")
	fmt.Fprintln(p.Output, "8.  simulate [fifo|lru];")
	fmt.Fprintln(p.Output, "9.  timeline; faults; gantt;     views of the last run")
	fmt.Fprintln(p.Output, "10. compare;                     run every policy on the current input")
	fmt.Fprintln(p.Output, "11. save|load|drop <name>; scenarios;")
	fmt.Fprintln(p.Output, "12. trace [name];                dump or save the last timeline as JSON lines")
}
