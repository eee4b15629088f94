package sim

import (
	"log/slog"
	"strconv"

	"pagesim/pkg/buffer"
	"pagesim/pkg/storage/page"
)

// Config describes physical memory. Sizes share one unit (bytes or abstract).
type Config struct {
	MemorySize int `json:"memory_size" yaml:"memory_size"`
	PageSize   int `json:"page_size" yaml:"page_size"`
}

// Validate returns a *ConfigError unless the config yields at least one frame.
func (c Config) Validate() error {
	if c.MemorySize <= 0 {
		return &ConfigError{Field: "memory_size", Value: c.MemorySize, Reason: "must be a positive integer"}
	}
	if c.PageSize <= 0 {
		return &ConfigError{Field: "page_size", Value: c.PageSize, Reason: "must be a positive integer"}
	}
	if c.MemorySize/c.PageSize == 0 {
		return &ConfigError{Field: "page_size", Value: c.PageSize, Reason: "larger than memory_size " + strconv.Itoa(c.MemorySize) + ", no frame fits"}
	}
	return nil
}

func (c Config) NumFrames() int {
	return c.MemorySize / c.PageSize
}

// Engine runs demand-paging simulations over a fixed memory configuration.
// It keeps no state between runs, so one Engine may serve concurrent callers.
type Engine struct {
	config    Config
	numFrames int
}

func NewEngine(config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Engine{config: config, numFrames: config.NumFrames()}, nil
}

func (e *Engine) Config() Config {
	return e.config
}

func (e *Engine) NumFrames() int {
	return e.numFrames
}

// Simulate expands every process into its page references, in input order,
// and runs them through a fresh replacer of the given kind.
func (e *Engine) Simulate(processes []Process, kind buffer.Kind) (*Result, error) {
	if err := ValidateProcesses(processes); err != nil {
		return nil, err
	}

	var refs []page.PageID
	for _, p := range processes {
		refs = append(refs, GenerateReferences(p, e.config.PageSize)...)
	}
	return e.run(refs, kind), nil
}

// SimulateReferences runs an explicit reference string.
func (e *Engine) SimulateReferences(refs []page.PageID, kind buffer.Kind) (*Result, error) {
	for i, id := range refs {
		if !id.IsValid() {
			return nil, &InputError{ProcessID: id.Process(), Index: i, Field: "reference", Value: id.String(), Reason: "not a valid page id"}
		}
	}
	return e.run(refs, kind), nil
}

func (e *Engine) run(refs []page.PageID, kind buffer.Kind) *Result {
	table := buffer.NewFrameTable(e.numFrames)
	replacer := buffer.NewReplacer(kind)

	res := &Result{
		Policy:         kind,
		NumFrames:      e.numFrames,
		FaultsOverTime: make([]int, 0, len(refs)),
		Timeline:       make([]TimelineEntry, 0, len(refs)),
	}

	for i, id := range refs {
		// logical time starts at 1
		now := int64(i + 1)
		outcome := replacer.Resolve(id, table, now)
		if !outcome.Hit {
			res.PageFaults++
		}
		// cumulative count, one entry per reference
		res.FaultsOverTime = append(res.FaultsOverTime, res.PageFaults)
		res.Timeline = append(res.Timeline, TimelineEntry{
			Time:    now,
			Page:    id,
			Hit:     outcome.Hit,
			Frame:   outcome.Frame,
			Evicted: outcome.Evicted,
			Frames:  table.Snapshot(),
		})
	}

	// final state
	res.Memory = table.Snapshot()
	res.PageTable = table.PageTable()

	slog.Debug("simulation finished",
		"policy", kind.String(),
		"frames", e.numFrames,
		"references", len(refs),
		"page_faults", res.PageFaults)
	return res
}
