package sim

import (
	"strconv"
	"strings"

	"pagesim/pkg/storage/page"
)

// Process is one entry of the workload. ArrivalTime is carried for display
// only; processes run in input order.
type Process struct {
	ID          string `json:"id" yaml:"id"`
	ArrivalTime int    `json:"arrival_time" yaml:"arrival_time"`
	BurstTime   int    `json:"burst_time" yaml:"burst_time"`
}

// ParseProcess builds a Process from textual fields, as typed by a user.
func ParseProcess(index int, id, arrival, burst string) (Process, error) {
	p := Process{ID: strings.TrimSpace(id)}
	var err error
	if p.ArrivalTime, err = parseNonNegative(index, p.ID, "arrival_time", arrival); err != nil {
		return Process{}, err
	}
	if p.BurstTime, err = parseNonNegative(index, p.ID, "burst_time", burst); err != nil {
		return Process{}, err
	}
	return p, p.Validate(index)
}

func parseNonNegative(index int, id, field, raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &InputError{ProcessID: id, Index: index, Field: field, Value: raw, Reason: "must be an integer"}
	}
	if v < 0 {
		return 0, &InputError{ProcessID: id, Index: index, Field: field, Value: raw, Reason: "must not be negative"}
	}
	return v, nil
}

// Validate checks p as the index-th process of an input.
func (p Process) Validate(index int) error {
	if p.ID == "" {
		return &InputError{Index: index, Field: "id", Value: p.ID, Reason: "must not be empty"}
	}
	if p.ArrivalTime < 0 {
		return &InputError{ProcessID: p.ID, Index: index, Field: "arrival_time", Value: strconv.Itoa(p.ArrivalTime), Reason: "must not be negative"}
	}
	if p.BurstTime < 0 {
		return &InputError{ProcessID: p.ID, Index: index, Field: "burst_time", Value: strconv.Itoa(p.BurstTime), Reason: "must not be negative"}
	}
	return nil
}

// ValidateProcesses checks every process and rejects repeated ids.
func ValidateProcesses(processes []Process) error {
	seen := make(map[string]struct{}, len(processes))
	for i, p := range processes {
		if err := p.Validate(i); err != nil {
			return err
		}
		if _, dup := seen[p.ID]; dup {
			return &InputError{ProcessID: p.ID, Index: i, Field: "id", Value: p.ID, Reason: "duplicate process id"}
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}

// GenerateReferences expands p into ceil(BurstTime / pageSize) page references,
// <id>_Page0 .. <id>_Page<n-1>. pageSize is validated by the engine.
func GenerateReferences(p Process, pageSize int) []page.PageID {
	// Round up without adding first; BurstTime may be near math.MaxInt.
	numPages := p.BurstTime / pageSize
	if p.BurstTime%pageSize != 0 {
		numPages++
	}
	refs := make([]page.PageID, numPages)
	for i := range refs {
		refs[i] = page.New(p.ID, i)
	}
	return refs
}
