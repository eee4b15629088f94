package session

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"pagesim/pkg/buffer"
	"pagesim/pkg/sim"
	"pagesim/pkg/storage/page"
)

// Scenario is a complete, replayable simulation input. It is stored in the
// catalog as JSON and read from scenario files as YAML.
type Scenario struct {
	Name       string        `json:"name" yaml:"name,omitempty"`
	MemorySize int           `json:"memory_size" yaml:"memory_size"`
	PageSize   int           `json:"page_size" yaml:"page_size"`
	Policy     string        `json:"policy" yaml:"policy"`
	Processes  []sim.Process `json:"processes" yaml:"processes"`
	References []string      `json:"references,omitempty" yaml:"references,omitempty"`
}

func LoadScenarioFile(path string) (*Scenario, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	sc, err := ParseScenario(file)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}

// ParseScenario decodes one YAML scenario document. Unknown keys are rejected.
func ParseScenario(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	sc := &Scenario{}
	if err := dec.Decode(sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (sc *Scenario) Config() sim.Config {
	return sim.Config{MemorySize: sc.MemorySize, PageSize: sc.PageSize}
}

// Run simulates the scenario with its own policy.
func (sc *Scenario) Run() (*sim.Result, error) {
	kind, err := buffer.ParseKind(sc.Policy)
	if err != nil {
		return nil, err
	}
	return sc.RunWith(kind)
}

// RunWith simulates the scenario with kind. An explicit reference string takes
// precedence over the processes, which must still be valid.
func (sc *Scenario) RunWith(kind buffer.Kind) (*sim.Result, error) {
	engine, err := sim.NewEngine(sc.Config())
	if err != nil {
		return nil, err
	}
	// processes are kept alongside a reference string, so a bad table is
	// reported even when it is not what runs
	if err := sim.ValidateProcesses(sc.Processes); err != nil {
		return nil, err
	}
	if len(sc.References) > 0 {
		refs, err := page.ParseAll(sc.References)
		if err != nil {
			return nil, err
		}
		return engine.SimulateReferences(refs, kind)
	}
	return engine.Simulate(sc.Processes, kind)
}

func (sc *Scenario) Clone() *Scenario {
	c := *sc
	c.Processes = append([]sim.Process(nil), sc.Processes...)
	c.References = append([]string(nil), sc.References...)
	return &c
}
