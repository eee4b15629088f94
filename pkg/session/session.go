package session

import (
	"errors"
	"log/slog"
	"path/filepath"

	"pagesim/pkg/buffer"
	"pagesim/pkg/config"
	"pagesim/pkg/sim"
	"pagesim/pkg/storage/page"
	"pagesim/pkg/storage/trace"
)

// Session is the per-connection state: the input being edited and the last
// result. Only the catalog is shared between sessions.
type Session struct {
	Catalog    *Catalog
	DataRoot   string
	Config     sim.Config
	Policy     buffer.Kind
	Processes  []sim.Process
	References []page.PageID
	Last       *sim.Result
}

func NewSession(catalog *Catalog, cfg config.ServerConfig) *Session {
	return &Session{
		Catalog:  catalog,
		DataRoot: cfg.DataDir,
		Config:   cfg.SimConfig(),
		Policy:   cfg.Policy(),
	}
}

// AddProcess appends a process typed as text. Duplicate ids are caught at
// simulation time together with every other input check.
func (s *Session) AddProcess(id, arrival, burst string) error {
	p, err := sim.ParseProcess(len(s.Processes), id, arrival, burst)
	if err != nil {
		return err
	}
	s.Processes = append(s.Processes, p)
	return nil
}

// Reset clears the workload and the last result, keeping memory settings.
func (s *Session) Reset() {
	s.Processes = nil
	s.References = nil
	s.Last = nil
}

func (s *Session) Scenario() *Scenario {
	sc := &Scenario{
		MemorySize: s.Config.MemorySize,
		PageSize:   s.Config.PageSize,
		Policy:     s.Policy.String(),
		Processes:  append([]sim.Process(nil), s.Processes...),
	}
	for _, id := range s.References {
		sc.References = append(sc.References, id.String())
	}
	return sc
}

// Apply replaces the session input with sc.
func (s *Session) Apply(sc *Scenario) error {
	kind, err := buffer.ParseKind(sc.Policy)
	if err != nil {
		return err
	}
	refs, err := page.ParseAll(sc.References)
	if err != nil {
		return err
	}
	s.Config = sc.Config()
	s.Policy = kind
	s.Processes = append([]sim.Process(nil), sc.Processes...)
	s.References = refs
	s.Last = nil
	return nil
}

// Run simulates the current input with kind and keeps the result.
func (s *Session) Run(kind buffer.Kind) (*sim.Result, error) {
	res, err := s.Scenario().RunWith(kind)
	if err != nil {
		slog.Warn("simulation rejected", "policy", kind.String(), "error", err)
		return nil, err
	}
	s.Last = res
	slog.Info("simulation done", "policy", kind.String(), "frames", res.NumFrames, "references", res.References(), "page_faults", res.PageFaults)
	return res, nil
}

// Compare runs every policy on the current input. The last result is left untouched.
func (s *Session) Compare() ([]*sim.Result, error) {
	sc := s.Scenario()
	results := make([]*sim.Result, 0, len(buffer.Kinds))
	for _, kind := range buffer.Kinds {
		res, err := sc.RunWith(kind)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

var errNoResult = errors.New("nothing simulated yet, run 'simulate' first")

func (s *Session) LastResult() (*sim.Result, error) {
	if s.Last == nil {
		return nil, errNoResult
	}
	return s.Last, nil
}

// SaveTrace writes the last timeline to <data dir>/traces/<name>.jsonl.
func (s *Session) SaveTrace(name string) (string, error) {
	res, err := s.LastResult()
	if err != nil {
		return "", err
	}
	store, err := trace.NewFileStore(filepath.Join(s.DataRoot, "traces", name+".jsonl"), true)
	if err != nil {
		return "", err
	}
	defer store.Close()
	if err := trace.Write(store, res); err != nil {
		return "", err
	}
	return store.FileName(), nil
}

// TraceBytes renders the last timeline as JSON lines without touching disk.
func (s *Session) TraceBytes() ([]byte, error) {
	res, err := s.LastResult()
	if err != nil {
		return nil, err
	}
	store := trace.NewVirtualStore()
	defer store.Close()
	if err := trace.Write(store, res); err != nil {
		return nil, err
	}
	return store.Bytes(), nil
}
