package session

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/sasha-s/go-deadlock"
)

// Catalog holds the named scenarios shared by every session and mirrors
// them to a JSON file.
type Catalog struct {
	Scenarios map[string]*Scenario
	MetaFile  string
	mu        deadlock.RWMutex
}

// NewCatalog loads metaFile if it exists. An empty metaFile keeps the catalog in memory only.
func NewCatalog(metaFile string) (*Catalog, error) {
	c := &Catalog{
		Scenarios: make(map[string]*Scenario),
		MetaFile:  metaFile,
	}
	if err := c.LoadMeta(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) LoadMeta() error {
	if c.MetaFile == "" {
		return nil
	}
	file, err := os.Open(c.MetaFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	defer file.Close()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := json.NewDecoder(file).Decode(&c.Scenarios); err != nil {
		return err
	}
	// a literal null decodes to a nil map
	if c.Scenarios == nil {
		c.Scenarios = make(map[string]*Scenario)
	}
	return nil
}

// saveMeta writes the catalog; callers hold the lock.
func (c *Catalog) saveMeta() error {
	if c.MetaFile == "" {
		return nil
	}
	// rewrite the whole file, the catalog is small
	file, err := os.Create(c.MetaFile)
	if err != nil {
		return err
	}
	defer file.Close()

	// indent so the file can be edited by hand
	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(c.Scenarios)
}

// Save stores a copy of sc under name, replacing any previous entry.
func (c *Catalog) Save(name string, sc *Scenario) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	// store a copy so the caller's session can keep editing its own
	stored := sc.Clone()
	stored.Name = name
	c.Scenarios[name] = stored
	return c.saveMeta()
}

// Get returns a copy of the named scenario.
func (c *Catalog) Get(name string) (*Scenario, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sc, ok := c.Scenarios[name]
	if !ok {
		return nil, false
	}
	return sc.Clone(), true
}

func (c *Catalog) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.Scenarios[name]
	return ok
}

// Drop removes name and reports whether it existed.
func (c *Catalog) Drop(name string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.Scenarios[name]; !ok {
		return false, nil
	}
	delete(c.Scenarios, name)
	return true, c.saveMeta()
}

func (c *Catalog) List() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	// map order is random, sort for stable output
	names := make([]string, 0, len(c.Scenarios))
	for name := range c.Scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
