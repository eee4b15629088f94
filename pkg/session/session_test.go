package session

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagesim/pkg/buffer"
	"pagesim/pkg/config"
	"pagesim/pkg/sim"
	"pagesim/pkg/storage/page"
)

func newTestSession(t *testing.T) *Session {
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	catalog, err := NewCatalog(filepath.Join(cfg.DataDir, "catalog.json"))
	require.NoError(t, err)
	return NewSession(catalog, cfg)
}

func TestSessionDefaults(t *testing.T) {
	s := newTestSession(t)
	assert.Equal(t, sim.Config{MemorySize: 3, PageSize: 1}, s.Config)
	assert.Equal(t, buffer.FIFO, s.Policy)

	_, err := s.LastResult()
	assert.Error(t, err)
}

func TestSessionRun(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.AddProcess("P1", "0", "5"))

	res, err := s.Run(buffer.FIFO)
	require.NoError(t, err)
	assert.Equal(t, 5, res.PageFaults)
	last, err := s.LastResult()
	require.NoError(t, err)
	assert.Same(t, res, last)

	s.References = []page.PageID{page.New("P1", 0), page.New("P1", 1), page.New("P1", 0), page.New("P1", 2), page.New("P1", 3)}
	res, err = s.Run(buffer.LRU)
	require.NoError(t, err)
	assert.Equal(t, 4, res.PageFaults)

	s.Reset()
	assert.Empty(t, s.Processes)
	assert.Empty(t, s.References)
	_, err = s.LastResult()
	assert.Error(t, err)
}

func TestSessionRejectsInput(t *testing.T) {
	s := newTestSession(t)

	err := s.AddProcess("P1", "zero", "5")
	var inErr *sim.InputError
	require.True(t, errors.As(err, &inErr))
	assert.Equal(t, "arrival_time", inErr.Field)
	assert.Empty(t, s.Processes)

	// a failed run keeps the previous result
	require.NoError(t, s.AddProcess("P1", "0", "2"))
	first, err := s.Run(buffer.FIFO)
	require.NoError(t, err)

	s.Config.PageSize = 10
	_, err = s.Run(buffer.FIFO)
	assert.ErrorIs(t, err, sim.ErrConfig)
	assert.Same(t, first, s.Last)
}

func TestSessionCompare(t *testing.T) {
	s := newTestSession(t)
	s.References = []page.PageID{
		page.New("P1", 1), page.New("P1", 2), page.New("P1", 3), page.New("P1", 1),
		page.New("P1", 4), page.New("P1", 1), page.New("P1", 5),
	}

	results, err := s.Compare()
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, buffer.FIFO, results[0].Policy)
	assert.Equal(t, 6, results[0].PageFaults)
	assert.Equal(t, buffer.LRU, results[1].Policy)
	assert.Equal(t, 5, results[1].PageFaults)
	assert.Nil(t, s.Last)
}

func TestSessionScenarioRoundTrip(t *testing.T) {
	s := newTestSession(t)
	s.Config = sim.Config{MemorySize: 8, PageSize: 2}
	s.Policy = buffer.LRU
	require.NoError(t, s.AddProcess("A", "1", "3"))
	s.References = []page.PageID{page.New("A", 0)}

	sc := s.Scenario()
	assert.Equal(t, "LRU", sc.Policy)
	assert.Equal(t, []string{"A_Page0"}, sc.References)

	other := newTestSession(t)
	require.NoError(t, other.Apply(sc))
	assert.Equal(t, s.Config, other.Config)
	assert.Equal(t, s.Policy, other.Policy)
	assert.Equal(t, s.Processes, other.Processes)
	assert.Equal(t, s.References, other.References)

	sc.Policy = "random"
	assert.Error(t, other.Apply(sc))
}

func TestSessionTraces(t *testing.T) {
	s := newTestSession(t)
	_, err := s.SaveTrace("none")
	assert.Error(t, err)
	_, err = s.TraceBytes()
	assert.Error(t, err)

	require.NoError(t, s.AddProcess("P1", "0", "2"))
	_, err = s.Run(buffer.LRU)
	require.NoError(t, err)

	data, err := s.TraceBytes()
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count(data, []byte("\n")))

	path, err := s.SaveTrace("run1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(s.DataRoot, "traces", "run1.jsonl"), path)
	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, onDisk)
}
