package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pagesim/pkg/buffer"
	"pagesim/pkg/storage/page"
)

func TestGenerateReferences(t *testing.T) {
	p := Process{ID: "P1", BurstTime: 5}
	assert.Equal(t, []page.PageID{
		page.New("P1", 0), page.New("P1", 1), page.New("P1", 2), page.New("P1", 3), page.New("P1", 4),
	}, GenerateReferences(p, 1))

	// ceil(5 / 2) = 3
	assert.Len(t, GenerateReferences(p, 2), 3)
	assert.Len(t, GenerateReferences(p, 5), 1)
	assert.Len(t, GenerateReferences(p, 100), 1)
	assert.Empty(t, GenerateReferences(Process{ID: "P2"}, 4))
}

func TestGenerateReferencesHugeBurst(t *testing.T) {
	// MaxInt = 2*(MaxInt/2) + 1, so one partial page follows two full ones
	p := Process{ID: "P1", BurstTime: math.MaxInt}
	refs := GenerateReferences(p, math.MaxInt/2)
	assert.Equal(t, []page.PageID{page.New("P1", 0), page.New("P1", 1), page.New("P1", 2)}, refs)
	assert.Len(t, GenerateReferences(p, math.MaxInt), 1)

	engine, err := NewEngine(Config{MemorySize: math.MaxInt, PageSize: math.MaxInt / 2})
	require.NoError(t, err)
	res, err := engine.Simulate([]Process{p}, buffer.FIFO)
	require.NoError(t, err)
	assert.Equal(t, 2, res.NumFrames)
	assert.Equal(t, 3, res.PageFaults)
}

func TestValidateProcesses(t *testing.T) {
	assert.NoError(t, ValidateProcesses(nil))
	assert.NoError(t, ValidateProcesses([]Process{{ID: "P1", BurstTime: 1}, {ID: "P2"}}))

	err := ValidateProcesses([]Process{{ID: "P1"}, {ID: "P1", BurstTime: 2}})
	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, 1, inputErr.Index)
	assert.Equal(t, "id", inputErr.Field)

	assert.ErrorIs(t, ValidateProcesses([]Process{{ID: "P1", BurstTime: -1}}), ErrInput)
}

func TestParseProcess(t *testing.T) {
	p, err := ParseProcess(0, "P1", "0", " 7 ")
	require.NoError(t, err)
	assert.Equal(t, Process{ID: "P1", ArrivalTime: 0, BurstTime: 7}, p)

	_, err = ParseProcess(1, "P2", "x", "3")
	var inErr *InputError
	require.True(t, errors.As(err, &inErr))
	assert.Equal(t, "P2", inErr.ProcessID)
	assert.Equal(t, "arrival_time", inErr.Field)
	assert.Equal(t, "x", inErr.Value)

	_, err = ParseProcess(1, "P2", "0", "-3")
	require.True(t, errors.As(err, &inErr))
	assert.Equal(t, "burst_time", inErr.Field)
	assert.ErrorIs(t, err, ErrInput)

	_, err = ParseProcess(2, "", "0", "3")
	require.True(t, errors.As(err, &inErr))
	assert.Equal(t, "id", inErr.Field)
	assert.Contains(t, err.Error(), "process #3")
}

func TestProcessValidate(t *testing.T) {
	assert.NoError(t, Process{ID: "P1"}.Validate(0))
	assert.ErrorIs(t, Process{ID: "P1", ArrivalTime: -1}.Validate(0), ErrInput)
	assert.ErrorIs(t, Process{ID: "P1", BurstTime: -1}.Validate(0), ErrInput)
}
