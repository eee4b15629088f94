package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssert(t *testing.T) {
	assert.NotPanics(t, func() { Assert(true, "never shown") })
	assert.PanicsWithValue(t, "invariant violation: frame 2 is empty", func() {
		Assert(false, "frame %d is empty", 2)
	})
}
