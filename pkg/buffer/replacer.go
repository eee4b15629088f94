package buffer

import (
	"fmt"
	"strings"

	"pagesim/pkg/common"
	"pagesim/pkg/storage/page"
)

// Kind is the closed set of replacement policies.
type Kind int

const (
	FIFO Kind = iota
	LRU
)

// Kinds lists every policy, in display order.
var Kinds = []Kind{FIFO, LRU}

func (k Kind) String() string {
	switch k {
	case FIFO:
		return "FIFO"
	case LRU:
		return "LRU"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FIFO":
		return FIFO, nil
	case "LRU":
		return LRU, nil
	}
	return 0, fmt.Errorf("unknown replacement policy %q (expected FIFO or LRU)", s)
}

// Outcome is the result of resolving one reference.
type Outcome struct {
	Hit     bool
	Frame   int         // frame holding the referenced page afterwards
	Evicted page.PageID // page.InvalidPageID unless a resident page was replaced
}

// EvictedFrame returns the frame whose occupant was replaced, if any.
func (o Outcome) EvictedFrame() (int, bool) {
	if o.Evicted == page.InvalidPageID {
		return -1, false
	}
	return o.Frame, true
}

// Replacer decides hit or miss for a reference and, on a miss, where the page
// goes. It mutates the frame table and its own bookkeeping; a fresh instance
// is used for every run.
type Replacer interface {
	Kind() Kind
	Resolve(id page.PageID, table *FrameTable, now int64) Outcome
}

func NewReplacer(kind Kind) Replacer {
	switch kind {
	case FIFO:
		return NewFIFOReplacer()
	case LRU:
		return NewLRUReplacer()
	}
	common.Assert(false, "no replacer for %v", kind)
	return nil
}
