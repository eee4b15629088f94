package buffer

import (
	mapset "github.com/deckarep/golang-set/v2"

	"pagesim/pkg/common"
	"pagesim/pkg/storage/page"
)

// FrameTable is the physical memory of a run: a fixed array of frames, each
// free (page.InvalidPageID) or holding one resident page, plus the reverse
// mapping PageID -> frame index. Both sides are kept consistent by Place.
type FrameTable struct {
	frames    []page.PageID       // frame index -> resident page
	pageTable map[page.PageID]int // resident page -> frame index
}

func NewFrameTable(numFrames int) *FrameTable {
	common.Assert(numFrames > 0, "frame table needs at least one frame, got %d", numFrames)
	return &FrameTable{
		frames:    make([]page.PageID, numFrames),
		pageTable: make(map[page.PageID]int, numFrames),
	}
}

func (t *FrameTable) Size() int {
	return len(t.frames)
}

// IsFull reports whether no frame is free.
func (t *FrameTable) IsFull() bool {
	return len(t.pageTable) == len(t.frames)
}

// FirstFreeFrame returns the leftmost free frame.
func (t *FrameTable) FirstFreeFrame() (int, bool) {
	if t.IsFull() {
		return -1, false
	}
	for frameID, id := range t.frames {
		if id == page.InvalidPageID {
			return frameID, true
		}
	}
	return -1, false
}

// Resident returns the frame holding id, if any.
func (t *FrameTable) Resident(id page.PageID) (int, bool) {
	frameID, ok := t.pageTable[id]
	return frameID, ok
}

func (t *FrameTable) PageAt(frameID int) page.PageID {
	return t.frames[frameID]
}

// Place loads id into frameID. A different page occupying the frame loses its
// reverse mapping first.
func (t *FrameTable) Place(id page.PageID, frameID int) {
	common.Assert(id.IsValid(), "cannot place invalid page %v", id)
	common.Assert(frameID >= 0 && frameID < len(t.frames), "frame %d out of range [0, %d)", frameID, len(t.frames))
	if cur, ok := t.pageTable[id]; ok {
		common.Assert(cur == frameID, "page %v already resident in frame %d, placing into %d", id, cur, frameID)
		return
	}

	if old := t.frames[frameID]; old != page.InvalidPageID {
		delete(t.pageTable, old)
	}
	t.frames[frameID] = id
	t.pageTable[id] = frameID
}

// Snapshot copies the frame contents; later placements do not show through.
func (t *FrameTable) Snapshot() []page.PageID {
	snap := make([]page.PageID, len(t.frames))
	copy(snap, t.frames)
	return snap
}

// PageTable copies the reverse mapping.
func (t *FrameTable) PageTable() map[page.PageID]int {
	m := make(map[page.PageID]int, len(t.pageTable))
	for id, frameID := range t.pageTable {
		m[id] = frameID
	}
	return m
}

func (t *FrameTable) ResidentSet() mapset.Set[page.PageID] {
	s := mapset.NewThreadUnsafeSet[page.PageID]()
	for id := range t.pageTable {
		s.Add(id)
	}
	return s
}

// Consistent reports whether the reverse mapping is exactly the inverse of the frame contents.
func (t *FrameTable) Consistent() bool {
	used := 0
	for frameID, id := range t.frames {
		if id == page.InvalidPageID {
			continue
		}
		used++
		if got, ok := t.pageTable[id]; !ok || got != frameID {
			return false
		}
	}
	return used == len(t.pageTable)
}
