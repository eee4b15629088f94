package buffer

import (
	"pagesim/pkg/common"
	"pagesim/pkg/storage/page"
)

// LRUReplacer evicts the resident page with the oldest last access.
// Ties go to the lowest frame index.
type LRUReplacer struct {
	lastAccess map[page.PageID]int64
}

func NewLRUReplacer() *LRUReplacer {
	return &LRUReplacer{lastAccess: make(map[page.PageID]int64)}
}

func (l *LRUReplacer) Kind() Kind {
	return LRU
}

func (l *LRUReplacer) Resolve(id page.PageID, table *FrameTable, now int64) Outcome {
	if frameID, ok := table.Resident(id); ok {
		l.lastAccess[id] = now
		return Outcome{Hit: true, Frame: frameID, Evicted: page.InvalidPageID}
	}

	if frameID, ok := table.FirstFreeFrame(); ok {
		table.Place(id, frameID)
		l.lastAccess[id] = now
		return Outcome{Frame: frameID, Evicted: page.InvalidPageID}
	}

	frameID, victim := l.victim(table)
	common.Assert(victim.IsValid(), "LRU: table full but no eviction candidate (t=%d)", now)

	delete(l.lastAccess, victim)
	table.Place(id, frameID)
	l.lastAccess[id] = now
	return Outcome{Frame: frameID, Evicted: victim}
}

// victim scans the frames in index order for the least recently accessed page.
func (l *LRUReplacer) victim(table *FrameTable) (int, page.PageID) {
	victimFrame, victim := -1, page.InvalidPageID
	var oldest int64
	for frameID := 0; frameID < table.Size(); frameID++ {
		id := table.PageAt(frameID)
		if !id.IsValid() {
			continue
		}
		ts, ok := l.lastAccess[id]
		common.Assert(ok, "LRU: resident page %v has no access time", id)
		if victim == page.InvalidPageID || ts < oldest {
			victimFrame, victim, oldest = frameID, id, ts
		}
	}
	return victimFrame, victim
}
