package buffer

import (
	"github.com/golang-collections/collections/queue"

	"pagesim/pkg/common"
	"pagesim/pkg/storage/page"
)

// FIFOReplacer evicts the frame that was loaded longest ago. Hits do not
// reorder anything.
type FIFOReplacer struct {
	loadOrder *queue.Queue // frame indices, head = oldest load
}

func NewFIFOReplacer() *FIFOReplacer {
	return &FIFOReplacer{loadOrder: queue.New()}
}

func (f *FIFOReplacer) Kind() Kind {
	return FIFO
}

func (f *FIFOReplacer) Resolve(id page.PageID, table *FrameTable, now int64) Outcome {
	if frameID, ok := table.Resident(id); ok {
		return Outcome{Hit: true, Frame: frameID, Evicted: page.InvalidPageID}
	}

	if frameID, ok := table.FirstFreeFrame(); ok {
		table.Place(id, frameID)
		f.loadOrder.Enqueue(frameID)
		return Outcome{Frame: frameID, Evicted: page.InvalidPageID}
	}

	common.Assert(f.loadOrder.Len() > 0, "FIFO: table full but load-order queue is empty (t=%d)", now)
	frameID := f.loadOrder.Dequeue().(int)
	victim := table.PageAt(frameID)
	common.Assert(victim.IsValid(), "FIFO: head of load order is free frame %d (t=%d)", frameID, now)

	table.Place(id, frameID)
	f.loadOrder.Enqueue(frameID)
	return Outcome{Frame: frameID, Evicted: victim}
}
