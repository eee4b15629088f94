package sim

import (
	"encoding/binary"
	"sort"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/spaolacci/murmur3"

	"pagesim/pkg/buffer"
	"pagesim/pkg/storage/page"
)

// TimelineEntry records one processed reference. Frames is a private copy of
// the frame contents right after the reference was resolved.
type TimelineEntry struct {
	Time    int64
	Page    page.PageID
	Hit     bool
	Frame   int         // frame holding Page after the reference
	Evicted page.PageID // page.InvalidPageID on hits and cold misses
	Frames  []page.PageID
}

// Result is everything a run produced. The engine keeps no reference to it.
type Result struct {
	Policy         buffer.Kind
	NumFrames      int
	PageFaults     int
	Memory         []page.PageID       // final frame contents
	PageTable      map[page.PageID]int // final page -> frame mapping
	FaultsOverTime []int               // fault total after each reference
	Timeline       []TimelineEntry
}

type PageTableEntry struct {
	Page  page.PageID
	Frame int
}

// PageTableEntries returns the final page table ordered by frame.
func (r *Result) PageTableEntries() []PageTableEntry {
	entries := make([]PageTableEntry, 0, len(r.PageTable))
	for id, frameID := range r.PageTable {
		entries = append(entries, PageTableEntry{Page: id, Frame: frameID})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Frame < entries[j].Frame })
	return entries
}

func (r *Result) References() int {
	return len(r.Timeline)
}

// FaultSteps returns the logical times at which a page fault occurred.
func (r *Result) FaultSteps() []int64 {
	var steps []int64
	for _, e := range r.Timeline {
		if !e.Hit {
			steps = append(steps, e.Time)
		}
	}
	return steps
}

func (r *Result) HitRatio() float64 {
	if len(r.Timeline) == 0 {
		return 0
	}
	return float64(len(r.Timeline)-r.PageFaults) / float64(len(r.Timeline))
}

func (r *Result) DistinctPages() mapset.Set[page.PageID] {
	s := mapset.NewThreadUnsafeSet[page.PageID]()
	for _, e := range r.Timeline {
		s.Add(e.Page)
	}
	return s
}

// Span is a closed interval of logical time during which a page stayed in one frame.
type Span struct {
	Frame int
	Start int64
	End   int64
}

type Residency struct {
	Page  page.PageID
	Spans []Span
}

// Residency folds the timeline into per-page frame occupancy, pages ordered by
// first load. It is the data behind a Gantt view of the run.
func (r *Result) Residency() []Residency {
	var out []Residency
	pos := make(map[page.PageID]int)
	for _, e := range r.Timeline {
		for frameID, id := range e.Frames {
			if id == page.InvalidPageID {
				continue
			}
			i, ok := pos[id]
			if !ok {
				i = len(out)
				pos[id] = i
				out = append(out, Residency{Page: id})
			}
			spans := out[i].Spans
			if n := len(spans); n > 0 && spans[n-1].Frame == frameID && spans[n-1].End == e.Time-1 {
				spans[n-1].End = e.Time
				continue
			}
			out[i].Spans = append(spans, Span{Frame: frameID, Start: e.Time, End: e.Time})
		}
	}
	return out
}

// Fingerprint digests the policy, frame count and full timeline. Two runs with
// identical input produce the same value.
func (r *Result) Fingerprint() uint64 {
	h := murmur3.New64()
	var buf [8]byte
	writeInt := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	writeInt(int64(r.Policy))
	writeInt(int64(r.NumFrames))
	for _, e := range r.Timeline {
		writeInt(e.Time)
		h.Write([]byte(e.Page.String()))
		for _, id := range e.Frames {
			h.Write([]byte{0})
			h.Write([]byte(id.String()))
		}
	}
	return h.Sum64()
}
