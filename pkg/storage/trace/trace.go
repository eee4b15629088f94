package trace

import (
	"encoding/json"
	"errors"
	"io"

	"pagesim/pkg/sim"
	"pagesim/pkg/storage/page"
)

// Record is the stored form of one timeline entry. Free frames are "".
type Record struct {
	Time    int64    `json:"time"`
	Page    string   `json:"page"`
	Hit     bool     `json:"hit"`
	Frame   int      `json:"frame"`
	Evicted string   `json:"evicted,omitempty"`
	Faults  int      `json:"faults"`
	Frames  []string `json:"frames"`
}

// Store keeps the timeline of a run, one JSON document per entry.
type Store interface {
	Append(rec Record) error
	Records() ([]Record, error)
	Close() error
}

func NewRecord(e sim.TimelineEntry, faults int) Record {
	rec := Record{
		Time:   e.Time,
		Page:   e.Page.String(),
		Hit:    e.Hit,
		Frame:  e.Frame,
		Faults: faults,
		Frames: make([]string, len(e.Frames)),
	}
	if e.Evicted != page.InvalidPageID {
		rec.Evicted = e.Evicted.String()
	}
	for i, id := range e.Frames {
		if id != page.InvalidPageID {
			rec.Frames[i] = id.String()
		}
	}
	return rec
}

// Write appends the whole timeline of res to store.
func Write(store Store, res *sim.Result) error {
	for i, e := range res.Timeline {
		if err := store.Append(NewRecord(e, res.FaultsOverTime[i])); err != nil {
			return err
		}
	}
	return nil
}

func appendRecord(w io.WriteSeeker, rec Record) error {
	if _, err := w.Seek(0, io.SeekEnd); err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(rec)
}

func readRecords(r io.ReadSeeker) ([]Record, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	dec := json.NewDecoder(r)
	var recs []Record
	for {
		var rec Record
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			return recs, nil
		}
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
}
