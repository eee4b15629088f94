package trace

import (
	"sync"

	"github.com/dsnet/golib/memfile"
)

// VirtualStore keeps records in memory; used when no data directory is wanted.
type VirtualStore struct {
	mu   sync.Mutex
	file *memfile.File
}

func NewVirtualStore() *VirtualStore {
	return &VirtualStore{file: memfile.New(make([]byte, 0))}
}

func (s *VirtualStore) Append(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return appendRecord(s.file, rec)
}

func (s *VirtualStore) Records() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readRecords(s.file)
}

// Bytes returns the raw JSON-lines content.
func (s *VirtualStore) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.file.Bytes()...)
}

func (s *VirtualStore) Close() error {
	return nil
}
