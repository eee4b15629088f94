package trace

import (
	"os"
	"path/filepath"
	"sync"
)

// FileStore keeps records in a JSON-lines file on disk.
type FileStore struct {
	mu       sync.Mutex
	file     *os.File
	fileName string
}

// NewFileStore opens (creating parent directories) fileName. Existing content
// is discarded when truncate is set, otherwise new records are appended.
func NewFileStore(fileName string, truncate bool) (*FileStore, error) {
	// make sure the traces directory exists
	dir := filepath.Dir(fileName)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, err
		}
	}

	// read and write on the same handle, Records seeks back to the start
	flags := os.O_RDWR | os.O_CREATE
	if truncate {
		flags |= os.O_TRUNC
	}
	file, err := os.OpenFile(fileName, flags, 0664)
	if err != nil {
		return nil, err
	}
	return &FileStore{file: file, fileName: fileName}, nil
}

func (s *FileStore) FileName() string {
	return s.fileName
}

func (s *FileStore) Append(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return appendRecord(s.file, rec)
}

func (s *FileStore) Records() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return readRecords(s.file)
}

func (s *FileStore) Close() error {
	return s.file.Close()
}
