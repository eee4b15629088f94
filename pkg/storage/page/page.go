package page

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/notEpsilon/go-pair"
)

// PageID identifies the index-th page of a process.
// The zero value is InvalidPageID and stands for a free frame.
type PageID pair.Pair[string, int]

// pageInfix joins the process id and the page index in the textual form, e.g. "P1_Page0".
const pageInfix = "_Page"

var InvalidPageID = PageID{}

func New(processID string, index int) PageID {
	return PageID{First: processID, Second: index}
}

func (id PageID) Process() string {
	return id.First
}

func (id PageID) Index() int {
	return id.Second
}

// IsValid reports whether id names a real page (non-empty process, non-negative index).
func (id PageID) IsValid() bool {
	return id.First != "" && id.Second >= 0
}

func (id PageID) String() string {
	if id == InvalidPageID {
		return "Free"
	}
	return id.First + pageInfix + strconv.Itoa(id.Second)
}

// Less orders pages by process id, then by page index.
func (id PageID) Less(other PageID) bool {
	if id.First != other.First {
		return id.First < other.First
	}
	return id.Second < other.Second
}

// Parse reads the "<process>_Page<index>" form produced by String.
func Parse(s string) (PageID, error) {
	s = strings.TrimSpace(s)
	pos := strings.LastIndex(s, pageInfix)
	if pos <= 0 {
		return InvalidPageID, fmt.Errorf("malformed page id %q: expected <process>_Page<index>", s)
	}
	index, err := strconv.Atoi(s[pos+len(pageInfix):])
	if err != nil || index < 0 {
		return InvalidPageID, fmt.Errorf("malformed page id %q: page index must be a non-negative integer", s)
	}
	return New(s[:pos], index), nil
}

// ParseAll parses every element of refs, stopping at the first malformed one.
func ParseAll(refs []string) ([]PageID, error) {
	ids := make([]PageID, 0, len(refs))
	for _, r := range refs {
		id, err := Parse(r)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
