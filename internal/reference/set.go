// Package reference keeps the ground truth the filter is graded against.
package reference

import "errors"

var ErrBadCapacity = errors.New("reference: capacity must be positive")

// Cell is one position of the set. Filled is false for a free cell.
type Cell struct {
	Filled bool
	Text   string
}

// Set is an ordered, fixed-capacity list of inserted strings.
type Set struct {
	cells []Cell
}

func New(capacity int) (*Set, error) {
	if capacity <= 0 {
		return nil, ErrBadCapacity
	}
	return &Set{cells: make([]Cell, capacity)}, nil
}

func (s *Set) Capacity() int { return len(s.cells) }

// Add puts text in the first free cell. It returns false when the set is full.
// Duplicates are stored again, like every other insert.
func (s *Set) Add(text string) bool {
	for i := range s.cells {
		if !s.cells[i].Filled {
			s.cells[i] = Cell{Filled: true, Text: text}
			return true
		}
	}
	return false
}

func (s *Set) Contains(text string) bool {
	for _, c := range s.cells {
		if c.Filled && c.Text == text {
			return true
		}
	}
	return false
}

// Len counts filled cells.
func (s *Set) Len() int {
	n := 0
	for _, c := range s.cells {
		if c.Filled {
			n++
		}
	}
	return n
}

func (s *Set) Reset() {
	clear(s.cells)
}

func (s *Set) Snapshot() []Cell {
	return append([]Cell(nil), s.cells...)
}
