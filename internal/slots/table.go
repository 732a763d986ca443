package slots

import "errors"

var ErrBadSize = errors.New("slots: size and capacity must be positive")

// Item is one display cell under a slot.
type Item struct {
	Occupied    bool
	Text        string
	Highlighted bool
}

// Slot is one hash-addressable bucket. Enabled is sticky until Reset;
// PossiblyMatched only describes the latest query.
type Slot struct {
	Enabled         bool
	PossiblyMatched bool
	Children        []Item
}

// Table is a fixed number of slots, each with a fixed number of child cells.
// It is not safe for concurrent use; the owner serializes access.
type Table struct {
	slots    []Slot
	capacity int
}

func New(size, capacity int) (*Table, error) {
	if size <= 0 || capacity <= 0 {
		return nil, ErrBadSize
	}
	t := &Table{
		slots:    make([]Slot, size),
		capacity: capacity,
	}
	t.Reset()
	return t, nil
}

func (t *Table) Size() int     { return len(t.slots) }
func (t *Table) Capacity() int { return t.capacity }

// Enabled reports whether any insertion has hashed to idx.
func (t *Table) Enabled(idx int) bool {
	return t.slots[idx].Enabled
}

// Store enables slot idx and records text in its first free child cell.
// It returns false when the child list is full; the slot is enabled anyway.
func (t *Table) Store(idx int, text string) bool {
	s := &t.slots[idx]
	s.Enabled = true
	for i := range s.Children {
		if !s.Children[i].Occupied {
			s.Children[i] = Item{Occupied: true, Text: text}
			return true
		}
	}
	return false
}

// Mark flags slot idx as possibly matching the current query and highlights
// the first child holding text, if any.
func (t *Table) Mark(idx int, text string) {
	s := &t.slots[idx]
	s.PossiblyMatched = true
	for i := range s.Children {
		c := &s.Children[i]
		if c.Occupied && c.Text == text {
			c.Highlighted = true
			return
		}
	}
}

// ClearMarks drops every query-scoped flag.
func (t *Table) ClearMarks() {
	for i := range t.slots {
		t.slots[i].PossiblyMatched = false
		for j := range t.slots[i].Children {
			t.slots[i].Children[j].Highlighted = false
		}
	}
}

// Reset returns every slot to its disabled, empty state.
func (t *Table) Reset() {
	for i := range t.slots {
		children := t.slots[i].Children
		if len(children) != t.capacity {
			children = make([]Item, t.capacity)
		} else {
			clear(children)
		}
		t.slots[i] = Slot{Children: children}
	}
}

// Snapshot returns a deep copy of the table.
func (t *Table) Snapshot() []Slot {
	out := make([]Slot, len(t.slots))
	for i, s := range t.slots {
		out[i] = Slot{
			Enabled:         s.Enabled,
			PossiblyMatched: s.PossiblyMatched,
			Children:        append([]Item(nil), s.Children...),
		}
	}
	return out
}

// Unmarked returns a copy of slots with every query-scoped flag cleared.
func Unmarked(slots []Slot) []Slot {
	out := make([]Slot, len(slots))
	for i, s := range slots {
		children := make([]Item, len(s.Children))
		for j, c := range s.Children {
			c.Highlighted = false
			children[j] = c
		}
		out[i] = Slot{Enabled: s.Enabled, Children: children}
	}
	return out
}
