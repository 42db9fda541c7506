package prices

// Store is the editable, ordered price list of an editing session.
//
// Every mutation swaps in a new slice, so slices returned by Entries are never
// modified afterwards.
type Store struct {
	entries []Entry
	next    int64
}

// NewStore returns a store initialised with a copy of entries.
func NewStore(entries []Entry) *Store {
	return &Store{entries: cloneEntries(entries)}
}

// Entries returns the current entries in insertion order.
func (s *Store) Entries() []Entry {
	return cloneEntries(s.entries)
}

func (s *Store) Len() int { return len(s.entries) }

// Get returns the entry with the given id.
func (s *Store) Get(id ID) (Entry, bool) {
	i := s.index(id)
	if i < 0 {
		return Entry{}, false
	}
	return s.entries[i], true
}

// Add appends an empty entry open for editing and returns its pending id.
func (s *Store) Add() ID {
	n := int64(1)
	for _, e := range s.entries {
		if e.ID.Number() >= n {
			n = e.ID.Number() + 1
		}
	}
	if n < s.next {
		n = s.next
	}
	s.next = n + 1

	id := Pending(n)
	entries := make([]Entry, len(s.entries), len(s.entries)+1)
	copy(entries, s.entries)
	s.entries = append(entries, Entry{ID: id, Editing: true})
	return id
}

// Update replaces one field of the entry with the given id.
func (s *Store) Update(id ID, field Field, value string) {
	s.modify(id, func(e *Entry) {
		switch field {
		case FieldLabel:
			e.Label = value
		case FieldValue:
			e.Value = value
		}
	})
}

// ToggleEditing flips the editing flag of the entry with the given id.
func (s *Store) ToggleEditing(id ID) {
	s.modify(id, func(e *Entry) {
		e.Editing = !e.Editing
	})
}

// Remove deletes the entry with the given id.
func (s *Store) Remove(id ID) {
	i := s.index(id)
	if i < 0 {
		return
	}
	entries := make([]Entry, 0, len(s.entries)-1)
	entries = append(entries, s.entries[:i]...)
	s.entries = append(entries, s.entries[i+1:]...)
}

// Editing returns the ids of entries still open for editing.
func (s *Store) Editing() []ID {
	return editingIDs(s.entries)
}

func (s *Store) modify(id ID, fn func(*Entry)) {
	i := s.index(id)
	if i < 0 {
		return
	}
	entries := cloneEntries(s.entries)
	fn(&entries[i])
	s.entries = entries
}

func (s *Store) index(id ID) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func editingIDs(entries []Entry) []ID {
	var ids []ID
	for _, e := range entries {
		if e.Editing {
			ids = append(ids, e.ID)
		}
	}
	return ids
}
