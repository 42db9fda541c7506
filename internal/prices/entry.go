// Package prices holds the editable price list of a station and the logic to
// synchronise it with the API: which entries to create, update and delete.
package prices

import (
	"strconv"

	"github.com/rubiojr/postos/pkg/api"
)

// ID identifies an entry. Persisted identities come from the API, pending ones
// are assigned locally to entries that were never saved. The two never compare
// equal, even when their numbers match.
type ID struct {
	n       int64
	pending bool
}

// Persisted returns the identity of a price known to the API.
func Persisted(n int64) ID {
	return ID{n: n}
}

// Pending returns a local identity for an unsaved entry.
func Pending(n int64) ID {
	return ID{n: n, pending: true}
}

func (id ID) Pending() bool { return id.pending }

// Number returns the numeric part of the identity.
func (id ID) Number() int64 { return id.n }

func (id ID) String() string {
	if id.pending {
		return "new-" + strconv.FormatInt(id.n, 10)
	}
	return strconv.FormatInt(id.n, 10)
}

// Entry is one fuel type and its price as typed by the user.
type Entry struct {
	ID      ID
	Label   string
	Value   string
	Editing bool
}

// Field names an editable field of an Entry.
type Field int

const (
	FieldLabel Field = iota
	FieldValue
)

// Snapshot is the price list as loaded from the API. It is the baseline the
// edited list is compared against and is never modified.
type Snapshot struct {
	entries []Entry
}

// NewSnapshot captures a copy of entries.
func NewSnapshot(entries []Entry) Snapshot {
	return Snapshot{entries: cloneEntries(entries)}
}

// SnapshotFromStation builds the baseline from a station's price list.
func SnapshotFromStation(s *api.Station) Snapshot {
	entries := make([]Entry, 0, len(s.Prices))
	for _, p := range s.Prices {
		entries = append(entries, Entry{
			ID:    Persisted(p.ID),
			Label: p.Name,
			Value: api.FormatPrice(p.Price),
		})
	}
	return Snapshot{entries: entries}
}

// Entries returns a copy of the snapshot entries.
func (s Snapshot) Entries() []Entry {
	return cloneEntries(s.entries)
}

func (s Snapshot) Len() int { return len(s.entries) }

func cloneEntries(entries []Entry) []Entry {
	if entries == nil {
		return nil
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
