package findreplace

import (
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a document has no search record.
var ErrNotFound = errors.New("no search attributes for document")

// Registry holds the search attributes of every document searched so
// far, keyed by document ID. Records survive focus changes; they are
// removed when their document closes.
type Registry struct {
	attrs map[uuid.UUID]*Attributes
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{attrs: make(map[uuid.UUID]*Attributes)}
}

// Has reports whether the document has a search record.
func (r *Registry) Has(id uuid.UUID) bool {
	_, ok := r.attrs[id]
	return ok
}

// Get returns the document's search record.
func (r *Registry) Get(id uuid.UUID) (*Attributes, error) {
	a, ok := r.attrs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return a, nil
}

// Ensure returns the document's search record, creating one anchored
// at the given cursor and scroll position if none exists yet.
func (r *Registry) Ensure(id uuid.UUID, line, col, firstLine int) *Attributes {
	if a, ok := r.attrs[id]; ok {
		return a
	}
	a := NewAttributes()
	a.Line = line
	a.Col = col
	a.FirstLine = firstLine
	r.attrs[id] = a
	return a
}

// Delete removes the document's record. Missing records are ignored.
func (r *Registry) Delete(id uuid.UUID) {
	delete(r.attrs, id)
}

// ClearAnchors wipes the memorised start positions of every record.
// The records themselves and their current matches stay.
func (r *Registry) ClearAnchors() {
	for _, a := range r.attrs {
		a.Line = -1
		a.Col = -1
	}
}

// IDs returns the documents that have a search record, in no
// particular order.
func (r *Registry) IDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.attrs))
	for id := range r.attrs {
		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of records.
func (r *Registry) Len() int { return len(r.attrs) }
