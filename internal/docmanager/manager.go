// Package docmanager tracks the open documents and which one has the
// focus. It implements the document lookup the find/replace engine
// searches through and publishes lifecycle events on the bus.
package docmanager

import (
	"errors"
	"os"

	"github.com/google/uuid"

	"graphide/internal/editor"
	"graphide/internal/event"
	"graphide/internal/findreplace"
)

// Errors returned by manager operations.
var (
	ErrNotOpen     = errors.New("document not open")
	ErrAlreadyOpen = errors.New("document already open")
	ErrNoCurrent   = errors.New("no current document")
)

// Document is an open document: its identity, its kind and the editor
// holding its text.
type Document struct {
	ID     uuid.UUID
	Path   string
	Kind   findreplace.DocKind
	Editor *editor.Editor
}

// Manager owns the open document table.
// Not safe for concurrent use; it runs on the UI event loop.
type Manager struct {
	bus *event.Bus

	docs    map[uuid.UUID]*Document
	order   []uuid.UUID
	current uuid.UUID
}

// New creates an empty manager. bus may be nil for headless use.
func New(bus *event.Bus) *Manager {
	return &Manager{
		bus:  bus,
		docs: make(map[uuid.UUID]*Document),
	}
}

// Open registers a document holding the given text and focuses it.
// Annotation documents get a read-only editor.
func (m *Manager) Open(path, text string, kind findreplace.DocKind, opts ...editor.Option) *Document {
	if kind == findreplace.KindAnnotation {
		opts = append(opts, editor.WithReadOnly())
	}
	doc := &Document{
		ID:     uuid.New(),
		Path:   path,
		Kind:   kind,
		Editor: editor.New(text, opts...),
	}
	m.docs[doc.ID] = doc
	m.order = append(m.order, doc.ID)
	m.current = doc.ID

	m.publish(event.DocumentOpened{ID: doc.ID, Path: path})
	m.publish(event.DocumentFocused{ID: doc.ID})
	return doc
}

// OpenFile reads a file from disk and opens it as plain text.
func (m *Manager) OpenFile(path string, opts ...editor.Option) (*Document, error) {
	for _, doc := range m.docs {
		if doc.Path == path {
			return nil, ErrAlreadyOpen
		}
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return m.Open(path, string(content), findreplace.KindPlainText, opts...), nil
}

// Close removes a document and publishes the close event so search
// records referencing it get dropped.
func (m *Manager) Close(id uuid.UUID) error {
	if _, ok := m.docs[id]; !ok {
		return ErrNotOpen
	}
	delete(m.docs, id)
	for i, other := range m.order {
		if other == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	refocused := false
	if m.current == id {
		m.current = uuid.Nil
		if n := len(m.order); n > 0 {
			m.current = m.order[n-1]
		}
		refocused = m.current != uuid.Nil
	}

	m.publish(event.DocumentClosed{ID: id})
	if refocused {
		m.publish(event.DocumentFocused{ID: m.current})
	}
	return nil
}

// Focus makes a document current and announces the change so the
// search controllers re-bind to it.
func (m *Manager) Focus(id uuid.UUID) error {
	if _, ok := m.docs[id]; !ok {
		return ErrNotOpen
	}
	if m.current == id {
		return nil
	}
	m.current = id
	m.publish(event.DocumentFocused{ID: id})
	return nil
}

// Get returns an open document.
func (m *Manager) Get(id uuid.UUID) (*Document, bool) {
	doc, ok := m.docs[id]
	return doc, ok
}

// Current returns the focused document.
func (m *Manager) Current() (*Document, error) {
	doc, ok := m.docs[m.current]
	if !ok {
		return nil, ErrNoCurrent
	}
	return doc, nil
}

// Documents returns the open documents in opening order.
func (m *Manager) Documents() []*Document {
	out := make([]*Document, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.docs[id])
	}
	return out
}

// Count returns the number of open documents.
func (m *Manager) Count() int { return len(m.docs) }

// CurrentDocument implements findreplace.Manager.
func (m *Manager) CurrentDocument() (uuid.UUID, findreplace.DocKind, findreplace.TextEditor, bool) {
	doc, ok := m.docs[m.current]
	if !ok {
		return uuid.Nil, findreplace.KindOther, nil, false
	}
	return doc.ID, doc.Kind, doc.Editor, true
}

// EditorByID implements findreplace.Manager.
func (m *Manager) EditorByID(id uuid.UUID) (findreplace.TextEditor, bool) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, false
	}
	return doc.Editor, true
}

func (m *Manager) publish(evt event.TopicProvider) {
	if m.bus == nil {
		return
	}
	_ = m.bus.Publish(evt)
}
