package docmanager

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"graphide/internal/event"
	"graphide/internal/findreplace"
)

func TestOpenFocusesDocument(t *testing.T) {
	m := New(nil)
	doc := m.Open("a.py", "print()", findreplace.KindPlainText)

	id, kind, ed, ok := m.CurrentDocument()
	if !ok {
		t.Fatal("expected a current document")
	}
	if id != doc.ID || kind != findreplace.KindPlainText {
		t.Errorf("unexpected current document %v kind %v", id, kind)
	}
	if ed != findreplace.TextEditor(doc.Editor) {
		t.Error("expected the opened document's editor")
	}
}

func TestAnnotationOpensReadOnly(t *testing.T) {
	m := New(nil)
	doc := m.Open("a.py", "x", findreplace.KindAnnotation)
	if !doc.Editor.ReadOnly() {
		t.Error("expected a read-only editor for an annotation view")
	}
}

func TestClosePublishesEvent(t *testing.T) {
	bus := event.NewBus()
	var closed []uuid.UUID
	bus.Subscribe(event.TopicDocumentClosed, func(evt any) {
		if c, ok := evt.(event.DocumentClosed); ok {
			closed = append(closed, c.ID)
		}
	})

	m := New(bus)
	a := m.Open("a.py", "aa", findreplace.KindPlainText)
	b := m.Open("b.py", "bb", findreplace.KindPlainText)

	if err := m.Close(b.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(closed) != 1 || closed[0] != b.ID {
		t.Fatalf("expected close event for %v, got %v", b.ID, closed)
	}

	// Focus falls back to the remaining document.
	cur, err := m.Current()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cur.ID != a.ID {
		t.Errorf("expected focus to fall back to %v, got %v", a.ID, cur.ID)
	}
}

func TestFocusPublishesEvent(t *testing.T) {
	bus := event.NewBus()
	m := New(bus)
	a := m.Open("a.py", "aa", findreplace.KindPlainText)
	b := m.Open("b.py", "bb", findreplace.KindPlainText)

	var focused []uuid.UUID
	bus.Subscribe(event.TopicDocumentFocused, func(evt any) {
		if f, ok := evt.(event.DocumentFocused); ok {
			focused = append(focused, f.ID)
		}
	})

	if err := m.Focus(a.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Refocusing the current document is silent.
	if err := m.Focus(a.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Closing the focused document announces the fallback focus.
	if err := m.Close(a.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(focused) != 2 || focused[0] != a.ID || focused[1] != b.ID {
		t.Errorf("expected focus events [%v %v], got %v", a.ID, b.ID, focused)
	}
}

func TestCloseUnknown(t *testing.T) {
	m := New(nil)
	if err := m.Close(uuid.New()); !errors.Is(err, ErrNotOpen) {
		t.Errorf("expected ErrNotOpen, got %v", err)
	}
}

func TestFocusSwitches(t *testing.T) {
	m := New(nil)
	a := m.Open("a.py", "aa", findreplace.KindPlainText)
	m.Open("b.py", "bb", findreplace.KindPlainText)

	if err := m.Focus(a.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	id, _, _, _ := m.CurrentDocument()
	if id != a.ID {
		t.Errorf("expected %v focused, got %v", a.ID, id)
	}

	if err := m.Focus(uuid.New()); !errors.Is(err, ErrNotOpen) {
		t.Errorf("expected ErrNotOpen, got %v", err)
	}
}

func TestNoCurrentDocument(t *testing.T) {
	m := New(nil)
	if _, err := m.Current(); !errors.Is(err, ErrNoCurrent) {
		t.Errorf("expected ErrNoCurrent, got %v", err)
	}
	if _, _, _, ok := m.CurrentDocument(); ok {
		t.Error("expected no current document")
	}
}

func TestOpenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.txt")
	if err := os.WriteFile(path, []byte("file content"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := New(nil)
	doc, err := m.OpenFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := doc.Editor.Text(); got != "file content" {
		t.Errorf("unexpected content %q", got)
	}

	if _, err := m.OpenFile(path); !errors.Is(err, ErrAlreadyOpen) {
		t.Errorf("expected ErrAlreadyOpen, got %v", err)
	}
}

func TestEditorByID(t *testing.T) {
	m := New(nil)
	doc := m.Open("a.py", "aa", findreplace.KindPlainText)

	ed, ok := m.EditorByID(doc.ID)
	if !ok || ed == nil {
		t.Fatal("expected the editor")
	}
	if _, ok := m.EditorByID(uuid.New()); ok {
		t.Error("expected lookup failure for an unknown id")
	}
}

func TestDocumentsOrder(t *testing.T) {
	m := New(nil)
	a := m.Open("a.py", "", findreplace.KindPlainText)
	b := m.Open("b.py", "", findreplace.KindPlainText)

	docs := m.Documents()
	if len(docs) != 2 || docs[0].ID != a.ID || docs[1].ID != b.ID {
		t.Errorf("expected opening order, got %v", docs)
	}
}
