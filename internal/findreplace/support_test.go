package findreplace

import (
	"time"

	"github.com/google/uuid"

	"graphide/internal/editor"
	"graphide/internal/event"
)

type fakeDoc struct {
	id   uuid.UUID
	kind DocKind
	ed   *editor.Editor
}

type fakeManager struct {
	docs    []*fakeDoc
	current int
}

func (m *fakeManager) CurrentDocument() (uuid.UUID, DocKind, TextEditor, bool) {
	if m.current < 0 || m.current >= len(m.docs) {
		return uuid.Nil, KindOther, nil, false
	}
	d := m.docs[m.current]
	return d.id, d.kind, d.ed, true
}

func (m *fakeManager) EditorByID(id uuid.UUID) (TextEditor, bool) {
	for _, d := range m.docs {
		if d.id == id {
			return d.ed, true
		}
	}
	return nil, false
}

func (m *fakeManager) add(text string, kind DocKind, opts ...editor.Option) *fakeDoc {
	d := &fakeDoc{id: uuid.New(), kind: kind, ed: editor.New(text, opts...)}
	m.docs = append(m.docs, d)
	return d
}

type fakeStore struct {
	find    []string
	replace []string
}

func (s *fakeStore) FindHistory() []string        { return s.find }
func (s *fakeStore) SetFindHistory(items []string) { s.find = items }
func (s *fakeStore) ReplaceHistory() []string     { return s.replace }
func (s *fakeStore) SetReplaceHistory(find, replace []string) {
	s.find = find
	s.replace = replace
}

type fakeNotifier struct {
	last    string
	timed   []string
	cleared int
}

func (n *fakeNotifier) Show(msg string) { n.last = msg }
func (n *fakeNotifier) ShowTimed(msg string, _ time.Duration) {
	n.last = msg
	n.timed = append(n.timed, msg)
}
func (n *fakeNotifier) Clear() {
	n.last = ""
	n.cleared++
}

type finderEnv struct {
	manager  *fakeManager
	store    *fakeStore
	notifier *fakeNotifier
	bus      *event.Bus
	finder   *Finder
}

func newFinderEnv(text string) (*finderEnv, *fakeDoc) {
	env := &finderEnv{
		manager:  &fakeManager{},
		store:    &fakeStore{},
		notifier: &fakeNotifier{},
		bus:      event.NewBus(),
	}
	doc := env.manager.add(text, KindPlainText)
	env.finder = NewFinder(env.manager, env.store, env.notifier, env.bus)
	return env, doc
}

type replacerEnv struct {
	manager  *fakeManager
	store    *fakeStore
	notifier *fakeNotifier
	bus      *event.Bus
	replacer *Replacer
}

func newReplacerEnv(text string) (*replacerEnv, *fakeDoc) {
	env := &replacerEnv{
		manager:  &fakeManager{},
		store:    &fakeStore{},
		notifier: &fakeNotifier{},
		bus:      event.NewBus(),
	}
	doc := env.manager.add(text, KindPlainText)
	env.replacer = NewReplacer(env.manager, env.store, env.notifier, env.bus)
	return env, doc
}
