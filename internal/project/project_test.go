package project

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"graphide/internal/event"
)

func projectPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "project.toml")
}

func TestLoadMissingFileYieldsEmptyProject(t *testing.T) {
	p, err := Load(projectPath(t), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := p.FindHistory(); len(got) != 0 {
		t.Errorf("expected empty find history, got %v", got)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := projectPath(t)

	p, err := Load(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.SetReplaceHistory([]string{"foo", "bar"}, []string{"baz"})

	again, err := Load(path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	find := again.FindHistory()
	if len(find) != 2 || find[0] != "foo" || find[1] != "bar" {
		t.Errorf("unexpected find history %v", find)
	}
	replace := again.ReplaceHistory()
	if len(replace) != 1 || replace[0] != "baz" {
		t.Errorf("unexpected replace history %v", replace)
	}
}

func TestLoadParseError(t *testing.T) {
	path := projectPath(t)
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, nil); err == nil {
		t.Error("expected a parse error")
	}
}

func TestLoadPublishesProjectChanged(t *testing.T) {
	bus := event.NewBus()
	var got []string
	bus.Subscribe(event.TopicProjectChanged, func(evt any) {
		if c, ok := evt.(event.ProjectChanged); ok {
			got = append(got, c.Path)
		}
	})

	path := projectPath(t)
	if _, err := Load(path, bus); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != path {
		t.Errorf("expected one change event for %q, got %v", path, got)
	}
}

func TestReloadPublishesOnlyOnChange(t *testing.T) {
	path := projectPath(t)
	bus := event.NewBus()
	p, err := Load(path, bus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.SetFindHistory([]string{"one"})

	changes := 0
	bus.Subscribe(event.TopicProjectChanged, func(any) { changes++ })

	// Reloading the file the project itself just wrote is silent.
	if err := p.Reload(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changes != 0 {
		t.Fatalf("expected no event for an unchanged file, got %d", changes)
	}

	// An external edit is announced.
	external := "[search]\nfind_history = [\"two\"]\n"
	if err := os.WriteFile(path, []byte(external), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := p.Reload(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changes != 1 {
		t.Errorf("expected one event after external edit, got %d", changes)
	}
	if got := p.FindHistory(); len(got) != 1 || got[0] != "two" {
		t.Errorf("expected reloaded history [two], got %v", got)
	}
}

func TestWatchPicksUpExternalEdit(t *testing.T) {
	path := projectPath(t)
	bus := event.NewBus()
	p, err := Load(path, bus)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	changed := make(chan struct{}, 4)
	bus.Subscribe(event.TopicProjectChanged, func(any) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	stop, err := p.Watch()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer stop()

	external := "[search]\nfind_history = [\"external\"]\n"
	if err := os.WriteFile(path, []byte(external), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("watch never reported the external edit")
	}
	if got := p.FindHistory(); len(got) != 1 || got[0] != "external" {
		t.Errorf("expected reloaded history [external], got %v", got)
	}
}

func TestWatchDeliversReloadsThroughRunner(t *testing.T) {
	path := projectPath(t)
	bus := event.NewBus()

	pending := make(chan func(), 4)
	p, err := Load(path, bus, WithRunner(func(fn func()) {
		select {
		case pending <- fn:
		default:
		}
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stop, err := p.Watch()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer stop()

	external := "[search]\nfind_history = [\"queued\"]\n"
	if err := os.WriteFile(path, []byte(external), 0o644); err != nil {
		t.Fatal(err)
	}

	var fn func()
	select {
	case fn = <-pending:
	case <-time.After(5 * time.Second):
		t.Fatal("watch never handed the reload to the runner")
	}

	// Nothing is applied until the runner executes the function.
	if got := p.FindHistory(); len(got) != 0 {
		t.Fatalf("expected no reload before the runner runs, got %v", got)
	}
	fn()
	if got := p.FindHistory(); len(got) != 1 || got[0] != "queued" {
		t.Errorf("expected reloaded history [queued], got %v", got)
	}
}

func TestSaveWithoutPath(t *testing.T) {
	p := &Project{}
	if err := p.Save(); err != ErrNoPath {
		t.Errorf("expected ErrNoPath, got %v", err)
	}
}
