// Package project persists per-project state, most importantly the
// find and replace histories, in a TOML project file. An fsnotify
// watch picks up external edits to the file and republishes the
// loaded state on the event bus.
package project

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	toml "github.com/pelletier/go-toml/v2"

	"graphide/internal/event"
)

// ErrNoPath is returned when saving a project that has no file path.
var ErrNoPath = errors.New("project has no file path")

// fileFormat is the on-disk TOML layout.
type fileFormat struct {
	Name   string        `toml:"name,omitempty"`
	Search searchSection `toml:"search"`
}

type searchSection struct {
	FindHistory    []string `toml:"find_history"`
	ReplaceHistory []string `toml:"replace_history"`
}

// Option configures a Project.
type Option func(*Project)

// WithLogger sets the logger used for watch and save diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(p *Project) {
		if log != nil {
			p.log = log
		}
	}
}

// WithRunner routes reloads triggered by the file watch through run.
// The application passes a function that executes on its event loop,
// so watch-driven reloads never touch subscriber state concurrently.
func WithRunner(run func(fn func())) Option {
	return func(p *Project) {
		if run != nil {
			p.run = run
		}
	}
}

// Project is the loaded project state. It implements the history
// store the find/replace engine persists through.
// Safe for concurrent use; the file watch runs on its own goroutine.
type Project struct {
	mu sync.Mutex

	path string
	name string

	findHistory    []string
	replaceHistory []string

	bus *event.Bus
	log *slog.Logger
	run func(fn func())
}

// Load reads the project file at path. A missing file yields an empty
// project that saves to that path later. The loaded state is announced
// on the bus.
func Load(path string, bus *event.Bus, opts ...Option) (*Project, error) {
	p := &Project{
		path: path,
		bus:  bus,
		log:  slog.Default(),
		run:  func(fn func()) { fn() },
	}
	for _, opt := range opts {
		opt(p)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			p.publishChanged()
			return p, nil
		}
		return nil, fmt.Errorf("reading project file %s: %w", path, err)
	}

	var file fileFormat
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing project file %s: %w", path, err)
	}
	p.apply(file)
	p.publishChanged()
	return p, nil
}

func (p *Project) apply(file fileFormat) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.name = file.Name
	p.findHistory = append([]string(nil), file.Search.FindHistory...)
	p.replaceHistory = append([]string(nil), file.Search.ReplaceHistory...)
}

// Name returns the project name from the file, if any.
func (p *Project) Name() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.name
}

// Path returns the project file path.
func (p *Project) Path() string { return p.path }

// FindHistory returns the persisted find history, most recent first.
func (p *Project) FindHistory() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.findHistory...)
}

// SetFindHistory replaces the find history and saves the project.
func (p *Project) SetFindHistory(items []string) {
	p.mu.Lock()
	p.findHistory = append([]string(nil), items...)
	p.mu.Unlock()
	p.saveLogged()
}

// ReplaceHistory returns the persisted replacement history.
func (p *Project) ReplaceHistory() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.replaceHistory...)
}

// SetReplaceHistory replaces both histories in one save, keeping the
// pair consistent on disk.
func (p *Project) SetReplaceHistory(find, replace []string) {
	p.mu.Lock()
	p.findHistory = append([]string(nil), find...)
	p.replaceHistory = append([]string(nil), replace...)
	p.mu.Unlock()
	p.saveLogged()
}

// Save writes the project file.
func (p *Project) Save() error {
	if p.path == "" {
		return ErrNoPath
	}

	p.mu.Lock()
	file := fileFormat{
		Name: p.name,
		Search: searchSection{
			FindHistory:    append([]string(nil), p.findHistory...),
			ReplaceHistory: append([]string(nil), p.replaceHistory...),
		},
	}
	p.mu.Unlock()

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encoding project file: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return fmt.Errorf("writing project file %s: %w", p.path, err)
	}
	return nil
}

func (p *Project) saveLogged() {
	if err := p.Save(); err != nil {
		p.log.Error("project save failed", "path", p.path, "error", err)
	}
}

// Reload re-reads the project file. The change is announced on the
// bus only when the loaded state differs from memory, so reloads
// triggered by the project's own saves stay silent.
func (p *Project) Reload() error {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("reading project file %s: %w", p.path, err)
	}
	var file fileFormat
	if err := toml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing project file %s: %w", p.path, err)
	}

	p.mu.Lock()
	changed := file.Name != p.name ||
		!equalStrings(file.Search.FindHistory, p.findHistory) ||
		!equalStrings(file.Search.ReplaceHistory, p.replaceHistory)
	p.mu.Unlock()

	if !changed {
		return nil
	}
	p.apply(file)
	p.publishChanged()
	return nil
}

// Watch starts watching the project file for external modification.
// The returned stop function ends the watch.
func (p *Project) Watch() (func(), error) {
	if p.path == "" {
		return nil, ErrNoPath
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors replace files by rename, which
	// drops a watch set on the file itself.
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		watcher.Close()
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Name != p.path {
					continue
				}
				if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
					continue
				}
				p.run(func() {
					if err := p.Reload(); err != nil {
						p.log.Warn("project reload failed", "path", p.path, "error", err)
					}
				})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				p.log.Warn("project watch error", "path", p.path, "error", err)
			}
		}
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(done)
			watcher.Close()
		})
	}
	return stop, nil
}

func (p *Project) publishChanged() {
	if p.bus == nil {
		return
	}
	_ = p.bus.Publish(event.ProjectChanged{Path: p.path})
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
