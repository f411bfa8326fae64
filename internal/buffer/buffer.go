// Package buffer presents a file on disk as an Ace-style editor so the
// editor surface can highlight it and follow it as it is edited.
package buffer

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hypelessli/hypeless/internal/surface/editor"
)

// Marker is one highlighted range in the buffer.
type Marker struct {
	ID    int
	Range editor.AceRange
	Class string
}

// File is an in-memory copy of a file plus its markers. It implements
// editor.AceEditor and editor.AceSession.
type File struct {
	path string

	mu        sync.Mutex
	content   string
	listeners map[int]func()
	nextL     int
	markers   map[int]Marker
	nextM     int
}

var (
	_ editor.AceEditor  = (*File)(nil)
	_ editor.AceSession = (*File)(nil)
)

// Open reads path into a new buffer.
func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return &File{
		path:      path,
		content:   string(data),
		listeners: make(map[int]func()),
		markers:   make(map[int]Marker),
	}, nil
}

// Path returns the file location.
func (f *File) Path() string { return f.path }

// GetValue returns the buffered content.
func (f *File) GetValue() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.content
}

// On registers fn for "change" events. Other events are ignored.
func (f *File) On(event string, fn func()) func() {
	if event != "change" {
		return func() {}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextL++
	id := f.nextL
	f.listeners[id] = fn
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.listeners, id)
	}
}

// Session returns the buffer itself.
func (f *File) Session() editor.AceSession { return f }

// AddMarker records a marker and returns its id.
func (f *File) AddMarker(r editor.AceRange, class, _ string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextM++
	f.markers[f.nextM] = Marker{ID: f.nextM, Range: r, Class: class}
	return f.nextM
}

// RemoveMarker drops a marker. Unknown ids are ignored.
func (f *File) RemoveMarker(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.markers, id)
}

// Markers returns the current markers in document order.
func (f *File) Markers() []Marker {
	f.mu.Lock()
	out := make([]Marker, 0, len(f.markers))
	for _, m := range f.markers {
		out = append(out, m)
	}
	f.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Range, out[j].Range
		if a.StartRow != b.StartRow {
			return a.StartRow < b.StartRow
		}
		if a.StartColumn != b.StartColumn {
			return a.StartColumn < b.StartColumn
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// SetValue replaces the content and notifies listeners when it changed.
func (f *File) SetValue(content string) {
	f.mu.Lock()
	if content == f.content {
		f.mu.Unlock()
		return
	}
	f.content = content
	fns := make([]func(), 0, len(f.listeners))
	for _, fn := range f.listeners {
		fns = append(fns, fn)
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Reload reads the file again.
func (f *File) Reload() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", f.path, err)
	}
	f.SetValue(string(data))
	return nil
}

// settle is how long Watch waits after the last event before reloading.
// A plain write shows up as a truncate followed by a write, and reading in
// between would publish an empty buffer.
const settle = 50 * time.Millisecond

// Watch reloads the buffer whenever the file is written until ctx ends.
// The parent directory is watched so that editors which save by renaming
// a temporary file are followed too. Bursts of events are coalesced into
// one reload.
func (f *File) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(f.path)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", f.path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	timer := time.NewTimer(settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			timer.Reset(settle)
		case <-timer.C:
			if err := f.Reload(); err != nil {
				log.Printf("buffer: %v", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("buffer: watcher: %v", err)
		}
	}
}
