package state

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/Paintersrp/markedit/internal/pathutil"
)

// FileChangedMsg reports that the watched file was written, replaced or
// removed on disk.
type FileChangedMsg struct {
	Path    string
	Removed bool
}

type FileWatcherErrMsg struct {
	Err error
}

// FileWatcher watches a single file. It watches the parent directory so that
// editors which save by rename are still seen.
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	done     chan struct{}
	once     sync.Once
	mu       sync.Mutex
	onChange func(string)
	onClose  func()
}

func NewFileWatcher(path string) (*FileWatcher, error) {
	normalized := pathutil.NormalizePath(pathutil.ExpandHome(path))
	if normalized == "" {
		return nil, errors.New("file path cannot be empty")
	}
	abs, err := filepath.Abs(normalized)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watcher := &FileWatcher{
		watcher: w,
		path:    abs,
		done:    make(chan struct{}),
	}

	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	return watcher, nil
}

func (w *FileWatcher) Path() string {
	if w == nil {
		return ""
	}
	return w.path
}

// Start returns a command that blocks until the next relevant event. The
// update loop re-issues it after each message.
func (w *FileWatcher) Start() tea.Cmd {
	if w == nil {
		return nil
	}

	return func() tea.Msg {
		for {
			select {
			case <-w.done:
				return nil
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}
				if !w.isRelevant(event) {
					continue
				}

				removed := false
				if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
					if _, err := os.Stat(w.path); err != nil {
						removed = true
					}
				}

				w.mu.Lock()
				fn := w.onChange
				w.mu.Unlock()
				if fn != nil {
					fn(w.path)
				}

				return FileChangedMsg{Path: w.path, Removed: removed}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil {
					return FileWatcherErrMsg{Err: err}
				}
			}
		}
	}
}

func (w *FileWatcher) Close() error {
	if w == nil {
		return nil
	}

	var closeErr error
	w.once.Do(func() {
		close(w.done)
		closeErr = w.watcher.Close()
		if w.onClose != nil {
			w.onClose()
		}
	})

	return closeErr
}

// OnChange registers a callback that receives the file path whenever the
// watcher detects a relevant change.
func (w *FileWatcher) OnChange(fn func(string)) {
	if w == nil {
		return
	}
	w.mu.Lock()
	w.onChange = fn
	w.mu.Unlock()
}

// OnClose registers a callback that is invoked exactly once when the watcher
// shuts down.
func (w *FileWatcher) OnClose(fn func()) {
	if w == nil {
		return
	}
	w.onClose = fn
}

func (w *FileWatcher) isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return pathutil.NormalizePath(event.Name) == w.path
}
