package watch

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Debounce is how long a file must be quiet before its change is reported
const Debounce = 100 * time.Millisecond

// ChangeKind describes the type of file change detected
type ChangeKind int

const (
	ChangeModified ChangeKind = iota
	ChangeRemoved
)

func (k ChangeKind) String() string {
	if k == ChangeRemoved {
		return "removed"
	}
	return "modified"
}

// Change is a settled change to one watched file
type Change struct {
	Kind ChangeKind
	File string // absolute path
}

// Watcher reports changes to a fixed set of files. It watches their parent
// directories so that editors which replace files on save are still seen.
type Watcher struct {
	Files   []string
	Changes <-chan Change

	changes chan Change
	done    chan struct{}
	files   map[string]bool
	started bool
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher for the given files
func NewWatcher(files ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	set := make(map[string]bool, len(files))
	abs := make([]string, 0, len(files))
	for _, f := range files {
		p, err := filepath.Abs(f)
		if err != nil {
			fw.Close()
			return nil, err
		}
		if !set[p] {
			set[p] = true
			abs = append(abs, p)
		}
	}

	ch := make(chan Change, 16)
	return &Watcher{
		Files:   abs,
		Changes: ch,
		changes: ch,
		done:    make(chan struct{}),
		files:   set,
		watcher: fw,
	}, nil
}

// Start begins watching
func (w *Watcher) Start() error {
	dirs := make(map[string]bool)
	for _, f := range w.Files {
		dir := filepath.Dir(f)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
	}

	w.started = true
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel
func (w *Watcher) Stop() {
	w.watcher.Close()
	if w.started {
		<-w.done
	}
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(Debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				for file := range pending {
					w.emit(file)
				}
				return
			}

			if !w.files[filepath.Clean(event.Name)] {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending[filepath.Clean(event.Name)] = time.Now()
			}

		case <-ticker.C:
			now := time.Now()
			for file, t := range pending {
				if now.Sub(t) >= Debounce {
					w.emit(file)
					delete(pending, file)
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

// emit reports a change, dropping it when the consumer is behind since a
// queued change already triggers the same work
func (w *Watcher) emit(file string) {
	kind := ChangeModified
	if _, err := os.Stat(file); os.IsNotExist(err) {
		kind = ChangeRemoved
	}

	select {
	case w.changes <- Change{Kind: kind, File: file}:
	default:
	}
}
