package graphics

import (
	"fmt"
	"path/filepath"
	"sync"

	"cod3rgl/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// ShaderWatcher notices edits to shader source files. It only signals; the
// reload itself must happen on the render thread, so the frame loop polls
// Changed once per frame.
type ShaderWatcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
	changed chan string
	done    chan struct{}
	wg      sync.WaitGroup
}

// NewShaderWatcher watches the directories holding paths and reports
// writes, creations and renames of exactly those files. Directories are
// watched because editors often save by replacing the file.
func NewShaderWatcher(paths ...string) (*ShaderWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create shader watcher: %w", err)
	}

	sw := &ShaderWatcher{
		watcher: w,
		files:   make(map[string]bool),
		changed: make(chan string, 1),
		done:    make(chan struct{}),
	}
	dirs := make(map[string]bool)
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			w.Close()
			return nil, err
		}
		sw.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, fmt.Errorf("could not watch %s: %w", dir, err)
		}
	}

	sw.wg.Add(1)
	go sw.loop()
	return sw, nil
}

func (sw *ShaderWatcher) loop() {
	defer sw.wg.Done()
	log := logging.Logger()
	for {
		select {
		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !sw.files[name] {
				continue
			}
			log.Debug("shader source changed", "path", name, "op", event.Op.String())
			select {
			case sw.changed <- name:
			default:
				// a reload is already pending
			}
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			log.Warn("shader watcher error", "error", err)
		case <-sw.done:
			return
		}
	}
}

// Changed reports, without blocking, whether a watched file changed since
// the last call
func (sw *ShaderWatcher) Changed() bool {
	select {
	case <-sw.changed:
		return true
	default:
		return false
	}
}

// Close stops watching and waits for the watcher goroutine to exit
func (sw *ShaderWatcher) Close() error {
	close(sw.done)
	err := sw.watcher.Close()
	sw.wg.Wait()
	return err
}
