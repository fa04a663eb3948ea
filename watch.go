package gardenpub

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher republishes the vault when markdown files change. Events are
// debounced so a burst of editor writes triggers a single publish run.
type Watcher struct {
	publisher *Publisher
	debounce  time.Duration
	onPublish func(PublishResult)
}

// NewWatcher creates a Watcher over the publisher's vault. onPublish, if
// non-nil, runs after every successful publish (e.g. to invalidate a
// cache).
func NewWatcher(p *Publisher, onPublish func(PublishResult)) *Watcher {
	return &Watcher{
		publisher: p,
		debounce:  500 * time.Millisecond,
		onPublish: onPublish,
	}
}

// Run watches the vault until ctx is cancelled. New subdirectories are
// picked up as they appear; dotted directories are ignored.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := addRecursive(fw, w.publisher.VaultDir); err != nil {
		return err
	}

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if isDotted(ev.Name) {
				continue
			}
			// Watch directories created after startup.
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = addRecursive(fw, ev.Name)
				}
			}
			if !strings.HasSuffix(ev.Name, ".md") {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Printf("gardenpub: watch error: %v", err)

		case <-fire:
			res, err := w.publisher.PublishAll(ctx)
			if err != nil {
				log.Printf("gardenpub: publish failed: %v", err)
				continue
			}
			log.Printf("gardenpub: published %d, unchanged %d, removed %d",
				res.Published, res.Unchanged, res.Removed)
			if w.onPublish != nil {
				w.onPublish(res)
			}
		}
	}
}

func addRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if strings.HasPrefix(info.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}

func isDotted(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if strings.HasPrefix(part, ".") && part != "." && part != ".." {
			return true
		}
	}
	return false
}
