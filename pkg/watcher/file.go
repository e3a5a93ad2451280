package watcher

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// File is a file watcher that notifies when a file has been changed
type File struct {
	watcher  *fsnotify.Watcher
	shutdown chan struct{}
	once     sync.Once
}

// NewFile is a standard init function
func NewFile() (*File, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "watcher: create fsnotify watcher")
	}
	f := &File{
		watcher:  watcher,
		shutdown: make(chan struct{}),
	}
	return f, nil
}

// Add adds a file to start watching
func (f *File) Add(filepath string) error {
	return f.watcher.Add(filepath)
}

// Shutdown stop the file watching run loop
func (f *File) Shutdown() {
	f.once.Do(func() {
		close(f.shutdown)
	})
}

// Start is a runloop to watch for files changes from the file paths added from Add()
func (f *File) Start(notifier Notification) {
	defer f.watcher.Close()
	for {
		select {
		case event, ok := <-f.watcher.Events:
			if !ok {
				return
			}
			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
				notifier.WatcherItemDidChange(event.Name)
			case event.Has(fsnotify.Rename), event.Has(fsnotify.Remove):
				// editors replace the file on save, which drops the watch
				if err := f.watcher.Add(event.Name); err == nil {
					notifier.WatcherItemDidChange(event.Name)
				}
			}
		case err, ok := <-f.watcher.Errors:
			if !ok {
				return
			}
			notifier.WatcherDidError(err)
		case <-f.shutdown:
			return
		}
	}
}
