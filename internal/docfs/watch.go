package docfs

import (
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
)

// selfWriteGrace is how long after a write made through the Watcher events
// for that file are ignored.
const selfWriteGrace = time.Second

// Watcher reports local documents that were changed on disk by someone
// else. Files are watched through their directory so that editors which
// replace files are noticed as well.
type Watcher struct {
	w *fsnotify.Watcher

	lock    sync.Mutex
	files   map[string]bool
	dirs    map[string]int
	written map[string]time.Time
	changed map[string]bool
	done    chan struct{}
}

func NewWatcher() (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	wt := &Watcher{
		w:       w,
		files:   map[string]bool{},
		dirs:    map[string]int{},
		written: map[string]time.Time{},
		changed: map[string]bool{},
		done:    make(chan struct{}),
	}
	go wt.run()
	return wt, nil
}

func (wt *Watcher) run() {
	defer close(wt.done)
	for {
		select {
		case ev, ok := <-wt.w.Events:
			if !ok {
				return
			}
			wt.handle(ev)
		case err, ok := <-wt.w.Errors:
			if !ok {
				return
			}
			dbg("Watcher: %v", err)
		}
	}
}

func (wt *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return
	}
	name := filepath.Clean(ev.Name)

	wt.lock.Lock()
	defer wt.lock.Unlock()

	if !wt.files[name] {
		return
	}
	if t, ok := wt.written[name]; ok && time.Since(t) < selfWriteGrace {
		dbg("Watcher: ignoring own write to %s", name)
		return
	}
	dbg("Watcher: %s changed (%s)", name, ev.Op)
	wt.changed[name] = true
}

func absPath(path string) (string, error) {
	p, err := homedir.Expand(path)
	if err != nil {
		return "", err
	}
	return filepath.Abs(p)
}

// Watch starts watching the local file path. Remote paths are ignored.
func (wt *Watcher) Watch(path string) error {
	if IsRemote(path) {
		return nil
	}
	p, err := absPath(path)
	if err != nil {
		return err
	}

	wt.lock.Lock()
	defer wt.lock.Unlock()

	if wt.files[p] {
		return nil
	}
	dir := filepath.Dir(p)
	if wt.dirs[dir] == 0 {
		if err := wt.w.Add(dir); err != nil {
			return err
		}
	}
	wt.dirs[dir]++
	wt.files[p] = true
	return nil
}

// Unwatch stops watching path.
func (wt *Watcher) Unwatch(path string) error {
	p, err := absPath(path)
	if err != nil {
		return err
	}

	wt.lock.Lock()
	defer wt.lock.Unlock()

	if !wt.files[p] {
		return nil
	}
	delete(wt.files, p)
	delete(wt.changed, p)
	dir := filepath.Dir(p)
	wt.dirs[dir]--
	if wt.dirs[dir] == 0 {
		delete(wt.dirs, dir)
		return wt.w.Remove(dir)
	}
	return nil
}

// Drain returns the files that changed since the last call, in sorted
// order.
func (wt *Watcher) Drain() []string {
	wt.lock.Lock()
	defer wt.lock.Unlock()

	l := make([]string, 0, len(wt.changed))
	for f := range wt.changed {
		l = append(l, f)
	}
	wt.changed = map[string]bool{}
	sort.Strings(l)
	return l
}

func (wt *Watcher) noteWrite(path string) {
	p, err := absPath(path)
	if err != nil {
		return
	}
	wt.lock.Lock()
	wt.written[p] = time.Now()
	wt.lock.Unlock()
}

func (wt *Watcher) Close() error {
	err := wt.w.Close()
	<-wt.done
	return err
}

// WatchingStore wraps a Store so that every document it loads or saves is
// watched, and writes made through it are not reported as changes.
type WatchingStore struct {
	Store
	Watcher *Watcher
}

func (s WatchingStore) Load(path string) ([]byte, error) {
	data, err := s.Store.Load(path)
	if err == nil {
		if werr := s.Watcher.Watch(path); werr != nil {
			dbg("WatchingStore: can't watch %s: %v", path, werr)
		}
	}
	return data, err
}

// Forget stops watching path.
func (s WatchingStore) Forget(path string) {
	if IsRemote(path) {
		return
	}
	if err := s.Watcher.Unwatch(path); err != nil {
		dbg("WatchingStore: can't unwatch %s: %v", path, err)
	}
}

func (s WatchingStore) Save(path string, data []byte) error {
	if !IsRemote(path) {
		s.Watcher.noteWrite(path)
	}
	err := s.Store.Save(path, data)
	if err == nil {
		if werr := s.Watcher.Watch(path); werr != nil {
			dbg("WatchingStore: can't watch %s: %v", path, werr)
		}
	}
	return err
}
