package docfs

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func watching(wt *Watcher) []string {
	wt.lock.Lock()
	defer wt.lock.Unlock()

	l := make([]string, 0, len(wt.files))
	for f := range wt.files {
		l = append(l, f)
	}
	sort.Strings(l)
	return l
}

func TestWatcherReportsExternalChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	assert.NoError(t, os.WriteFile(path, []byte("one"), 0o644))

	w, err := NewWatcher()
	assert.NoError(t, err)
	defer w.Close()

	store := WatchingStore{Store: Local{}, Watcher: w}
	_, err = store.Load(path)
	assert.NoError(t, err)
	assert.Equal(t, []string{path}, watching(w))

	assert.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	assert.NoError(t, os.WriteFile(path, []byte("two"), 0o644))

	var changed []string
	assert.Eventually(t, func() bool {
		changed = append(changed, w.Drain()...)
		return len(changed) > 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{path}, changed)
}

func TestWatcherIgnoresOwnWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")

	w, err := NewWatcher()
	assert.NoError(t, err)
	defer w.Close()

	store := WatchingStore{Store: Local{}, Watcher: w}
	assert.NoError(t, store.Save(path, []byte("one")))
	assert.NoError(t, store.Save(path, []byte("two")))

	time.Sleep(200 * time.Millisecond)
	assert.Empty(t, w.Drain())
}

func TestUnwatch(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")

	w, err := NewWatcher()
	assert.NoError(t, err)
	defer w.Close()

	assert.NoError(t, w.Watch(a))
	assert.NoError(t, w.Watch(b))
	assert.NoError(t, w.Watch("host:/remote"))
	assert.Equal(t, []string{a, b}, watching(w))

	assert.NoError(t, w.Unwatch(a))
	assert.Equal(t, []string{b}, watching(w))
	assert.NoError(t, w.Unwatch(b))
	assert.Empty(t, watching(w))
}

func TestForget(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")
	assert.NoError(t, os.WriteFile(path, []byte("one"), 0o644))

	w, err := NewWatcher()
	assert.NoError(t, err)
	defer w.Close()

	store := WatchingStore{Store: Local{}, Watcher: w}
	_, err = store.Load(path)
	assert.NoError(t, err)
	store.Forget(path)
	store.Forget("host:/remote")
	assert.Empty(t, watching(w))

	assert.NoError(t, os.WriteFile(path, []byte("two"), 0o644))
	time.Sleep(200 * time.Millisecond)
	assert.Empty(t, w.Drain())
}
