package docfs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/ssh"
)

type memStore struct {
	docs  map[string][]byte
	saved []string
}

func (m *memStore) Load(path string) ([]byte, error) {
	d, ok := m.docs[path]
	if !ok {
		return nil, &fs.PathError{Op: "load", Path: path, Err: fs.ErrNotExist}
	}
	return d, nil
}

func (m *memStore) Save(path string, data []byte) error {
	if m.docs == nil {
		m.docs = map[string][]byte{}
	}
	m.docs[path] = data
	m.saved = append(m.saved, path)
	return nil
}

func TestLocal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.txt")

	_, err := Local{}.Load(path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	assert.NoError(t, Local{}.Save(path, []byte("a\nb")))
	data, err := Local{}.Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "a\nb", string(data))
}

func TestRouter(t *testing.T) {
	local := &memStore{}
	remote := &memStore{}
	r := NewRouter(local, remote)

	assert.NoError(t, r.Save("notes.txt", []byte("l")))
	assert.NoError(t, r.Save("host:/tmp/notes.txt", []byte("r")))
	assert.Equal(t, []string{"notes.txt"}, local.saved)
	assert.Equal(t, []string{"host:/tmp/notes.txt"}, remote.saved)

	data, err := r.Load("host:/tmp/notes.txt")
	assert.NoError(t, err)
	assert.Equal(t, "r", string(data))

	_, err = r.Load("%proxy:x")
	assert.ErrorIs(t, err, ErrMissingDestination)

	r = NewRouter(local, nil)
	_, err = r.Load("host:x")
	assert.Error(t, err)
}

func TestSshClientCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewSshClientCache(2)
	var dialed []string
	c.dial = func(endpt SshEndpt) (*ssh.Client, error) {
		dialed = append(dialed, endpt.Dest.Host)
		return nil, nil
	}

	hop := func(h string) SshEndpt {
		return SshEndpt{Dest: SshHop{User: "u", Host: h, Port: "22"}}
	}

	_, err := c.Get(hop("a"))
	assert.NoError(t, err)
	_, err = c.Get(hop("b"))
	assert.NoError(t, err)
	c.data[hop("a")].lastUsed = time.Now().Add(time.Hour)

	_, err = c.Get(hop("c"))
	assert.NoError(t, err)
	assert.ElementsMatch(t, []SshEndpt{hop("a"), hop("c")}, c.Keys())

	_, err = c.Get(hop("a"))
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, dialed)

	c.Invalidate(hop("a"))
	assert.ElementsMatch(t, []SshEndpt{hop("c")}, c.Keys())
}

func TestSshClientCacheDialError(t *testing.T) {
	c := NewSshClientCache(1)
	c.dial = func(endpt SshEndpt) (*ssh.Client, error) {
		return nil, errors.New("refused")
	}
	_, err := c.Get(SshEndpt{Dest: SshHop{User: "u", Host: "h", Port: "22"}})
	assert.EqualError(t, err, "u@h:22: SshClientCache.Get: refused")
	assert.Empty(t, c.Keys())
}

func TestCompleteHop(t *testing.T) {
	os.Setenv("USER", "someone")
	assert.Equal(t, SshHop{User: "someone", Host: "h", Port: "22"}, completeHop(SshHop{Host: "h"}))
	assert.Equal(t, SshHop{User: "x", Host: "h", Port: "2"}, completeHop(SshHop{User: "x", Host: "h", Port: "2"}))
	assert.Equal(t, SshHop{}, completeHop(SshHop{}))
}
