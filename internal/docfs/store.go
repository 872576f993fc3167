package docfs

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"

	"github.com/mitchellh/go-homedir"
	"golang.org/x/crypto/ssh"
)

// Store reads and writes whole documents. Load returns an error matching
// fs.ErrNotExist if the document does not exist.
type Store interface {
	Load(path string) ([]byte, error)
	Save(path string, data []byte) error
}

var Debug func(message string, args ...interface{})

func dbg(message string, args ...interface{}) {
	if Debug != nil {
		Debug(message, args...)
	}
}

// Local is the Store for files on this host. A leading ~ in a path is
// expanded to the home directory.
type Local struct{}

func (Local) Load(path string) ([]byte, error) {
	p, err := homedir.Expand(path)
	if err != nil {
		return nil, err
	}
	dbg("Local.Load: %s", p)
	return os.ReadFile(p)
}

func (Local) Save(path string, data []byte) error {
	p, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	dbg("Local.Save: %s (%d bytes)", p, len(data))
	return os.WriteFile(p, data, 0o644)
}

// Remote is the Store for documents on other hosts. The path is a
// GlobalPath; the document is read and written by running cat through the
// shell on the remote host.
type Remote struct {
	Shell   string
	Clients *SshClientCache
}

func NewRemote(shell string, clients *SshClientCache) *Remote {
	return &Remote{Shell: shell, Clients: clients}
}

func (r *Remote) getShell() string {
	if r.Shell == "" {
		return "sh"
	}
	return r.Shell
}

func (r *Remote) Load(path string) (contents []byte, err error) {
	gp, err := NewGlobalPath(path)
	if err != nil {
		return nil, err
	}

	ok, err := r.fileExists(gp)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &fs.PathError{Op: "load", Path: path, Err: fs.ErrNotExist}
	}

	session, err := r.newSession(gp)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	cmd := fmt.Sprintf("%s -c 'cat \"%s\"'", r.getShell(), gp.Path())
	dbg("Remote.Load: running command: %s", cmd)
	contents, err = session.Output(cmd)
	return contents, prefixWithSshEndpt(gp.Endpt(), "load "+gp.Path(), err)
}

func (r *Remote) Save(path string, contents []byte) (err error) {
	gp, err := NewGlobalPath(path)
	if err != nil {
		return err
	}

	session, err := r.newSession(gp)
	if err != nil {
		return err
	}
	defer session.Close()

	cmd := fmt.Sprintf("%s -c 'cat > \"%s\"'", r.getShell(), gp.Path())
	dbg("Remote.Save: running command: %s", cmd)
	session.Stdin = bytes.NewReader(contents)
	return prefixWithSshEndpt(gp.Endpt(), "save "+gp.Path(), session.Run(cmd))
}

func (r *Remote) fileExists(gp *GlobalPath) (ok bool, err error) {
	session, err := r.newSession(gp)
	if err != nil {
		return false, err
	}
	defer session.Close()

	cmd := fmt.Sprintf("%s -c 'if [ -e \"%s\" ]; then echo yes; else echo no; fi'", r.getShell(), gp.Path())
	b, err := session.Output(cmd)
	if err != nil {
		return false, prefixWithSshEndpt(gp.Endpt(), "exists "+gp.Path(), err)
	}
	dbg("Remote.fileExists: got output %q", b)
	return string(b) == "yes\n", nil
}

func (r *Remote) newSession(gp *GlobalPath) (*ssh.Session, error) {
	client, err := r.Clients.Get(gp.Endpt())
	if err != nil {
		return nil, err
	}
	session, err := client.NewSession()
	if err != nil {
		// The connection may have gone away; reconnect once.
		r.Clients.Invalidate(gp.Endpt())
		if client, err = r.Clients.Get(gp.Endpt()); err != nil {
			return nil, err
		}
		session, err = client.NewSession()
	}
	return session, prefixWithSshEndpt(gp.Endpt(), "new session", err)
}

// Router sends each path to the local or the remote Store depending on
// whether it names a host.
type Router struct {
	Local  Store
	Remote Store
}

func NewRouter(local, remote Store) *Router {
	return &Router{Local: local, Remote: remote}
}

func (r *Router) pick(path string) (Store, error) {
	gp, err := NewGlobalPath(path)
	if err != nil {
		return nil, err
	}
	if gp.IsRemote() {
		if r.Remote == nil {
			return nil, fmt.Errorf("%s: remote documents are not supported", path)
		}
		return r.Remote, nil
	}
	return r.Local, nil
}

func (r *Router) Load(path string) ([]byte, error) {
	s, err := r.pick(path)
	if err != nil {
		return nil, err
	}
	return s.Load(path)
}

func (r *Router) Save(path string, data []byte) error {
	s, err := r.pick(path)
	if err != nil {
		return err
	}
	return s.Save(path, data)
}

// IsRemote reports whether path names a document on another host.
func IsRemote(path string) bool {
	gp, err := NewGlobalPath(path)
	return err == nil && gp.IsRemote()
}
