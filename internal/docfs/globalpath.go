// Package docfs loads and saves the documents edited in buffers. A document
// path may be local, or remote in the form [user@]host[:port]:path, optionally
// reached through a proxy with dest%[user@]proxy[:port]:path. Remote documents
// are transferred over ssh.
package docfs

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

var ErrMissingDestination = errors.New("a path with a proxy must also have a final destination")

// GlobalPath represents a path that might be remote (on another host) or local.
type GlobalPath struct {
	user, host, path, port          string
	proxyUser, proxyHost, proxyPort string
}

func NewGlobalPath(path string) (p *GlobalPath, err error) {
	p = &GlobalPath{}
	err = p.splitFilename(path)
	return
}

func isWindowsPath(path string) bool {
	return len(path) >= 3 && path[1] == ':' && (path[2] == '\\' || path[2] == '/') &&
		((path[0] >= 'a' && path[0] <= 'z') || (path[0] >= 'A' && path[0] <= 'Z'))
}

func (g *GlobalPath) splitFilename(path string) (err error) {
	if isWindowsPath(path) {
		g.path = path
		return
	}

	// Grammar:
	// GlobalPath -> Dest? Path | Dest Proxy Path
	// Dest -> (User '@')? Host (':' Port)? ':'
	// Proxy -> '%' (User '@')? Host (':' Port)? ':'

	parseHop := func(s string) (user, host, port, rest string) {
		i := 0

		consumePrefix := func() (r string) {
			r = s[0:i]
			s = s[i+1:]
			i = 0
			return
		}

		sawColon := false

		for i < len(s) {
			r := s[i]
			if r == '@' && !sawColon {
				user = consumePrefix()
				continue
			} else if r == ':' {
				sawColon = true
				if host == "" {
					host = consumePrefix()
					continue
				} else if port == "" {
					port = consumePrefix()
					continue
				}
			}
			i++
		}
		rest = s
		return
	}

	pctIndex := strings.Index(path, "%")
	if pctIndex >= 0 {
		if pctIndex == 0 {
			return ErrMissingDestination
		}
		g.user, g.host, g.port, _ = parseHop(path[:pctIndex] + ":")
		g.proxyUser, g.proxyHost, g.proxyPort, g.path = parseHop(path[pctIndex+1:])
		return
	}

	g.user, g.host, g.port, g.path = parseHop(path)
	if g.host == "" && g.user != "" {
		// An '@' without a host is part of a local filename.
		g.user, g.path = "", path
	}
	return
}

func (g GlobalPath) Host() string {
	return g.host
}

func (g GlobalPath) User() string {
	return g.user
}

func (g GlobalPath) Path() string {
	return g.path
}

func (g GlobalPath) Port() string {
	return g.port
}

func (g GlobalPath) IsRemote() bool {
	return g.host != ""
}

func (g GlobalPath) HasProxy() bool {
	return g.proxyHost != ""
}

// Endpt is the ssh endpoint that serves a remote path.
func (g GlobalPath) Endpt() SshEndpt {
	return SshEndpt{
		Dest:  SshHop{User: g.user, Host: g.host, Port: g.port},
		Proxy: SshHop{User: g.proxyUser, Host: g.proxyHost, Port: g.proxyPort},
	}
}

func (g GlobalPath) String() string {
	if g.host == "" {
		return g.path
	}

	var buf bytes.Buffer
	if g.user != "" {
		fmt.Fprintf(&buf, "%s@", g.user)
	}
	buf.WriteString(g.host)
	if g.port != "" {
		fmt.Fprintf(&buf, ":%s", g.port)
	}

	if g.proxyHost != "" {
		buf.WriteRune('%')
		if g.proxyUser != "" {
			fmt.Fprintf(&buf, "%s@", g.proxyUser)
		}
		fmt.Fprintf(&buf, "%s:", g.proxyHost)
		if g.proxyPort != "" {
			fmt.Fprintf(&buf, "%s:", g.proxyPort)
		}
	} else {
		buf.WriteRune(':')
	}

	buf.WriteString(g.path)
	return buf.String()
}
