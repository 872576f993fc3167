package docfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGlobalPath(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		global GlobalPath
		output string
	}{
		{
			name:   "file.c",
			input:  "file.c",
			global: GlobalPath{path: "file.c"},
			output: "file.c",
		},
		{
			name:   "/file.c",
			input:  "/file.c",
			global: GlobalPath{path: "/file.c"},
			output: "/file.c",
		},
		{
			name:   "local with at sign",
			input:  "notes@home.txt",
			global: GlobalPath{path: "notes@home.txt"},
			output: "notes@home.txt",
		},
		{
			name:   "windows drive",
			input:  `C:\notes.txt`,
			global: GlobalPath{path: `C:\notes.txt`},
			output: `C:\notes.txt`,
		},
		{
			name:   "host:file.c",
			input:  "host:file.c",
			global: GlobalPath{host: "host", path: "file.c"},
			output: "host:file.c",
		},
		{
			name:   "host:/file.c",
			input:  "host:/file.c",
			global: GlobalPath{host: "host", path: "/file.c"},
			output: "host:/file.c",
		},
		{
			name:   "host:22:file.c",
			input:  "host:22:file.c",
			global: GlobalPath{host: "host", path: "file.c", port: "22"},
			output: "host:22:file.c",
		},
		{
			name:   "user@host:path/file.c",
			input:  "user@host:path/file.c",
			global: GlobalPath{user: "user", host: "host", path: "path/file.c"},
			output: "user@host:path/file.c",
		},
		{
			name:   "user@host:22:path/file.c",
			input:  "user@host:22:path/file.c",
			global: GlobalPath{user: "user", host: "host", path: "path/file.c", port: "22"},
			output: "user@host:22:path/file.c",
		},
		{
			name:   "host:22:path/file_wth_@.c",
			input:  "host:22:path/file_wth_@.c",
			global: GlobalPath{host: "host", path: "path/file_wth_@.c", port: "22"},
			output: "host:22:path/file_wth_@.c",
		},
		{
			name:   "host%proxy:path/file_wth_@.c",
			input:  "host%proxy:path/file_wth_@.c",
			global: GlobalPath{host: "host", path: "path/file_wth_@.c", proxyHost: "proxy"},
			output: "host%proxy:path/file_wth_@.c",
		},
		{
			name:   "host:22%user@proxy:56:path/file.c",
			input:  "host:22%user@proxy:56:path/file.c",
			global: GlobalPath{host: "host", path: "path/file.c", port: "22", proxyHost: "proxy", proxyUser: "user", proxyPort: "56"},
			output: "host:22%user@proxy:56:path/file.c",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := NewGlobalPath(tc.input)
			assert.NoError(t, err)
			assert.Equal(t, tc.global, *g)
			assert.Equal(t, tc.output, g.String())
		})
	}
}

func TestGlobalPathProxyWithoutDestination(t *testing.T) {
	_, err := NewGlobalPath("%proxy:file")
	assert.ErrorIs(t, err, ErrMissingDestination)
}

func TestEndpt(t *testing.T) {
	g, err := NewGlobalPath("me@host:2222%you@jump:f")
	assert.NoError(t, err)
	e := g.Endpt()
	assert.Equal(t, SshHop{User: "me", Host: "host", Port: "2222"}, e.Dest)
	assert.Equal(t, SshHop{User: "you", Host: "jump"}, e.Proxy)
	assert.True(t, e.HasProxy())

	assert.True(t, IsRemote("host:file"))
	assert.False(t, IsRemote("~/file"))
}
