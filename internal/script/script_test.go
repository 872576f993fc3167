package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

type host struct {
	commands []string
	silent   []bool
	opened   []string
}

func (h *host) Command(text string)   { h.commands = append(h.commands, text) }
func (h *host) SetSilent(silent bool) { h.silent = append(h.silent, silent) }
func (h *host) Open(path string)      { h.opened = append(h.opened, path) }

func TestScript(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		commands []string
		silent   []bool
		opened   []string
	}{
		{
			name:     "command",
			code:     `red.command("%p")`,
			commands: []string{"%p"},
		},
		{
			name:     "commands built in lua",
			code:     `for i = 1, 3 do red.command(i .. "p") end`,
			commands: []string{"1p", "2p", "3p"},
		},
		{
			name:   "silent",
			code:   `red.silent(); red.silent(false)`,
			silent: []bool{true, false},
		},
		{
			name:   "open",
			code:   `red.open("notes.txt")`,
			opened: []string{"notes.txt"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := &host{}
			s := New(h)
			defer s.Close()

			assert.NoError(t, s.DoString(tc.code))
			assert.Equal(t, tc.commands, h.commands)
			assert.Equal(t, tc.silent, h.silent)
			assert.Equal(t, tc.opened, h.opened)
		})
	}
}

func TestScriptErrors(t *testing.T) {
	s := New(&host{})
	defer s.Close()

	assert.Error(t, s.DoString(`red.command()`))
	assert.Error(t, s.DoString(`this is not lua`))
	assert.Error(t, s.DoString(`os.exit(1)`))
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	h := &host{}

	assert.NoError(t, RunFile(filepath.Join(dir, "missing.lua"), h))
	assert.Empty(t, h.commands)

	path := filepath.Join(dir, "init.lua")
	assert.NoError(t, os.WriteFile(path, []byte(`red.command("1d")`), 0o644))
	assert.NoError(t, RunFile(path, h))
	assert.Equal(t, []string{"1d"}, h.commands)

	assert.NoError(t, os.WriteFile(path, []byte(`error("bad")`), 0o644))
	err := RunFile(path, h)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
}
