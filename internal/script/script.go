// Package script runs the startup script. The script is Lua and reaches the
// editor through the global table red:
//
//	red.command(s)  queue command lines; s is split on unescaped ';'
//	red.silent(b)   turn silent mode on or off (on when b is omitted)
//	red.open(path)  open path in a new buffer
package script

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	lua "github.com/yuin/gopher-lua"
)

// Host is the part of the editor a script can drive.
type Host interface {
	Command(text string)
	SetSilent(silent bool)
	Open(path string)
}

type Script struct {
	L    *lua.LState
	host Host
}

func New(host Host) *Script {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	s := &Script{L: L, host: host}
	mod := L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"command": s.command,
		"silent":  s.silent,
		"open":    s.open,
	})
	L.SetGlobal("red", mod)
	return s
}

func (s *Script) command(L *lua.LState) int {
	text := L.CheckString(1)
	dbg("red.command(%q)", text)
	s.host.Command(text)
	return 0
}

func (s *Script) silent(L *lua.LState) int {
	on := L.OptBool(1, true)
	dbg("red.silent(%v)", on)
	s.host.SetSilent(on)
	return 0
}

func (s *Script) open(L *lua.LState) int {
	path := L.CheckString(1)
	dbg("red.open(%q)", path)
	s.host.Open(path)
	return 0
}

func (s *Script) DoString(code string) error {
	return s.doWithRecovery(func() error {
		return s.L.DoString(code)
	})
}

func (s *Script) DoFile(path string) error {
	return s.doWithRecovery(func() error {
		return s.L.DoFile(path)
	})
}

func (s *Script) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

func (s *Script) Close() {
	s.L.Close()
}

// RunFile runs the script at path against host. A missing file is not an
// error.
func RunFile(path string, host Host) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		dbg("no script at %s", path)
		return nil
	}
	s := New(host)
	defer s.Close()

	dbg("running %s", path)
	if err := s.DoFile(path); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

var Debug func(message string, args ...interface{})

func dbg(message string, args ...interface{}) {
	if Debug != nil {
		Debug(message, args...)
	}
}
