package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/ddkwork/golibrary/mylog"
	"github.com/ogier/pflag"

	"github.com/xeniagda/red/internal/action"
	adebug "github.com/xeniagda/red/internal/debug"
	"github.com/xeniagda/red/internal/docfs"
	"github.com/xeniagda/red/internal/editor"
	"github.com/xeniagda/red/internal/input"
	"github.com/xeniagda/red/internal/render"
	"github.com/xeniagda/red/internal/script"
	"github.com/xeniagda/red/internal/words"
)

const editorName = "red"

//go:embed help.txt
var helpText string

// commandList collects every -d option in order.
type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(s string) error {
	*c = append(*c, s)
	return nil
}

var (
	optHelp        = pflag.BoolP("help", "h", false, "Print help and exit")
	optSilent      = pflag.BoolP("silent", "s", false, "Don't print informational messages")
	optConfig      = pflag.String("config", "", "Read settings from this file instead of the default")
	optGenConfig   = pflag.Bool("gen-config", false, "Print a sample settings file and exit")
	optNoInit      = pflag.Bool("no-init", false, "Don't run the init.lua script")
	optDebugStderr = pflag.Bool("dbg", false, "Print debug logs to stderr")
	optProfile     = pflag.Bool("profile", false, "Profile the code CPU usage. The profile file location is printed to stdout.")
	optCommands    commandList
)

func init() {
	pflag.VarP(&optCommands, "do", "d", "Commands to run before reading input, separated by ';'. May be repeated.")
}

var (
	debugLog       = adebug.New(100)
	sshClientCache *docfs.SshClientCache
)

func main() {
	mylog.Call(func() { run() })
}

func run() {
	parseAndValidateOptions()

	if *optHelp {
		fmt.Print(helpText)
		return
	}
	if *optGenConfig {
		fmt.Print(GenerateSampleSettings())
		return
	}

	if *optProfile {
		startProfiling(ProfileCPU)
		defer stopProfiling()
	}

	initDebugging()
	LoadSettings()

	sshClientCache = docfs.NewSshClientCache(settings.Ssh.CacheSize)
	defer sshClientCache.Close()
	LoadSshKeys()

	var ed *editor.Editor
	defer func() {
		if r := recover(); r != nil {
			dumpPanic(r)
			dumpLogs(ed)
			panic(r)
		}
	}()

	ed, watcher := newEditor()
	if watcher != nil {
		defer watcher.Close()
	}

	ed.OpenFiles(pflag.Args())
	if !*optNoInit {
		runInitScript(ed)
	}
	for _, c := range optCommands {
		ed.Command(c)
	}

	mylog.Check(ed.Run())
	log(LogCatgApp, "exiting")
}

func parseAndValidateOptions() {
	pflag.Parse()

	if *optConfig != "" {
		settingsFile = *optConfig
	}
}

func newEditor() (*editor.Editor, *docfs.Watcher) {
	tty := input.IsTerminal(os.Stdin) && input.IsTerminal(os.Stdout)

	out := render.New(os.Stdout, os.Stderr, render.Options{
		Silent:      *optSilent || settings.Editor.Silent,
		Color:       input.IsTerminal(os.Stdout),
		Highlight:   settings.Print.Highlight && tty,
		Style:       settings.Print.Style,
		NumberColor: settings.Print.NumberColor,
	})

	completer := words.NewCompleter()
	var src input.Source
	if tty {
		t := input.NewTerminal(os.Stdin, os.Stdout)
		t.Complete = completer.Complete
		src = t
		log(LogCatgInput, "reading input from the terminal")
	} else {
		src = input.NewReader(os.Stdin, nil)
		log(LogCatgInput, "reading input from a stream")
	}

	var store action.Store = docfs.NewRouter(docfs.Local{}, docfs.NewRemote(settings.Ssh.Shell, sshClientCache))
	watcher, err := docfs.NewWatcher()
	if err != nil {
		log(LogCatgFS, "file watching disabled: %v", err)
	} else {
		store = docfs.WatchingStore{Store: store, Watcher: watcher}
	}

	ed := editor.New(editor.Options{
		Prompt:      settings.Editor.Prompt,
		TabWidth:    settings.Editor.TabWidth,
		HistorySize: settings.Editor.HistorySize,
		Input:       src,
		Out:         out,
		Store:       store,
		Watcher:     watcher,
		Completer:   completer,
	})
	return ed, watcher
}

func runInitScript(ed *editor.Editor) {
	path := filepath.Join(ConfDir, "init.lua")
	if err := script.RunFile(path, ed); err != nil {
		fmt.Fprintf(os.Stderr, "init script: %v\n", err)
	}
}

func dumpPanic(i interface{}) {
	fname := fmt.Sprintf("%s.panic", editorName)
	f := mylog.Check2(os.Create(fname))
	defer func() { mylog.Check(f.Close()) }()
	mylog.Check2(fmt.Fprintf(f, "panic: %v\n", i))
	mylog.Check2(fmt.Fprintf(f, "%s", string(debug.Stack())))
}

func dumpLogs(ed *editor.Editor) {
	fname := fmt.Sprintf("%s.panic-logs", editorName)
	f := mylog.Check2(os.Create(fname))

	defer func() { mylog.Check(f.Close()) }()
	mylog.Check2(fmt.Fprint(f, debugLog.String(debugLogCategories...)))
	if ed != nil {
		mylog.Check2(fmt.Fprintf(f, "\nCommand history:\n%s", ed.History()))
	}
}
