package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ddkwork/golibrary/mylog"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml"
)

var ConfDir string

func init() {
	home, err := homedir.Dir()
	if err != nil {
		home = "."
	}
	ConfDir = filepath.Join(home, ".red")
}

func SshKeyDir() string {
	return filepath.Join(ConfDir, "sshkeys")
}

func LoadSshKeys() {
	d := SshKeyDir()
	entries, err := os.ReadDir(d)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	mylog.Check(err)

	for _, e := range entries {
		log(LogCatgConf, "Loading ssh key %s", e.Name())
		path := filepath.Join(d, e.Name())
		if err := sshClientCache.AddKeyFromFile(e.Name(), path); err != nil {
			log(LogCatgSsh, "Can't read ssh key %s: %v", path, err)
		}
	}
}

var settingsFile string

func SettingsConfigFile() string {
	if settingsFile != "" {
		return settingsFile
	}
	return filepath.Join(ConfDir, "settings.toml")
}

var settings = defaultSettings()

func defaultSettings() Settings {
	return Settings{
		Editor: EditorSettings{
			TabWidth:    8,
			HistorySize: 100,
		},
		Print: PrintSettings{
			Highlight:   false,
			Style:       "monokai",
			NumberColor: "yellow",
		},
		Ssh: SshSettings{
			Shell:     "sh",
			CacheSize: 5,
		},
	}
}

type Settings struct {
	Editor EditorSettings
	Print  PrintSettings
	Ssh    SshSettings
}

type EditorSettings struct {
	Prompt      string
	Silent      bool
	TabWidth    int `toml:"tab-width"`
	HistorySize int `toml:"history-size"`
}

type PrintSettings struct {
	Highlight   bool
	Style       string
	NumberColor string `toml:"number-color"`
}

type SshSettings struct {
	Shell     string
	CacheSize int
}

// LoadSettings reads the settings file over the defaults. A missing file
// leaves the defaults in place.
func LoadSettings() {
	path := SettingsConfigFile()
	err := LoadSettingsFromFile(path, &settings)
	if errors.Is(err, fs.ErrNotExist) {
		log(LogCatgConf, "No settings file at %s; using defaults", path)
		return
	}
	mylog.Check(err)

	log(LogCatgConf, "Loaded settings from config file %s", path)
}

func LoadSettingsFromFile(path string, settings *Settings) (err error) {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := toml.NewDecoder(f)
	return dec.Decode(settings)
}

func GenerateSampleSettings() string {
	return `# Sample red settings file
[editor]
# The prompt printed before each command line. The default is empty.
#prompt=""

# Don't print informational messages, as with -s.
#silent=false

# The width of a tab when comparing indentation for the & address.
#tab-width=8

# The number of command lines remembered.
#history-size=100

[print]
# Highlight the syntax of printed lines, based on the buffer's filename.
# Only used when printing to a terminal.
#highlight=false

# The chroma style used for highlighting.
#style="monokai"

# The color of line numbers: black, red, green, yellow, blue, magenta, cyan,
# white, or empty for the terminal's default.
#number-color="yellow"

[ssh]
# shell specifies the shell used to read and write remote files.
# The default is "sh"
#shell="sh"

# cachesize is the max number of ssh sessions kept open at once. Each user, host, port, proxy
# combination requires a different connection
#cachesize=5
`
}
