package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml"
	"github.com/stretchr/testify/assert"
)

func TestLoadSettingsFromFile(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		modify   func(s *Settings)
	}{
		{
			name:     "empty file keeps defaults",
			contents: "",
			modify:   func(s *Settings) {},
		},
		{
			name:     "sample file keeps defaults",
			contents: GenerateSampleSettings(),
			modify:   func(s *Settings) {},
		},
		{
			name: "overrides",
			contents: `
[editor]
prompt=": "
tab-width=4

[print]
highlight=true
number-color=""

[ssh]
cachesize=2
`,
			modify: func(s *Settings) {
				s.Editor.Prompt = ": "
				s.Editor.TabWidth = 4
				s.Print.Highlight = true
				s.Print.NumberColor = ""
				s.Ssh.CacheSize = 2
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.toml")
			assert.NoError(t, os.WriteFile(path, []byte(tc.contents), 0o644))

			s := defaultSettings()
			assert.NoError(t, LoadSettingsFromFile(path, &s))

			expected := defaultSettings()
			tc.modify(&expected)
			assert.Equal(t, expected, s)
		})
	}
}

func TestLoadSettingsFromMissingFile(t *testing.T) {
	s := defaultSettings()
	err := LoadSettingsFromFile(filepath.Join(t.TempDir(), "missing.toml"), &s)
	assert.True(t, os.IsNotExist(err))
}

func TestSampleSettingsMentionEveryKey(t *testing.T) {
	tree, err := toml.Marshal(defaultSettings())
	assert.NoError(t, err)

	sample := GenerateSampleSettings()
	for _, line := range strings.Split(string(tree), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "[") {
			continue
		}
		key := strings.TrimSpace(strings.SplitN(line, "=", 2)[0])
		assert.Contains(t, strings.ToLower(sample), "#"+strings.ToLower(key)+"=", key)
	}
}

func TestCommandList(t *testing.T) {
	var c commandList
	assert.NoError(t, c.Set("1p;2p"))
	assert.NoError(t, c.Set("w"))
	assert.Equal(t, commandList{"1p;2p", "w"}, c)
	assert.Equal(t, "1p;2p;w", c.String())
}
