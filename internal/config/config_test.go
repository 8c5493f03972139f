package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileReplacesDefaultBindings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
log_level = "debug"
use_cooked_accelerators = false
unbind_all = true

[feedback]
beep = true

[[binding]]
keystring = "<Super>e"
action = "copy"
text = "me@example.com"

[[binding]]
keystring = "<Super>l"
action = "log"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.UseCookedAccelerators)
	assert.True(t, cfg.UnbindAll)
	assert.True(t, cfg.Feedback.Beep)
	assert.Equal(t, 880.0, cfg.Feedback.FrequencyHz, "unset fields keep defaults")
	assert.Equal(t, []Binding{
		{Keystring: "<Super>e", Action: ActionCopy, Text: "me@example.com"},
		{Keystring: "<Super>l", Action: ActionLog},
	}, cfg.Bindings)
}

func TestLoadFileRejectsInvalidBindings(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty keystring", "[[binding]]\nkeystring = \"\"\naction = \"log\"\n"},
		{"duplicate", "[[binding]]\nkeystring = \"a\"\naction = \"log\"\n[[binding]]\nkeystring = \"a\"\naction = \"copy\"\n"},
		{"unknown action", "[[binding]]\nkeystring = \"a\"\naction = \"launch\"\n"},
		{"bad toml", "log_level = \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.data), 0644))
			_, err := LoadFile(path)
			assert.Error(t, err)
		})
	}
}

func TestSaveFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Default()
	cfg.Bindings = append(cfg.Bindings, Binding{Keystring: "<Ctrl>F9", Action: ActionCopy, Text: "hi"})

	require.NoError(t, cfg.SaveFile(path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
