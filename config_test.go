package kdotool

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestLoadConfig_MissingFile(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "kdotool.yaml"))
	assert.NoError(t, err)

	assert.Equal(t, "error", config.LogLevel)
	assert.Equal(t, SessionAuto, config.SessionVersion)
	assert.Equal(t, 5, config.DBus.TimeoutSeconds)
	assert.Equal(t, []string{"plasma-kwin_wayland.service", "plasma-kwin_x11.service"}, config.Journal.Units)
	assert.Equal(t, "js: ", config.Journal.TransportPrefix)
	assert.False(t, config.Script.KeepTempFiles)
}

func TestLoadConfig_PartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kdotool.yaml")
	content := `log_level: debug
session_version: "5"
`
	err := os.WriteFile(path, []byte(content), 0644)
	assert.NoError(t, err)

	config, err := LoadConfig(path)
	assert.NoError(t, err)

	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, SessionKDE5, config.SessionVersion)
	// Missing sections fall back to defaults
	assert.Equal(t, 5, config.DBus.TimeoutSeconds)
	assert.Equal(t, "js: ", config.Journal.TransportPrefix)
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid log level", "log_level: loud\n"},
		{"invalid session version", "session_version: \"4\"\n"},
		{"negative timeout", "dbus:\n  timeout_seconds: -1\n"},
		{"unknown field", "log_levle: debug\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "kdotool.yaml")
			err := os.WriteFile(path, []byte(tt.content), 0644)
			assert.NoError(t, err)

			_, err = LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_EnvExpansion(t *testing.T) {
	t.Setenv("KDOTOOL_TEST_UNIT", "plasma-kwin_x11.service")

	path := filepath.Join(t.TempDir(), "kdotool.yaml")
	content := `journal:
  units:
    - ${KDOTOOL_TEST_UNIT}
`
	err := os.WriteFile(path, []byte(content), 0644)
	assert.NoError(t, err)

	config, err := LoadConfig(path)
	assert.NoError(t, err)
	assert.Equal(t, []string{"plasma-kwin_x11.service"}, config.Journal.Units)
}
