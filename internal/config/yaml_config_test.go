package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUpdateYamlKey(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		key      string
		value    string
		contains []string
		absent   []string
	}{
		{
			name:     "empty document",
			content:  "",
			key:      "color",
			value:    "never",
			contains: []string{"color: never"},
		},
		{
			name:     "replace existing",
			content:  "color: auto\nlock-timeout: 5s\n",
			key:      "color",
			value:    "always",
			contains: []string{"color: always", "lock-timeout: 5s"},
			absent:   []string{"color: auto"},
		},
		{
			name:     "append new key keeps comments",
			content:  "# my settings\ncolor: auto # default\n",
			key:      "lists-dir",
			value:    "~/lists",
			contains: []string{"# my settings", "color: auto # default", "lists-dir: ~/lists"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := updateYamlKey([]byte(tt.content), tt.key, tt.value)
			require.NoError(t, err)
			for _, want := range tt.contains {
				require.Contains(t, string(got), want)
			}
			for _, notWant := range tt.absent {
				require.NotContains(t, string(got), notWant)
			}
		})
	}
}

func TestUpdateYamlKeyRejectsNonMapping(t *testing.T) {
	_, err := updateYamlKey([]byte("- a\n- b\n"), "color", "never")
	require.Error(t, err)
}

func TestSetYamlConfigRoundTrip(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	t.Setenv(EnvConfigPath, path)

	require.NoError(t, SetYamlConfig(path, KeyLockTimeout, "750ms"))
	require.NoError(t, SetYamlConfig(path, KeyColor, "never"))
	require.NoError(t, Initialize())

	require.Equal(t, ColorNever, ColorMode())
	require.Equal(t, "750ms", Get(KeyLockTimeout))
}

func TestSetYamlConfigValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.Error(t, SetYamlConfig(path, "colour", "never"))
	require.Error(t, SetYamlConfig(path, KeyColor, "purple"))
	require.Error(t, SetYamlConfig(path, KeyLockTimeout, "forever"))

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err), "nothing written for invalid input")
}

func TestWriteTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo", "config.yaml")

	wrote, err := WriteTemplate(path)
	require.NoError(t, err)
	require.True(t, wrote)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "# todo configuration"))

	wrote, err = WriteTemplate(path)
	require.NoError(t, err)
	require.False(t, wrote, "existing file is left alone")
}
