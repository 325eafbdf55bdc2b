package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "java2cpp.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
jobs = 4
indent = "  "
prelude = ["<cstdint>", "\"local.h\""]
format = "msgpack"

[types]
long = "int64_t"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 4, cfg.Jobs)
	require.Equal(t, "  ", cfg.Indent)
	require.Equal(t, []string{"<cstdint>", `"local.h"`}, cfg.Prelude)
	require.Equal(t, FormatMsgpack, cfg.Format)
	require.Equal(t, map[string]string{"long": "int64_t"}, cfg.Types)

	opts := cfg.Options()
	require.Equal(t, 4, opts.Jobs)
	require.Equal(t, "int64_t", opts.Types["long"])
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, Config{Format: FormatText}, cfg)
}

func TestLoadConfigFromWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, defaultConfigFile), []byte("jobs = 2\n"), 0o644))
	t.Chdir(dir)

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, 2, cfg.Jobs)
	require.Equal(t, FormatText, cfg.Format)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		message  string
	}{
		{name: "invalid toml", contents: "jobs = ", message: "failed to parse TOML"},
		{name: "negative jobs", contents: "jobs = -1", message: "jobs must not be negative"},
		{name: "unknown format", contents: `format = "json"`, message: "unknown format"},
		{name: "visible indent", contents: `indent = "--"`, message: "indent must only contain whitespace"},
		{name: "bare header", contents: `prelude = ["math.h"]`, message: "must be written as"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.contents))
			require.Error(t, err)
			require.True(t, strings.Contains(err.Error(), tt.message), "unexpected error: %v", err)
		})
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}
