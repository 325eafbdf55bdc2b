package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the CLI with the given arguments. Flags keep their
// values between runs, so they are reset first
func executeCommand(t *testing.T, args ...string) (stdout string, stderr string, err error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func TestTranslateCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	input := filepath.Join(originalDir(t), "testdata", "SingleInheritanceTest", "SingleInheritanceTest.java")
	expected, err := os.ReadFile(filepath.Join(originalDir(t), "testdata", "SingleInheritanceTest", "SingleInheritanceTest_expected.h"))
	require.NoError(t, err)

	stdout, _, err := executeCommand(t, "translate", input)
	require.NoError(t, err)
	require.Equal(t, string(expected), stdout)

	_, _, err = executeCommand(t, "translate", "-o", "out.h", "--jobs", "2", input)
	require.NoError(t, err)
	written, err := os.ReadFile("out.h")
	require.NoError(t, err)
	require.Equal(t, string(expected), string(written))
}

func TestTranslateCommandMsgpack(t *testing.T) {
	t.Chdir(t.TempDir())
	input := filepath.Join(originalDir(t), "testdata", "SingleInheritanceTest", "SingleInheritanceTest.java")

	_, _, err := executeCommand(t, "translate", "--format", "msgpack", "-o", "out.msgpack", input)
	require.NoError(t, err)

	file, err := os.Open("out.msgpack")
	require.NoError(t, err)
	defer file.Close()
	bundle, err := ReadBundle(file)
	require.NoError(t, err)
	require.Len(t, bundle.Units, 2)
	require.Equal(t, "DerivedClass", bundle.Units[1].Name)
}

func TestCheckCommandReportsFailures(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("Broken.java", []byte(`
class Lonely {
	Lonely() {
		super();
	}
}

class Fine {}
`), 0o644))

	stdout, stderr, err := executeCommand(t, "check", "--color", "off", "Broken.java")
	require.Error(t, err)
	require.Empty(t, stdout)
	require.Contains(t, stderr, "Broken.java:4:3: InvalidSuperCall Lonely.Lonely")
}

func TestTranslateCommandWritesPartialOutput(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("Mixed.java", []byte(`
class Orphan extends Missing {}
class Fine {}
`), 0o644))

	stdout, stderr, err := executeCommand(t, "translate", "--color", "off", "Mixed.java")
	require.Error(t, err)
	require.Contains(t, stdout, "class Fine {")
	require.NotContains(t, stdout, "Orphan")
	require.Contains(t, stderr, "UnresolvedBase Orphan")
}

func TestTranslateCommandUsesConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("Text.java", []byte("class Text { String s; }\n"), 0o644))
	require.NoError(t, os.WriteFile(defaultConfigFile, []byte(`
prelude = []
indent = "  "

[types]
String = "std::wstring"
`), 0o644))

	stdout, _, err := executeCommand(t, "translate", "Text.java")
	require.NoError(t, err)
	require.Equal(t, "#include <string>\n\nclass Text {\npublic:\n  std::wstring s;\n};\n", stdout)

	_, _, err = executeCommand(t, "translate", "--format", "json", "Text.java")
	require.Error(t, err)
}

type failingCloser struct {
	bytes.Buffer
	closed bool
}

func (f *failingCloser) Close() error {
	f.closed = true
	return errors.New("disk full")
}

func TestWriteAndCloseReportsCloseError(t *testing.T) {
	out := &failingCloser{}
	err := writeAndClose(out, &Result{}, FormatText)
	require.EqualError(t, err, "disk full")
	require.True(t, out.closed)

	out = &failingCloser{}
	err = writeAndClose(out, &Result{}, "json")
	require.ErrorContains(t, err, "unknown format")
	require.True(t, out.closed)
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCommand(t, "version")
	require.NoError(t, err)
	require.Contains(t, stdout, "java2cpp")
}

var packageDir string

// originalDir returns the package directory, which tests leave with t.Chdir
func originalDir(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, packageDir)
	return packageDir
}

func init() {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	packageDir = dir
}
