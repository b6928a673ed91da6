package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	// Keep the developer's own config out of the tests.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestComment_InPlace(t *testing.T) {
	path := writeFile(t, "a.go", "a\nb\nc\nd\n")

	_, _, err := run(t, "comment", path, "--lines", "2:4")
	require.NoError(t, err)
	assert.Equal(t, "a\n//b\nc\n//d\n", readFile(t, path))
}

func TestComment_Stdout(t *testing.T) {
	path := writeFile(t, "a.go", "x\n")

	out, _, err := run(t, "comment", path, "-l", "1", "--stdout")
	require.NoError(t, err)
	assert.Equal(t, "//x\n", out)
	assert.Equal(t, "x\n", readFile(t, path), "--stdout must not touch the file")
}

func TestComment_Bytes(t *testing.T) {
	path := writeFile(t, "a.go", "abc\nde\nfgh\n")

	out, _, err := run(t, "comment", path, "--bytes", "1:8", "--stdout")
	require.NoError(t, err)
	assert.Equal(t, "//abc\nde\n//fgh\n", out)
}

func TestComment_OutOfRangeIsNoOp(t *testing.T) {
	path := writeFile(t, "a.go", "a\nb\n")

	_, _, err := run(t, "comment", path, "--lines", "1:6")
	require.NoError(t, err)
	assert.Equal(t, "//a\nb\n", readFile(t, path))

	_, _, err = run(t, "comment", path, "--lines", "9")
	require.NoError(t, err)
	assert.Equal(t, "//a\nb\n", readFile(t, path))
}

func TestComment_Backup(t *testing.T) {
	path := writeFile(t, "a.go", "a\n")

	_, _, err := run(t, "comment", path, "--lines", "1", "--backup")
	require.NoError(t, err)
	assert.Equal(t, "a\n", readFile(t, path+".bak"))
	assert.Equal(t, "//a\n", readFile(t, path))
}

func TestComment_BadArgs(t *testing.T) {
	path := writeFile(t, "a.go", "a\n")

	tests := []struct {
		name string
		args []string
	}{
		{name: "no selection", args: []string{"comment", path}},
		{name: "both selections", args: []string{"comment", path, "--lines", "1", "--bytes", "0:1"}},
		{name: "bad range", args: []string{"comment", path, "--lines", "0"}},
		{name: "bytes past end", args: []string{"comment", path, "--bytes", "0:50"}},
		{name: "missing file", args: []string{"comment", path + ".nope", "--lines", "1"}},
		{name: "bad log level", args: []string{"--log-level", "loud", "comment", path, "--lines", "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
	assert.Equal(t, "a\n", readFile(t, path))
}

func TestComment_LogsAtDebug(t *testing.T) {
	path := writeFile(t, "a.go", "a\n")

	_, stderr, err := run(t, "--log-level", "debug", "comment", path, "--lines", "1")
	require.NoError(t, err)
	assert.Contains(t, stderr, "commented selection")
}

func TestComment_ConfigBackup(t *testing.T) {
	path := writeFile(t, "a.go", "a\n")
	cfg := writeFile(t, "config.toml", "backup = true\n")

	_, _, err := run(t, "--config", cfg, "comment", path, "--lines", "1")
	require.NoError(t, err)
	assert.Equal(t, "a\n", readFile(t, path+".bak"))
}

func TestScript(t *testing.T) {
	path := writeFile(t, "a.go", "func f() {\n\treturn\n}\n")
	script := writeFile(t, "s.lua", "linecomment.comment(lines, 1, #lines)\n")

	_, _, err := run(t, "script", script, path)
	require.NoError(t, err)
	assert.Equal(t, "//func f() {\n\treturn\n//}\n", readFile(t, path))

	out, _, err := run(t, "script", script, path, "--stdout")
	require.NoError(t, err)
	assert.Equal(t, "////func f() {\n\treturn\n////}\n", out)
}

func TestScript_FillsEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.go", "")
	script := writeFile(t, "s.lua", "lines[1] = \"x\"\nlines[2] = \"y\"\nlinecomment.comment(lines, 1, 2)\n")

	_, _, err := run(t, "script", script, path)
	require.NoError(t, err)
	assert.Equal(t, "//x\n//y\n", readFile(t, path))
}

func TestScript_KeepsMissingFinalNewline(t *testing.T) {
	path := writeFile(t, "a.go", "a\nb")
	script := writeFile(t, "s.lua", "linecomment.comment(lines, 2)\n")

	out, _, err := run(t, "script", script, path, "--stdout")
	require.NoError(t, err)
	assert.Equal(t, "a\n//b", out)
}

func TestScript_Error(t *testing.T) {
	path := writeFile(t, "a.go", "a\n")
	script := writeFile(t, "s.lua", `error("nope")`)

	_, _, err := run(t, "script", script, path)
	assert.Error(t, err)
	assert.Equal(t, "a\n", readFile(t, path))
}
