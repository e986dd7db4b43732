package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samx-lang/samxlex/compiler"
	"github.com/samx-lang/samxlex/harness"
	"github.com/samx-lang/samxlex/spec"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args. Flag values are reset first because rootCmd is shared by tests.
func execute(t *testing.T, args ...string) int {
	t.Helper()

	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		require.NoError(t, f.Value.Set(f.DefValue))
		f.Changed = false
	})
	rootCmd.SetArgs(append([]string{}, args...))
	return harness.ExitCode(Execute())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// writeCompiledLexSpec writes a compiled specification accepting lowercase words separated by spaces.
func writeCompiledLexSpec(t *testing.T, dir string) string {
	t.Helper()

	clspec, err := compiler.Compile(&spec.LexSpec{
		Name: "words",
		Entries: []*spec.LexEntry{
			spec.NewLexEntry("word", "[a-z]+"),
			{
				Kind:    "space",
				Pattern: " +",
				Skip:    true,
			},
		},
	})
	require.NoError(t, err)

	path := filepath.Join(dir, "clexspec.json")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, spec.WriteCompiledLexSpec(f, clspec))
	return path
}

func TestExecute_ExitCodes(t *testing.T) {
	dir := t.TempDir()
	words := writeFile(t, dir, "words.txt", "foo bar")
	digits := writeFile(t, dir, "digits.txt", "foo 42")
	clexspec := writeCompiledLexSpec(t, dir)
	broken := writeFile(t, dir, "broken.json", `{"name": "broken"}`)
	missing := filepath.Join(dir, "missing.json")

	tests := []struct {
		caption  string
		args     []string
		exitCode int
	}{
		{
			caption:  "no arguments",
			args:     nil,
			exitCode: harness.ExitUsage,
		},
		{
			caption:  "two input files",
			args:     []string{words, digits},
			exitCode: harness.ExitUsage,
		},
		{
			caption:  "an unknown flag",
			args:     []string{"--no-such-flag", words},
			exitCode: harness.ExitUsage,
		},
		{
			caption:  "a missing input file",
			args:     []string{"--spec", clexspec, filepath.Join(dir, "missing.txt")},
			exitCode: harness.ExitIO,
		},
		{
			caption:  "a missing compiled specification",
			args:     []string{"--spec", missing, words},
			exitCode: harness.ExitIO,
		},
		{
			caption:  "a broken compiled specification",
			args:     []string{"--spec", broken, words},
			exitCode: harness.ExitFailure,
		},
		{
			caption:  "tokenizable input",
			args:     []string{"--spec", clexspec, "--verbose", "--dump", words},
			exitCode: harness.ExitOK,
		},
		{
			caption:  "input with an invalid token",
			args:     []string{"--spec", clexspec, digits},
			exitCode: harness.ExitFailure,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			assert.Equal(t, tt.exitCode, execute(t, tt.args...))
		})
	}
}

func TestExecute_Debug(t *testing.T) {
	dir := t.TempDir()
	words := writeFile(t, dir, "words.txt", "foo bar")
	clexspec := writeCompiledLexSpec(t, dir)
	t.Chdir(dir)

	require.Equal(t, harness.ExitOK, execute(t, "--debug", "--spec", clexspec, words))

	content, err := os.ReadFile(filepath.Join(dir, "dump-tokens.log"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "dump-tokens starts.")
	assert.Contains(t, string(content), "dump-tokens succeeded.")
}
