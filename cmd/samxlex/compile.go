package main

import (
	"fmt"
	"io"
	"os"

	"github.com/samx-lang/samxlex/compiler"
	"github.com/samx-lang/samxlex/spec"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	debug  *bool
	compLv *int
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "compile [lexspec]",
		Short: "Compile a lexical specification into a DFA",
		Long: `compile takes a lexical specification and generates a DFA accepting the tokens described in the specification.
A file with the .toml extension is read as TOML, any other input as JSON.`,
		Example: `  Read from/Write to the specified file:
    samxlex compile lexspec.toml -o clexspec.json
  Read from stdin and write to stdout:
    cat lexspec.json | samxlex compile`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompile,
	}
	compileFlags.debug = cmd.Flags().BoolP("debug", "d", false, "enable logging")
	compileFlags.compLv = cmd.Flags().Int("compression-level", compiler.CompressionLevelDefault, fmt.Sprintf("compression level (%v to %v)", compiler.CompressionLevelMin, compiler.CompressionLevelMax))
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) (retErr error) {
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	lspec, err := readLexSpec(path)
	if err != nil {
		return fmt.Errorf("Cannot read a lexical specification: %w", err)
	}

	opts := []compiler.CompilerOption{
		compiler.CompressionLevel(*compileFlags.compLv),
	}
	if *compileFlags.debug {
		f, done, err := openLogFile("samxlex-compile.log", "compile")
		if err != nil {
			return err
		}
		defer func() {
			done(retErr)
		}()

		opts = append(opts, compiler.EnableLogging(f))
	}

	clspec, err := compiler.Compile(lspec, opts...)
	if err != nil {
		return err
	}
	err = writeCompiledLexSpec(clspec, *compileFlags.output)
	if err != nil {
		return fmt.Errorf("Cannot write a compiled lexical specification: %w", err)
	}

	return nil
}

func readLexSpec(path string) (*spec.LexSpec, error) {
	if path != "" {
		return spec.ReadLexSpec(path)
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, err
	}
	return spec.ParseLexSpecJSON(data)
}

func writeCompiledLexSpec(clspec *spec.CompiledLexSpec, path string) error {
	w := os.Stdout
	if path != "" {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("Cannot open the output file %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}
	return spec.WriteCompiledLexSpec(w, clspec)
}
