package main

import (
	"fmt"
	"io"
	"os"

	"github.com/samx-lang/samxlex/driver"
	"github.com/samx-lang/samxlex/harness"
	"github.com/samx-lang/samxlex/samx"
	"github.com/samx-lang/samxlex/spec"
	"github.com/spf13/cobra"
)

var lexFlags = struct {
	debug        *bool
	source       *string
	output       *string
	breakOnError *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "lex [clexspec]",
		Short: "Tokenize a text stream",
		Long: `lex takes a text stream and tokenizes it according to a compiled lexical specification.
As use ` + "`samxlex compile`" + `, you can generate the specification.
Without a compiled lexical specification, lex uses the built-in SamX grammar.`,
		Example: `  cat src | samxlex lex clexspec.json
  samxlex lex -s src.samx`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLex,
	}
	lexFlags.debug = cmd.Flags().BoolP("debug", "d", false, "enable logging")
	lexFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default: stdin)")
	lexFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default: stdout)")
	lexFlags.breakOnError = cmd.Flags().BoolP("break-on-error", "b", false, "break lexical analysis with exit status 1 immediately when an error token appears.")
	rootCmd.AddCommand(cmd)
}

func runLex(cmd *cobra.Command, args []string) (retErr error) {
	clspec, err := compiledLexSpec(args)
	if err != nil {
		return fmt.Errorf("Cannot read a compiled lexical specification: %w", err)
	}

	var opts []driver.LexerOption
	if *lexFlags.debug {
		f, done, err := openLogFile("samxlex-lex.log", "lex")
		if err != nil {
			return err
		}
		defer func() {
			done(retErr)
		}()

		opts = append(opts, driver.EnableLogging(f))
	}

	var lex *driver.Lexer
	{
		var src io.Reader = os.Stdin
		if *lexFlags.source != "" {
			f, err := os.Open(*lexFlags.source)
			if err != nil {
				return fmt.Errorf("Cannot open the source file %s: %w", *lexFlags.source, err)
			}
			defer f.Close()
			src = f
		}
		lex, err = driver.NewLexer(clspec, src, opts...)
		if err != nil {
			return err
		}
	}
	w := os.Stdout
	if *lexFlags.output != "" {
		f, err := os.OpenFile(*lexFlags.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("Cannot open the output file %s: %w", *lexFlags.output, err)
		}
		defer f.Close()
		w = f
	}
	for {
		tok, err := lex.Next()
		if err != nil {
			return err
		}
		if tok.Invalid && *lexFlags.breakOnError {
			return fmt.Errorf("detected an error token: %v", tok)
		}
		err = harness.WriteToken(w, tok)
		if err != nil {
			return fmt.Errorf("failed to write a token; token: %v, error: %w", tok, err)
		}
		if tok.EOF {
			break
		}
	}

	return nil
}

func compiledLexSpec(args []string) (*spec.CompiledLexSpec, error) {
	if len(args) == 0 {
		return samx.CompiledLexSpec()
	}
	return spec.ReadCompiledLexSpec(args[0])
}
