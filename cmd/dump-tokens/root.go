package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/samx-lang/samxlex/driver"
	"github.com/samx-lang/samxlex/harness"
	"github.com/samx-lang/samxlex/log"
	"github.com/samx-lang/samxlex/spec"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	verbose *bool
	dump    *bool
	spec    *string
	debug   *bool
}{}

var rootCmd = &cobra.Command{
	Use:   "dump-tokens FILE",
	Short: "Tokenize a file and reset the lexer cache",
	Long: `dump-tokens reads FILE through a lexer until the end of input, then constructs a second lexer
over a fresh read of FILE and clears its transition cache.
By default the built-in SamX grammar is used.

Exit status:
  0  success
  1  usage error
  2  the input file cannot be read
  3  any other failure, including an invalid token`,
	Example: `  dump-tokens --verbose src.samx
  dump-tokens --dump --spec clexspec.json src.txt`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runRoot,
}

func init() {
	rootFlags.verbose = rootCmd.Flags().BoolP("verbose", "v", false, "print the input path before tokenizing")
	rootFlags.dump = rootCmd.Flags().Bool("dump", false, "print every token as a JSON line")
	rootFlags.spec = rootCmd.Flags().StringP("spec", "s", "", "compiled lexical specification file path (default: the built-in SamX grammar)")
	rootFlags.debug = rootCmd.Flags().BoolP("debug", "d", false, "enable logging")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &harness.UsageError{
			Message: err.Error(),
		}
	})
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		var usageErr *harness.UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprint(os.Stderr, rootCmd.UsageString())
		}
		return err
	}
	return nil
}

func runRoot(cmd *cobra.Command, args []string) (retErr error) {
	_, err := harness.InputPath(args)
	if err != nil {
		return err
	}

	hOpts := []harness.Option{
		harness.Verbose(*rootFlags.verbose),
		harness.DumpTokens(*rootFlags.dump),
		harness.Stdout(os.Stdout),
	}
	var lOpts []driver.LexerOption
	if *rootFlags.debug {
		fileName := "dump-tokens.log"
		f, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("Cannot open the log file %s: %w", fileName, err)
		}
		defer f.Close()
		fmt.Fprintf(f, `dump-tokens starts.
Date time: %v
---
`, time.Now().Format(time.RFC3339))
		defer func() {
			fmt.Fprintf(f, "---\n")
			if retErr != nil {
				fmt.Fprintf(f, "dump-tokens failed: %v\n", retErr)
			} else {
				fmt.Fprintf(f, "dump-tokens succeeded.\n")
			}
		}()

		logger, err := log.NewLogger(f)
		if err != nil {
			return err
		}
		hOpts = append(hOpts, harness.Logger(logger))
		lOpts = append(lOpts, driver.EnableLogging(f))
	}

	factory := harness.NewSamXFactory(lOpts...)
	if *rootFlags.spec != "" {
		clspec, err := spec.ReadCompiledLexSpec(*rootFlags.spec)
		if err != nil {
			var pathErr *fs.PathError
			if errors.As(err, &pathErr) {
				return &harness.IOError{
					Path: *rootFlags.spec,
					Err:  err,
				}
			}
			return fmt.Errorf("Cannot read a compiled lexical specification: %w", err)
		}
		factory = harness.NewDriverFactory(clspec, lOpts...)
	}

	h, err := harness.New(factory, hOpts...)
	if err != nil {
		return err
	}
	return h.Run(args)
}
