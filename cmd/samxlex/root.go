package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "samxlex",
	Short: "Generate a portable DFA from a lexical specification",
	Long: `samxlex provides two features:
* Generates a portable DFA from a lexical specification.
* Tokenizes a text stream according to the lexical specification or the built-in SamX grammar.
  This feature is primarily aimed at debugging the lexical specification.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}

// openLogFile opens fileName for a debug log and writes a start banner. The returned function writes the
// footer according to the final error and closes the file.
func openLogFile(fileName string, cmdName string) (*os.File, func(err error), error) {
	f, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("Cannot open the log file %s: %w", fileName, err)
	}
	fmt.Fprintf(f, `samxlex %v starts.
Date time: %v
---
`, cmdName, time.Now().Format(time.RFC3339))
	return f, func(err error) {
		defer f.Close()
		fmt.Fprintf(f, "---\n")
		if err != nil {
			fmt.Fprintf(f, "samxlex %v failed: %v\n", cmdName, err)
		} else {
			fmt.Fprintf(f, "samxlex %v succeeded.\n", cmdName)
		}
	}, nil
}
