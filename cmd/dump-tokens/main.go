package main

import (
	"os"

	"github.com/samx-lang/samxlex/harness"
)

func main() {
	err := Execute()
	os.Exit(harness.ExitCode(err))
}
