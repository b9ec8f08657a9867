// ABOUTME: Entry point for bbg CLI.
// ABOUTME: Invokes the root Cobra command and prints errors in red.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	c := newCLI(os.Stdin, os.Stdout)
	err := newRootCmd(c).Execute()
	c.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}
