// ABOUTME: Interactive shell keeping one in-memory dashboard across commands.
// ABOUTME: Each line is tokenized and run through a fresh command tree over the shared App.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var errUnterminatedQuote = errors.New("unterminated quote")

func newShellCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive dashboard session",
		Long: `Start an interactive prompt. All commands share one in-memory store and
one login session until you exit.

Quote arguments that contain spaces:

  bbg> login admin
  bbg(admin)> captain add --name "Dana Cruz" --specialization Yoga --experience "4 years"
  bbg(admin)> exit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShell(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func (c *cli) runShell(in io.Reader, out io.Writer) error {
	c.inShell = true
	defer func() { c.inShell = false }()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, c.prompt())
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		args, err := splitArgs(scanner.Text())
		if err != nil {
			fmt.Fprintln(out, color.RedString("Error: %v", err))
			continue
		}
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			return nil
		}

		root := newRootCmd(c)
		root.SetIn(in)
		root.SetOut(out)
		root.SetErr(out)
		root.SetArgs(args)
		if err := root.Execute(); err != nil {
			fmt.Fprintln(out, color.RedString("Error: %v", err))
		}
	}
}

func (c *cli) prompt() string {
	if c.app == nil {
		return "bbg> "
	}
	ident, err := c.app.Whoami()
	if err != nil {
		return "bbg> "
	}
	return fmt.Sprintf("bbg(%s)> ", ident.Role)
}

// splitArgs splits a shell line on whitespace. Single and double quotes group
// words; a backslash escapes the next character outside single quotes.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)

	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				args = append(args, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}

	if quote != 0 || escaped {
		return nil, errUnterminatedQuote
	}
	if inWord {
		args = append(args, cur.String())
	}
	return args, nil
}
