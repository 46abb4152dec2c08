/*
Parsegen builds the textbook E -> E+T | T; T -> T*F | F; F -> (E) | id
LALR(1) expression grammar and either prints its compiled action/goto table
or parses a given expression and prints the resulting (fully parenthesized)
parse. It is a developer debugging aid for exercising internal/lalr and
internal/translate by hand; it is not part of the library's programmatic
surface.

Usage:

	parsegen --table
	parsegen [FILE]
*/
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

var flagTable = pflag.Bool("table", false, "Print the compiled LALR(1) action/goto table instead of parsing input.")

func main() {
	pflag.Parse()

	m, table := buildExpressionMachine()

	if *flagTable {
		fmt.Println(table.String())
		return
	}

	src, err := readSource(pflag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	result, err := m.TranslateString(nil, strings.TrimSpace(string(src)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse error: %s\n", err)
		os.Exit(1)
	}
	fmt.Println(result)
}

func readSource(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}
	if len(args) > 1 {
		return nil, fmt.Errorf("too many arguments; do -h for help")
	}
	return os.ReadFile(args[0])
}
