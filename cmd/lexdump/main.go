/*
Lexdump runs a small built-in demonstration lexeme set — integers,
identifiers, the four arithmetic operators, parentheses, and skipped
whitespace — over a file or stdin, and prints the resulting token stream.
It is a developer debugging aid for exercising internal/lexer by hand; it is
not part of the library's programmatic surface.

Usage:

	lexdump [flags] [FILE]

The flags are:

	-o, --output FORMAT
		Either "text" (default) or "csv".
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

var flagOutput = pflag.StringP("output", "o", "text", `Output format: "text" or "csv".`)

type lexeme struct {
	typeName string
	contents string
}

func main() {
	pflag.Parse()

	if *flagOutput != "text" && *flagOutput != "csv" {
		fmt.Fprintf(os.Stderr, "unsupported output format: %q\nDo -h for help.\n", *flagOutput)
		os.Exit(1)
	}

	src, err := readSource(pflag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}

	lexemes, err := dump(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lex error: %s\n", err)
		os.Exit(1)
	}

	for _, lx := range lexemes {
		switch *flagOutput {
		case "csv":
			fmt.Printf("%s,%q\n", lx.typeName, lx.contents)
		default:
			fmt.Printf("%-12s %q\n", lx.typeName, lx.contents)
		}
	}
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

// dump builds the demonstration lexer directly on internal/lexer (rather
// than through a syntaxgen Builder and Machine) so it can report every
// lexeme, including the ones a grammar built with
// syntaxgen.Builder.SkipPattern would discard.
func dump(src []byte) ([]lexeme, error) {
	reporter := newReportingMachine()
	return reporter.tokens(src)
}
