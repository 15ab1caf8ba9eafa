// Package main provides the CLI entrypoint for commentvars.
//
// commentvars resolves a comment variables document and works with the
// placeholders it defines:
//   - check validates the document and every variation
//   - resolve and reverse print the symbol tables
//   - expand and compress rewrite text between placeholders and literals
//   - usage reports placeholders found in Go comments
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := newApp(os.Stdin, os.Stdout, os.Stderr)

	if err := newRootCmd(a).ExecuteContext(ctx); err != nil {
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}

		stop()
		os.Exit(1)
	}
}
