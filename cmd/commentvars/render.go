package main

import (
	"fmt"
	"io"

	"commentvars/internal/diagnostic"
)

// ExitError signals a non-zero exit once diagnostics are already printed.
type ExitError struct {
	Errors int
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	return fmt.Sprintf("%d error(s) reported", e.Errors)
}

// report prints every diagnostic and returns an ExitError when any of them
// is an error.
func report(w io.Writer, diags diagnostic.Diagnostics) error {
	for _, d := range diags.Items {
		fmt.Fprintln(w, d.String())
	}

	if n := len(diags.Errors()); n > 0 {
		return &ExitError{Errors: n}
	}

	return nil
}
