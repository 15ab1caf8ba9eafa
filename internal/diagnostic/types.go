package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Diagnostics holds the ordered diagnostics reported by one or more stages.
type Diagnostics struct {
	Items []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Message is the human-readable, self-contained description.
	Message string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns the kind tag used when rendering the diagnostic.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(message string, suggestions ...string) {
	d.Items = append(d.Items, Diagnostic{
		Severity:    SeverityError,
		Message:     message,
		Suggestions: suggestions,
	})
}

// AddErrorf adds a formatted error diagnostic.
func (d *Diagnostics) AddErrorf(format string, args ...any) {
	d.AddError(fmt.Sprintf(format, args...))
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(message string, suggestions ...string) {
	d.Items = append(d.Items, Diagnostic{
		Severity:    SeverityWarning,
		Message:     message,
		Suggestions: suggestions,
	})
}

// AddWarningf adds a formatted warning diagnostic.
func (d *Diagnostics) AddWarningf(format string, args ...any) {
	d.AddWarning(fmt.Sprintf(format, args...))
}

// Errors returns the error diagnostics in report order.
func (d *Diagnostics) Errors() []Diagnostic {
	return d.filter(SeverityError)
}

// Warnings returns the warning diagnostics in report order.
func (d *Diagnostics) Warnings() []Diagnostic {
	return d.filter(SeverityWarning)
}

func (d *Diagnostics) filter(s Severity) []Diagnostic {
	var out []Diagnostic

	for _, item := range d.Items {
		if item.Severity == s {
			out = append(out, item)
		}
	}

	return out
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	for _, item := range d.Items {
		if item.Severity == SeverityError {
			return true
		}
	}

	return false
}

// Merge appends another Diagnostics instance to this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Items = append(d.Items, other.Items...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range d.Errors() {
		parts = append(parts, e.Message)
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := d.Severity.String() + ": " + d.Message
	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	return msg
}
