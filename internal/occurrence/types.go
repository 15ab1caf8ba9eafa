package occurrence

import (
	"context"
	"fmt"
)

// Position is a 1-based line/column position.
type Position struct {
	Line   int
	Column int
}

// SourceSpan is an end-exclusive range in a source file. The engine carries
// spans without interpreting them.
type SourceSpan struct {
	Start Position
	End   Position
}

// ValueOccurrence is a literal string value found in a scanned source file.
type ValueOccurrence struct {
	Value    string
	FilePath string
	Location SourceSpan
}

// String returns "path:line:column".
func (o ValueOccurrence) String() string {
	return fmt.Sprintf("%s:%d:%d", o.FilePath, o.Location.Start.Line, o.Location.Start.Column)
}

// Scanner finds literal value occurrences in source files.
type Scanner interface {
	Scan(ctx context.Context, paths []string) ([]ValueOccurrence, error)
}

// Locations maps keys to the occurrence that declares their value.
type Locations struct {
	// All maps every key, aliases included, to its occurrence.
	All map[string]ValueOccurrence
	// NonAlias maps plain and composed keys to their occurrence.
	NonAlias map[string]ValueOccurrence
	// Alias maps alias keys to the occurrence of their target.
	Alias map[string]ValueOccurrence
}
