package commentscan

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/tools/go/packages"

	"commentvars/internal/keys"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax

// Usage is one placeholder token found in a comment.
type Usage struct {
	// Token is the placeholder as written, e.g. "$COMMENT#CAR".
	Token string
	// Key is the identifier the token names.
	Key string
	// Start and End delimit the token in its file.
	Start token.Position
	End   token.Position
}

// String returns "file:line:col: token".
func (u Usage) String() string {
	return fmt.Sprintf("%s: %s", u.Start, u.Token)
}

// Scanner loads Go packages and collects placeholder usages from comments.
type Scanner struct {
	dir     string
	ignores []string
}

// New creates a Scanner rooted at dir. Ignore globs are matched against
// slash-separated paths relative to dir.
func New(dir string, ignores []string) *Scanner {
	if dir == "" {
		dir = "."
	}

	return &Scanner{dir: dir, ignores: ignores}
}

// LoadPackages loads the packages matching patterns and returns every
// placeholder usage in their comments, in file order.
func (s *Scanner) LoadPackages(ctx context.Context, patterns ...string) ([]Usage, error) {
	root, err := filepath.Abs(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve scan root: %w", err)
	}

	cfg := &packages.Config{
		Mode:    LoadMode,
		Context: ctx,
		Dir:     root,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %v", errs)
	}

	var (
		usages []Usage
		seen   = map[string]bool{}
	)

	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			name := pkg.Fset.Position(file.Pos()).Filename
			if seen[name] {
				continue
			}

			seen[name] = true

			if s.ignored(root, name) {
				continue
			}

			usages = append(usages, ScanFile(pkg.Fset, file)...)
		}
	}

	return usages, nil
}

// ignored reports whether the file at path matches an ignore glob.
func (s *Scanner) ignored(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}

	rel = filepath.ToSlash(rel)

	for _, pattern := range s.ignores {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}

	return false
}

// ParseSource parses a single Go file and returns the placeholder usages in
// its comments. src follows the go/parser conventions (nil reads filename).
func ParseSource(filename string, src any) ([]Usage, error) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	return ScanFile(fset, file), nil
}

// ScanFile returns the placeholder usages in the comments of a parsed file.
func ScanFile(fset *token.FileSet, file *ast.File) []Usage {
	var usages []Usage

	for _, group := range file.Comments {
		for _, c := range group.List {
			for _, r := range keys.FindTokens(c.Text) {
				tok := c.Text[r[0]:r[1]]
				id, _ := keys.ParsePlaceholder(tok)

				usages = append(usages, Usage{
					Token: tok,
					Key:   id,
					Start: fset.Position(c.Pos() + token.Pos(r[0])),
					End:   fset.Position(c.Pos() + token.Pos(r[1])),
				})
			}
		}
	}

	return usages
}
