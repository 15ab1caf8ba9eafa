package engine

import (
	"context"
	"errors"
	"fmt"

	"commentvars/internal/config"
	"commentvars/internal/diagnostic"
	"commentvars/internal/occurrence"
	"commentvars/internal/resolve"
)

// Request is one resolution request.
type Request struct {
	// Tree is the core configuration tree.
	Tree *config.Tree
	// Paths are handed to the scanner.
	Paths []string
}

// Result is the outcome of a successful resolution.
type Result struct {
	*resolve.Resolution

	// Locations maps keys to the occurrence declaring their value.
	Locations *occurrence.Locations
}

// Engine resolves configuration trees.
type Engine struct {
	scanner occurrence.Scanner
}

// New creates an Engine using scanner to find value occurrences.
func New(scanner occurrence.Scanner) *Engine {
	return &Engine{scanner: scanner}
}

// Resolve runs the full pipeline. On failure the result is nil and the
// diagnostics hold the failing stage's messages. The error return is
// reserved for scanner failures.
func (e *Engine) Resolve(ctx context.Context, req Request) (*Result, diagnostic.Diagnostics, error) {
	if e.scanner == nil {
		return nil, diagnostic.Diagnostics{}, errors.New("engine has no scanner")
	}

	r, diags := resolve.Resolve(req.Tree)
	if diags.HasErrors() {
		return nil, diags, nil
	}

	occs, err := e.scanner.Scan(ctx, req.Paths)
	if err != nil {
		return nil, diagnostic.Diagnostics{}, fmt.Errorf("scan sources: %w", err)
	}

	locations, diags := occurrence.CrossCheck(r, occs)
	if diags.HasErrors() {
		return nil, diags, nil
	}

	return &Result{Resolution: r, Locations: locations}, diags, nil
}

// ResolveDocument resolves the data section of a document, scanning the
// document file itself for occurrences.
func (e *Engine) ResolveDocument(ctx context.Context, doc *config.Document) (*Result, diagnostic.Diagnostics, error) {
	if diags := config.Validate(doc); diags.HasErrors() {
		return nil, diags, nil
	}

	var paths []string
	if doc.Path != "" {
		paths = []string{doc.Path}
	}

	return e.Resolve(ctx, Request{Tree: doc.Data, Paths: paths})
}
