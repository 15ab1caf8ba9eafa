// Package commentscan finds placeholder tokens inside Go comments.
//
// Packages are loaded with golang.org/x/tools/go/packages; only syntax is
// needed, so type checking is skipped. Files matching the document's ignore
// globs are left out of the scan.
package commentscan
