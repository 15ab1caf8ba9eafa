// Package substitute expands placeholder tokens into literal text and
// compresses literal text back into placeholder tokens.
//
// Both directions work on plain strings; reading and writing source files is
// left to callers.
package substitute
