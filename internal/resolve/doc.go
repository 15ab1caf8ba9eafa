// Package resolve turns a configuration tree into a flat, validated,
// reversible symbol table.
//
// Resolution pipeline:
//  1. Flatten the tree into identifier -> (value, source) entries
//  2. Classify entries as plain, alias (value already owned by an earlier
//     entry) or composed (value is a run of placeholder tokens)
//  3. Expand composed values one level deep
//  4. Check that resolved values are unique and build the reverse mapping
//
// Each stage returns diagnostics; the first stage that reports an error stops
// the pipeline and no partial result is returned.
package resolve
