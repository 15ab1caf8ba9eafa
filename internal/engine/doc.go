// Package engine wires the resolution stages and the source scanner into a
// single request.
//
// Pipeline:
//  1. Flatten, classify, compose and check the configuration tree
//  2. Scan the sources once for literal value occurrences
//  3. Cross-check the resolution against the occurrences
//
// The first failing stage ends the request with its diagnostics. An Engine
// holds no mutable state, so independent requests may run concurrently.
package engine
