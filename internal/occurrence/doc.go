// Package occurrence reconciles resolved variables with the string literals
// found in scanned sources.
//
// A Scanner reports every literal value it finds together with its file and
// span. CrossCheck then verifies that every declared value is backed by
// exactly one literal and maps each key to the place it is declared.
package occurrence
