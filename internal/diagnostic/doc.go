// Package diagnostic provides the structured errors and warnings reported
// by every resolution stage.
//
// Diagnostics are plain records ({severity, message}) kept in the order they
// were reported. A stage that reports at least one error has failed and the
// pipeline stops there.
package diagnostic
