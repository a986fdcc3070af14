// Package diagnostic provides structured warnings and errors for the state
// generator.
//
// Key capabilities:
//   - Derivation errors (malformed collections, multi-field or unit variants,
//     stateful fields that are not models, dependency cycles)
//   - Warnings for unknown field markers and capability names
//   - A combined error value for callers that only need pass/fail
package diagnostic
