// Package model holds the in-memory description of derivable models.
//
// Key types:
//   - Declaration: a record (struct) or union (sealed interface) model
//   - Field: a record field or union payload with its markers and classification
//   - Classification: Bare, Stateful, Collection or StatefulCollection
//   - Features: the optional capabilities (clone, eq, ord, debug)
package model
