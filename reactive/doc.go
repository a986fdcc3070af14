// Package reactive provides the single-value reactive cell used by the
// generated companions and by the collection primitives.
//
// A cell subscribes the currently running observer when it is read and
// synchronously notifies every subscriber when it is written. There is no
// batching or deferred scheduling: Set and Modify return only after every
// subscriber has re-run.
//
// Key types:
//   - Cell: the get/set/modify contract shared by every ownership variant
//   - Signal: the heap-shared cell
//   - Effect: an observer that re-runs whenever a cell it read changes
//
// The runtime keeps the current observer in package state and is not safe for
// concurrent use: all reactive work must stay on a single goroutine.
package reactive
