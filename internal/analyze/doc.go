// Package analyze loads Go packages and extracts derivable models.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to find type
// declarations carrying the //state:derive directive and to build a
// model.Declaration for each of them.
//
// Key types:
//   - Analyzer: loads packages and classifies every field and payload
//   - ModelGraph: declarations by identity plus per-package source order
//   - TypePath: readable field paths used in diagnostics
package analyze
