// Package gen provides deterministic Go code generation for observable
// companions.
//
// Generation approach uses text/template + go/format for readable Go code.
// For every model of a package it emits, in dependency order:
//   - a shared companion (pointer to a struct of reactive.Signal cells)
//   - a scoped companion (value struct of scope.Signal cells)
//   - a constructor per companion, type switching over union variants
//   - Clone, Equal, Compare and String as requested by the model
package gen
