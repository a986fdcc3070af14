package analyze

import (
	"go/types"

	"golang.org/x/tools/go/packages"

	"state-generator/internal/diagnostic"
	"state-generator/internal/model"
)

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path   string          // Import path
	Name   string          // Package name
	Dir    string          // Directory holding the package's Go files
	Types  *types.Package  // Type-checked package
	Models []model.ModelID // Models declared in this package, in source order

	// Diagnostics collects warnings and errors raised for this package.
	Diagnostics diagnostic.Diagnostics
}

// ModelGraph holds all models found in the loaded packages.
type ModelGraph struct {
	// Models maps identities to declarations for every loaded package.
	Models model.Index
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
	// Order lists package paths in load order.
	Order []string
	// TypeErrors holds the type errors tolerated while the generated file
	// was skipped.
	TypeErrors []packages.Error
}

// NewModelGraph creates a new empty ModelGraph.
func NewModelGraph() *ModelGraph {
	return &ModelGraph{
		Models:   make(model.Index),
		Packages: make(map[string]*PackageInfo),
	}
}

// Lookup returns the declaration for id, or false if it is not a model.
func (g *ModelGraph) Lookup(id model.ModelID) (*model.Declaration, bool) {
	return g.Models.Lookup(id)
}

// ModelsOf returns the declarations of a package in source order.
func (g *ModelGraph) ModelsOf(pkgPath string) []*model.Declaration {
	info, ok := g.Packages[pkgPath]
	if !ok {
		return nil
	}

	decls := make([]*model.Declaration, 0, len(info.Models))
	for _, id := range info.Models {
		if d, ok := g.Models[id]; ok {
			decls = append(decls, d)
		}
	}

	return decls
}

// Diagnostics merges the diagnostics of every package in load order.
func (g *ModelGraph) Diagnostics() diagnostic.Diagnostics {
	var all diagnostic.Diagnostics
	for _, path := range g.Order {
		all.Merge(g.Packages[path].Diagnostics)
	}

	return all
}

// PackagePaths returns the paths of the loaded packages in load order.
func (g *ModelGraph) PackagePaths() []string {
	return g.Order
}
