package model

import (
	"go/token"
	"go/types"
	"reflect"
)

// DeclKind distinguishes record models from union models.
type DeclKind int

const (
	DeclRecord DeclKind = iota // struct with named fields
	DeclUnion                  // sealed interface with single-field variants
)

// String returns a human-readable representation of the DeclKind.
func (k DeclKind) String() string {
	switch k {
	case DeclRecord:
		return "record"
	case DeclUnion:
		return "union"
	default:
		return "unknown"
	}
}

// ModelID uniquely identifies a model by its package path and name.
type ModelID struct {
	PkgPath string
	Name    string
}

// String returns a human-readable representation of the ModelID.
func (id ModelID) String() string {
	if id.PkgPath == "" {
		return id.Name
	}

	return id.PkgPath + "." + id.Name
}

// Declaration is a model found in the source: a record or a union.
type Declaration struct {
	ID       ModelID
	Kind     DeclKind
	Named    *types.Named // the declared type
	Features Features
	Pos      token.Position

	// Fields holds record fields. Empty for unions.
	Fields []Field
	// Variants holds union cases in case-index order. Empty for records.
	Variants []Variant
}

// TypeParams returns the type parameters of the declaration, if any.
func (d *Declaration) TypeParams() *types.TypeParamList {
	if d.Named == nil {
		return nil
	}

	return d.Named.TypeParams()
}

// DisplayName returns the package-qualified name used in diagnostics,
// e.g. "todo.Task".
func (d *Declaration) DisplayName() string {
	if d.Named == nil || d.Named.Obj().Pkg() == nil {
		return d.ID.Name
	}

	return d.Named.Obj().Pkg().Name() + "." + d.ID.Name
}

// Dependencies returns the models this declaration's stateful fields and
// payloads wrap, without duplicates, in field order.
func (d *Declaration) Dependencies() []ModelID {
	var deps []ModelID

	seen := make(map[ModelID]bool)
	add := func(f Field) {
		if !f.Class.IsStateful() || seen[f.Target] {
			return
		}

		seen[f.Target] = true
		deps = append(deps, f.Target)
	}

	for _, f := range d.Fields {
		add(f)
	}

	for _, v := range d.Variants {
		add(v.Payload)
	}

	return deps
}

// Field is a record field or a union variant's payload.
type Field struct {
	Name     string
	Type     types.Type
	Tag      reflect.StructTag
	Markers  Markers
	Class    Classification
	Elem     types.Type // element type for collection classifications
	Shape    CollectionShape
	Target   ModelID // model wrapped by stateful classifications
	Embedded bool
}

// Variant is one case of a union.
type Variant struct {
	Name    string
	Named   *types.Named
	Pointer bool // the case is matched as *Variant
	Index   int
	Payload Field
}

// Markers are the classification markers found on a field.
type Markers struct {
	Stateful   bool
	Collection bool
	Unknown    []string
}

// CollectionShape is how a collection-classified field is turned into a
// slice by the constructor.
type CollectionShape int

const (
	ShapeNone       CollectionShape = iota
	ShapeSlice                      // []E, used as is
	ShapeArray                      // [N]E or a named array, sliced with [:]
	ShapeNamedSlice                 // named type over []E, converted to []E
)

// Features are the optional capabilities requested for a model.
type Features struct {
	Clone bool
	Eq    bool
	Ord   bool
	Debug bool
}

// Any reports whether any capability is requested.
func (f Features) Any() bool {
	return f.Clone || f.Eq || f.Ord || f.Debug
}

// Index maps model identities to their declarations.
type Index map[ModelID]*Declaration

// Lookup returns the declaration registered under id.
func (ix Index) Lookup(id ModelID) (*Declaration, bool) {
	d, ok := ix[id]
	return d, ok
}

// Add registers d under its identity.
func (ix Index) Add(d *Declaration) {
	ix[d.ID] = d
}
