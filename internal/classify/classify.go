// Package classify decides which of the four derivation rules applies to a
// record field or a union payload.
//
// Two markers are read independently from the `state` struct tag:
// "stateful" (wrap the field's companion) and "collection" (wrap the
// elements of a slice or array). Their combination is the classification.
package classify

import (
	"fmt"
	"go/types"
	"reflect"
	"strings"

	"state-generator/internal/diagnostic"
	"state-generator/internal/model"
)

// TagKey is the struct tag key holding field markers.
const TagKey = "state"

// Marker names accepted in the struct tag.
const (
	MarkerStateful   = "stateful"
	MarkerCollection = "collection"
)

// Registry answers whether a named type is a derived model.
type Registry interface {
	Lookup(id model.ModelID) (*model.Declaration, bool)
}

// Classifier classifies fields against a registry of known models.
type Classifier struct {
	registry Registry
}

// New creates a Classifier resolving stateful targets through registry.
func New(registry Registry) *Classifier {
	return &Classifier{registry: registry}
}

// ParseMarkers reads the `state` tag. Markers are comma separated; unknown
// ones are reported in Markers.Unknown.
func ParseMarkers(tag reflect.StructTag) model.Markers {
	var m model.Markers

	raw, ok := tag.Lookup(TagKey)
	if !ok {
		return m
	}

	for part := range strings.SplitSeq(raw, ",") {
		switch name := strings.TrimSpace(part); name {
		case "":
		case MarkerStateful:
			m.Stateful = true
		case MarkerCollection:
			m.Collection = true
		default:
			m.Unknown = append(m.Unknown, name)
		}
	}

	return m
}

// CollectionElem extracts the element type of a collection-shaped type: a
// slice, an array, or a named type whose underlying type is one of those.
func CollectionElem(t types.Type) (types.Type, model.CollectionShape, bool) {
	switch tt := types.Unalias(t).(type) {
	case *types.Slice:
		return tt.Elem(), model.ShapeSlice, true
	case *types.Array:
		return tt.Elem(), model.ShapeArray, true
	case *types.Named:
		switch under := tt.Underlying().(type) {
		case *types.Slice:
			return under.Elem(), model.ShapeNamedSlice, true
		case *types.Array:
			return under.Elem(), model.ShapeArray, true
		}
	}

	return nil, model.ShapeNone, false
}

// ModelOf returns the model declared by t, if t is a (possibly instantiated)
// named model type.
func (c *Classifier) ModelOf(t types.Type) (*model.Declaration, bool) {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return nil, false
	}

	origin := named.Origin().Obj()

	return c.registry.Lookup(model.ModelID{PkgPath: origin.Pkg().Path(), Name: origin.Name()})
}

// Field fills in the markers, classification, element type and shape of f.
// It reports false when the field cannot be derived; the reason is recorded
// in diags.
func (c *Classifier) Field(f *model.Field, modelName, path string, diags *diagnostic.Diagnostics) bool {
	f.Markers = ParseMarkers(f.Tag)
	for _, unknown := range f.Markers.Unknown {
		diags.AddWarning(diagnostic.CodeUnknownMarker,
			fmt.Sprintf("unknown marker %q in `%s` tag", unknown, TagKey), modelName, path)
	}

	f.Class = model.Classify(f.Markers.Stateful, f.Markers.Collection)

	target := f.Type

	if f.Class.IsCollection() {
		elem, shape, ok := CollectionElem(f.Type)
		if !ok {
			diags.AddError(diagnostic.CodeCollectionShape,
				fmt.Sprintf("field marked %q has type %s, which is not a slice, an array or a named slice/array type",
					MarkerCollection, f.Type), modelName, path)

			return false
		}

		f.Elem, f.Shape = elem, shape
		target = elem
	}

	if f.Class.IsStateful() {
		decl, ok := c.ModelOf(target)
		if !ok {
			diags.AddError(diagnostic.CodeStatefulNotModel,
				fmt.Sprintf("field marked %q has type %s, which is not a derived model (missing //state:derive?)",
					MarkerStateful, target), modelName, path)

			return false
		}

		f.Target = decl.ID
	}

	return true
}
