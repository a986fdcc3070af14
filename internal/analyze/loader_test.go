package analyze

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"state-generator/internal/diagnostic"
	"state-generator/internal/model"
)

const todoPkg = "state-generator/examples/todo"

func loadTodo(t *testing.T) *ModelGraph {
	t.Helper()

	graph, err := NewAnalyzer().SkipFile("state_gen.go").LoadPackages(todoPkg)
	require.NoError(t, err)
	require.NotNil(t, graph)

	return graph
}

func findField(t *testing.T, d *model.Declaration, name string) model.Field {
	t.Helper()

	for _, f := range d.Fields {
		if f.Name == name {
			return f
		}
	}

	t.Fatalf("field %s not found on %s", name, d.ID)

	return model.Field{}
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	graph := loadTodo(t)

	assert.Contains(t, graph.Packages, todoPkg)
	assert.Equal(t, []string{todoPkg}, graph.PackagePaths())

	var names []string
	for _, d := range graph.ModelsOf(todoPkg) {
		names = append(names, d.ID.Name)
	}

	assert.Equal(t, []string{"Pair", "User", "Task", "Todo", "Event", "Box", "Shelf"}, names)

	_, ok := graph.Lookup(model.ModelID{PkgPath: todoPkg, Name: "Labels"})
	assert.False(t, ok, "types without the directive are not models")

	all := graph.Diagnostics()
	assert.True(t, all.IsValid(), "%v", all.Error())
}

func TestAnalyzer_RecordFields(t *testing.T) {
	graph := loadTodo(t)

	todo, ok := graph.Lookup(model.ModelID{PkgPath: todoPkg, Name: "Todo"})
	require.True(t, ok)
	assert.Equal(t, model.DeclRecord, todo.Kind)
	assert.Equal(t, model.Features{Clone: true, Eq: true, Debug: true}, todo.Features)
	assert.Equal(t, "model.go", filepath.Base(todo.Pos.Filename))

	tests := []struct {
		field string
		class model.Classification
		shape model.CollectionShape
	}{
		{"Title", model.ClassBare, model.ShapeNone},
		{"Owner", model.ClassStateful, model.ShapeNone},
		{"Tags", model.ClassCollection, model.ShapeSlice},
		{"Tasks", model.ClassStatefulCollection, model.ShapeSlice},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			f := findField(t, todo, tt.field)
			assert.Equal(t, tt.class, f.Class)
			assert.Equal(t, tt.shape, f.Shape)
		})
	}

	assert.Equal(t, []model.ModelID{
		{PkgPath: todoPkg, Name: "User"},
		{PkgPath: todoPkg, Name: "Task"},
	}, todo.Dependencies())

	task, ok := graph.Lookup(model.ModelID{PkgPath: todoPkg, Name: "Task"})
	require.True(t, ok)
	assert.Equal(t, model.ShapeNamedSlice, findField(t, task, "Labels").Shape)
}

func TestAnalyzer_UnionVariants(t *testing.T) {
	graph := loadTodo(t)

	event, ok := graph.Lookup(model.ModelID{PkgPath: todoPkg, Name: "Event"})
	require.True(t, ok)
	assert.Equal(t, model.DeclUnion, event.Kind)
	require.Len(t, event.Variants, 3)

	tests := []struct {
		name    string
		pointer bool
		payload string
		class   model.Classification
		shape   model.CollectionShape
	}{
		{"Renamed", false, "Title", model.ClassBare, model.ShapeNone},
		{"Assigned", false, "Task", model.ClassStateful, model.ShapeNone},
		{"Tagged", true, "Tags", model.ClassCollection, model.ShapeArray},
	}

	for i, tt := range tests {
		v := event.Variants[i]
		assert.Equal(t, tt.name, v.Name)
		assert.Equal(t, i, v.Index)
		assert.Equal(t, tt.pointer, v.Pointer)
		assert.Equal(t, tt.payload, v.Payload.Name)
		assert.Equal(t, tt.class, v.Payload.Class)
		assert.Equal(t, tt.shape, v.Payload.Shape)
	}
}

func TestAnalyzer_GenericModel(t *testing.T) {
	graph := loadTodo(t)

	box, ok := graph.Lookup(model.ModelID{PkgPath: todoPkg, Name: "Box"})
	require.True(t, ok)
	require.Equal(t, 1, box.TypeParams().Len())
	assert.Equal(t, "T", box.TypeParams().At(0).Obj().Name())

	shelf, ok := graph.Lookup(model.ModelID{PkgPath: todoPkg, Name: "Shelf"})
	require.True(t, ok)

	featured := findField(t, shelf, "Featured")
	assert.Equal(t, model.ClassStateful, featured.Class)
	assert.Equal(t, "Box", featured.Target.Name)

	latest := findField(t, shelf, "Latest")
	assert.Equal(t, "Event", latest.Target.Name)
}

func TestAnalyzer_InvalidModels(t *testing.T) {
	graph, err := NewAnalyzer().LoadPackages("./testdata/invalid")
	require.NoError(t, err)

	diags := graph.Diagnostics()
	require.True(t, diags.HasErrors())

	byCode := make(map[string][]diagnostic.Diagnostic)
	for _, d := range diags.Errors {
		byCode[d.Code] = append(byCode[d.Code], d)
	}

	require.Len(t, byCode[diagnostic.CodeCollectionShape], 1)
	assert.Equal(t, "Bad.Count", byCode[diagnostic.CodeCollectionShape][0].FieldPath)
	assert.NotEmpty(t, byCode[diagnostic.CodeCollectionShape][0].Position)

	require.Len(t, byCode[diagnostic.CodeStatefulNotModel], 1)
	assert.Equal(t, "Bad.Plain", byCode[diagnostic.CodeStatefulNotModel][0].FieldPath)

	require.Len(t, byCode[diagnostic.CodeUnitVariant], 1)
	assert.Equal(t, "Shape.Point", byCode[diagnostic.CodeUnitVariant][0].FieldPath)

	require.Len(t, byCode[diagnostic.CodeMultiFieldVariant], 1)
	assert.Equal(t, "Shape.Line", byCode[diagnostic.CodeMultiFieldVariant][0].FieldPath)

	require.Len(t, byCode[diagnostic.CodeNoVariants], 1)
	assert.Equal(t, "invalid.Lonely", byCode[diagnostic.CodeNoVariants][0].Model)

	// Number and Alias
	assert.Len(t, byCode[diagnostic.CodeUnsupportedShape], 2)

	var warnings []string
	for _, w := range diags.Warnings {
		warnings = append(warnings, w.Code)
	}

	assert.ElementsMatch(t, []string{diagnostic.CodeUnknownFeature, diagnostic.CodeUnknownMarker}, warnings)

	// Valid parts survive next to the errors.
	shape, ok := graph.Lookup(model.ModelID{PkgPath: graph.PackagePaths()[0], Name: "Shape"})
	require.True(t, ok)
	require.Len(t, shape.Variants, 1)
	assert.Equal(t, "Circle", shape.Variants[0].Name)
	assert.True(t, shape.Variants[0].Pointer)
	assert.Equal(t, 2, shape.Variants[0].Index)
}

func TestAnalyzer_PackageErrors(t *testing.T) {
	_, err := NewAnalyzer().LoadPackages("./testdata/does-not-exist")
	require.Error(t, err)
}
