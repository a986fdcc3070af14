package model

import (
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModelID_String(t *testing.T) {
	assert.Equal(t, "example/todo.Task", ModelID{PkgPath: "example/todo", Name: "Task"}.String())
	assert.Equal(t, "Task", ModelID{Name: "Task"}.String())
	assert.Equal(t, "example/todo.Todo", ModelID{PkgPath: "example/todo", Name: "Todo"}.String())
}

func TestDeclaration_DisplayName(t *testing.T) {
	pkg := types.NewPackage("example/todo", "todo")
	named := types.NewNamed(types.NewTypeName(token.NoPos, pkg, "Task", nil), types.NewStruct(nil, nil), nil)

	d := &Declaration{ID: ModelID{PkgPath: "example/todo", Name: "Task"}, Named: named}
	assert.Equal(t, "todo.Task", d.DisplayName())

	bare := &Declaration{ID: ModelID{Name: "Task"}}
	assert.Equal(t, "Task", bare.DisplayName())
}

func TestDeclaration_Dependencies(t *testing.T) {
	user := ModelID{PkgPath: "example/todo", Name: "User"}
	task := ModelID{PkgPath: "example/todo", Name: "Task"}

	d := &Declaration{
		Fields: []Field{
			{Name: "Title", Class: ClassBare},
			{Name: "Owner", Class: ClassStateful, Target: user},
			{Name: "Tasks", Class: ClassStatefulCollection, Target: task},
			{Name: "Reviewer", Class: ClassStateful, Target: user},
			{Name: "Tags", Class: ClassCollection},
		},
		Variants: []Variant{
			{Name: "Assigned", Payload: Field{Class: ClassStateful, Target: task}},
		},
	}

	assert.Equal(t, []ModelID{user, task}, d.Dependencies())
	assert.Empty(t, (&Declaration{}).Dependencies())
}

func TestDeclKind_String(t *testing.T) {
	assert.Equal(t, "record", DeclRecord.String())
	assert.Equal(t, "union", DeclUnion.String())
	assert.Equal(t, "unknown", DeclKind(9).String())
}

func TestFeatures_Any(t *testing.T) {
	assert.False(t, Features{}.Any())
	assert.True(t, Features{Ord: true}.Any())
	assert.True(t, Features{Debug: true}.Any())
}
