package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypePath(t *testing.T) {
	p1 := NewTypePath("Todo")
	assert.Equal(t, "Todo", p1.String())

	p2 := p1.Field("Tasks")
	assert.Equal(t, "Todo.Tasks", p2.String())

	p3 := p2.Elem()
	assert.Equal(t, "Todo.Tasks[]", p3.String())
	assert.Equal(t, "Todo.Tasks", p2.String(), "paths are immutable")

	assert.Equal(t, "[]", (&TypePath{}).Elem().String())
}
