package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPkgAlias(t *testing.T) {
	assert.Equal(t, "todo", PkgAlias("state-generator/examples/todo"))
	assert.Equal(t, "cmp", PkgAlias("cmp"))
	assert.Empty(t, PkgAlias(""))
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty([]int(nil)))
	assert.False(t, IsEmpty([]string{"a"}))
}
