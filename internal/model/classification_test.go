package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		stateful, collection bool
		want                 Classification
	}{
		{false, false, ClassBare},
		{true, false, ClassStateful},
		{false, true, ClassCollection},
		{true, true, ClassStatefulCollection},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			got := Classify(tt.stateful, tt.collection)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.stateful, got.IsStateful())
			assert.Equal(t, tt.collection, got.IsCollection())
		})
	}
}

func TestClassification_String(t *testing.T) {
	assert.Equal(t, "Bare", ClassBare.String())
	assert.Equal(t, "StatefulCollection", ClassStatefulCollection.String())
	assert.Equal(t, "Classification(9)", Classification(9).String())
}
