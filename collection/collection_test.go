package collection

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"state-generator/reactive"
)

func TestCollection_PushPreservesOrder(t *testing.T) {
	c := New([]int{1, 2, 3, 4})
	c.Push(8)
	c.Push(9)

	assert.Equal(t, 6, c.Len())
	assert.Equal(t, []int{1, 2, 3, 4, 8, 9}, c.Values())
}

func TestCollection_FromSeq(t *testing.T) {
	c := FromSeq(slices.Values([]string{"a", "b"}))
	assert.Equal(t, []string{"a", "b"}, c.Values())
}

func TestCollection_RemoveIsDense(t *testing.T) {
	c := New([]string{"a", "b", "c", "d"})

	removed := c.Remove(1)

	assert.Equal(t, "b", removed)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"a", "c", "d"}, c.Values())

	idx, ok := c.Position(func(s string) bool { return s == "c" })
	require.True(t, ok)
	assert.Equal(t, 1, idx, "element previously at i+1 moves to i")
}

func TestCollection_RemoveOutOfRangePanics(t *testing.T) {
	c := New([]int{1})

	notified := 0
	reactive.CreateEffect(func() {
		_ = c.Len()
		notified++
	})

	assert.PanicsWithValue(t, "collection: remove index 1 out of range [0:1]", func() { c.Remove(1) })
	assert.Panics(t, func() { c.Remove(-1) })
	assert.Equal(t, 1, notified, "a failed remove notifies nobody")
	assert.Equal(t, 1, c.Len())
}

func TestCollection_FindAndPositionAgree(t *testing.T) {
	c := New([]int{5, 7, 9, 7})

	tests := []struct {
		name string
		pred func(int) bool
	}{
		{"first of duplicates", func(v int) bool { return v == 7 }},
		{"last", func(v int) bool { return v > 8 }},
		{"absent", func(v int) bool { return v == 100 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, found := c.Position(tt.pred)
			val, ok := c.Find(tt.pred)

			assert.Equal(t, found, ok)
			if !found {
				return
			}

			assert.True(t, tt.pred(val))
			assert.Equal(t, c.Values()[idx], val)
		})
	}
}

func TestCollection_RemoveWhere(t *testing.T) {
	c := New([]int{1, 2, 3, 4})

	v, ok := c.RemoveWhere(func(v int) bool { return v == 3 })
	require.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, []int{1, 2, 4}, c.Values())

	_, ok = c.RemoveWhere(func(v int) bool { return v == 42 })
	assert.False(t, ok)
	assert.Equal(t, []int{1, 2, 4}, c.Values(), "no match leaves the collection unchanged")
}

func TestCollection_FineGrainedNotifications(t *testing.T) {
	c := New([]string{"a", "b"})
	cells := c.Cells()

	sequenceRuns, firstRuns := 0, 0
	reactive.CreateEffect(func() {
		_ = c.Len()
		sequenceRuns++
	})
	reactive.CreateEffect(func() {
		_ = cells[0].Get()
		firstRuns++
	})

	cells[1].Set("B")
	assert.Equal(t, 1, sequenceRuns, "element writes do not notify sequence observers")
	assert.Equal(t, 1, firstRuns, "untouched elements do not notify")

	c.Push("c")
	assert.Equal(t, 2, sequenceRuns)
	assert.Equal(t, 1, firstRuns)

	cells[0].Set("A")
	assert.Equal(t, 2, firstRuns)
	assert.Equal(t, []string{"A", "B", "c"}, c.Values())
}

func TestCollection_PositionTracksInspectedElements(t *testing.T) {
	c := New([]int{1, 2, 3})
	cells := c.Cells()

	runs := 0
	reactive.CreateEffect(func() {
		c.Position(func(v int) bool { return v == 2 })
		runs++
	})

	cells[2].Set(30)
	assert.Equal(t, 1, runs, "scan stopped before the third element")

	cells[0].Set(10)
	assert.Equal(t, 2, runs)
}

func TestCollection_All(t *testing.T) {
	c := New([]string{"x", "y", "z"})

	var got []string
	for i, v := range c.All() {
		if i == 2 {
			break
		}
		got = append(got, v)
	}

	assert.Equal(t, []string{"x", "y"}, got)
}

func TestCollection_EqualCompareString(t *testing.T) {
	a := New([]int{1, 2})
	b := New([]int{1, 2})
	c := New([]int{1, 2, 0})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.Equal(t, -1, a.Compare(c))
	assert.Equal(t, "[1 2]", a.String())
	assert.True(t, reactive.Equal(a, b))
}

func TestMap(t *testing.T) {
	got := Map([]int{1, 2, 3}, func(v int) string { return string(rune('a' + v - 1)) })
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Empty(t, Map[int, int](nil, func(v int) int { return v }))
}
